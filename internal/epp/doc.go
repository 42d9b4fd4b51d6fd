// Package epp owns the EPP message taxonomy: the Go types for hello,
// greeting, command and response documents, the registry-specific
// extensions (extepp, extcon, extdom, rgp), and the binding tables that map
// them onto XML through package protocol.
//
// Encode and Decode are the boundary a transport calls. Neither performs I/O;
// framing lives in protocol/frame.
package epp
