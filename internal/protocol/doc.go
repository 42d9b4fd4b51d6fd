// Package protocol owns the XML binding engine behind the EPP wire contract.
//
// Ownership boundary:
// - namespace table and root stamping
// - binding descriptors and the compiled schema registry
// - path resolution, scalar coercion, named transforms
// - document encode/decode entry points
//
// Message types are plain structs. Each is registered with its qualified
// element name and an ordered list of bindings, then the registry is
// compiled once at process start. Encode and decode walk the compiled
// bindings; there is no per-type code.
package protocol
