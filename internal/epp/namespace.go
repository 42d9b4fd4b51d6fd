package epp

import "github.com/danmuck/eppwire/internal/protocol"

// Namespace prefixes used in binding declarations.
const (
	PrefixEPP     = "epp"
	PrefixXSI     = "xsi"
	PrefixDomain  = "domain"
	PrefixContact = "contact"
	PrefixExtEPP  = "extepp"
	PrefixExtCon  = "extcon"
	PrefixExtDom  = "extdom"
	PrefixRGP     = "rgp"
)

// Namespace URIs. The ext* URIs are the .it registry extensions.
const (
	NSEPP     = "urn:ietf:params:xml:ns:epp-1.0"
	NSXSI     = "http://www.w3.org/2001/XMLSchema-instance"
	NSDomain  = "urn:ietf:params:xml:ns:domain-1.0"
	NSContact = "urn:ietf:params:xml:ns:contact-1.0"
	NSExtEPP  = "http://www.nic.it/ITNIC-EPP/extepp-2.0"
	NSExtCon  = "http://www.nic.it/ITNIC-EPP/extcon-1.0"
	NSExtDom  = "http://www.nic.it/ITNIC-EPP/extdom-2.0"
	NSRGP     = "urn:ietf:params:xml:ns:rgp-1.0"
)

// Namespaces returns the fixed namespace table. Every prefix except xsi is
// declared on encoded document roots, in this order.
func Namespaces() *protocol.Namespaces {
	ns, err := protocol.NewNamespaces(PrefixEPP,
		protocol.Namespace{Prefix: PrefixEPP, URI: NSEPP, Stamp: true},
		protocol.Namespace{Prefix: PrefixXSI, URI: NSXSI},
		protocol.Namespace{Prefix: PrefixDomain, URI: NSDomain, Stamp: true},
		protocol.Namespace{Prefix: PrefixContact, URI: NSContact, Stamp: true},
		protocol.Namespace{Prefix: PrefixExtEPP, URI: NSExtEPP, Stamp: true},
		protocol.Namespace{Prefix: PrefixExtDom, URI: NSExtDom, Stamp: true},
		protocol.Namespace{Prefix: PrefixExtCon, URI: NSExtCon, Stamp: true},
		protocol.Namespace{Prefix: PrefixRGP, URI: NSRGP, Stamp: true},
	)
	if err != nil {
		panic(err)
	}
	return ns
}
