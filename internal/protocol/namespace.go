package protocol

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Namespace binds a prefix to a namespace URI. Stamped namespaces are declared
// on every encoded document root.
type Namespace struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	URI    string `json:"uri" yaml:"uri"`
	Stamp  bool   `json:"stamp" yaml:"stamp"`
}

// Namespaces is an ordered, immutable prefix table. The default prefix is
// rendered without a prefix (xmlns="...") and is the namespace of unprefixed
// names in binding declarations.
type Namespaces struct {
	defaultPrefix string
	ordered       []Namespace
	byPrefix      map[string]string
	byURI         map[string]string
}

// NewNamespaces builds a namespace table. defaultPrefix must be one of the
// entries.
func NewNamespaces(defaultPrefix string, entries ...Namespace) (*Namespaces, error) {
	n := &Namespaces{
		defaultPrefix: defaultPrefix,
		ordered:       make([]Namespace, 0, len(entries)),
		byPrefix:      make(map[string]string, len(entries)),
		byURI:         make(map[string]string, len(entries)),
	}
	for _, ns := range entries {
		prefix := strings.TrimSpace(ns.Prefix)
		uri := strings.TrimSpace(ns.URI)
		if prefix == "" || uri == "" {
			return nil, &SchemaError{Type: "namespaces", Reason: "namespace entries need a prefix and a uri"}
		}
		if _, dup := n.byPrefix[prefix]; dup {
			return nil, &SchemaError{Type: "namespaces", Reason: fmt.Sprintf("duplicate prefix %q", prefix)}
		}
		if _, dup := n.byURI[uri]; dup {
			return nil, &SchemaError{Type: "namespaces", Reason: fmt.Sprintf("duplicate uri %q", uri)}
		}
		n.byPrefix[prefix] = uri
		n.byURI[uri] = prefix
		n.ordered = append(n.ordered, Namespace{Prefix: prefix, URI: uri, Stamp: ns.Stamp})
	}
	if _, ok := n.byPrefix[defaultPrefix]; !ok {
		return nil, &SchemaError{Type: "namespaces", Reason: fmt.Sprintf("default prefix %q not declared", defaultPrefix)}
	}
	return n, nil
}

// Default returns the default prefix.
func (n *Namespaces) Default() string { return n.defaultPrefix }

// URI returns the namespace URI bound to prefix. The empty prefix resolves to
// the default namespace.
func (n *Namespaces) URI(prefix string) (string, bool) {
	if prefix == "" {
		prefix = n.defaultPrefix
	}
	uri, ok := n.byPrefix[prefix]
	return uri, ok
}

// Prefix returns the registered prefix for uri.
func (n *Namespaces) Prefix(uri string) (string, bool) {
	p, ok := n.byURI[uri]
	return p, ok
}

// All returns every registered namespace in declaration order.
func (n *Namespaces) All() []Namespace {
	out := make([]Namespace, len(n.ordered))
	copy(out, n.ordered)
	return out
}

// Stamp declares every stamped namespace on el. Declarations are written in
// table order and replace existing ones, so stamping is idempotent.
func (n *Namespaces) Stamp(el *etree.Element) {
	for _, ns := range n.ordered {
		if !ns.Stamp {
			continue
		}
		if ns.Prefix == n.defaultPrefix {
			el.CreateAttr("xmlns", ns.URI)
			continue
		}
		el.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
	}
}

// Tag renders a qualified name as an element tag. Names in the default
// namespace are written unprefixed.
func (n *Namespaces) Tag(q QName) string {
	if q.Space == "" || q.Space == n.defaultPrefix {
		return q.Local
	}
	return q.Space + ":" + q.Local
}

// elementURI resolves the namespace of a parsed element from the document's
// own declarations. Elements without a resolvable declaration fall back to the
// registry binding of their literal prefix; unknown prefixes are returned as
// is so they never match a registered namespace but do not abort parsing.
func (n *Namespaces) elementURI(el *etree.Element) string {
	if uri := el.NamespaceURI(); uri != "" {
		return uri
	}
	if uri, ok := n.URI(el.Space); ok {
		return uri
	}
	return el.Space
}

// spaceOf reports the registry prefix of a parsed element, or its raw
// namespace when the URI is not registered.
func (n *Namespaces) spaceOf(el *etree.Element) string {
	uri := n.elementURI(el)
	if p, ok := n.byURI[uri]; ok {
		return p
	}
	return uri
}
