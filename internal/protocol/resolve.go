package protocol

import "github.com/beevik/etree"

// matches reports whether el has the qualified name q. Namespaces are
// compared by URI, so documents may use any prefix for a registered URI.
func (r *Registry) matches(el *etree.Element, q QName) bool {
	if q.IsWildcard() {
		return true
	}
	if el.Tag != q.Local {
		return false
	}
	if q.Space == Wildcard {
		return true
	}
	uri, ok := r.ns.URI(q.Space)
	if !ok {
		return false
	}
	return r.ns.elementURI(el) == uri
}

// firstChild returns the first direct child of el named q, in document order.
func (r *Registry) firstChild(el *etree.Element, q QName) *etree.Element {
	for _, child := range el.ChildElements() {
		if r.matches(child, q) {
			return child
		}
	}
	return nil
}

// childrenNamed returns every direct child of el named q, in document order.
func (r *Registry) childrenNamed(el *etree.Element, q QName) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if r.matches(child, q) {
			out = append(out, child)
		}
	}
	return out
}

// readTarget follows a wrapper chain from el. It returns nil when any wrapper
// is missing.
func (r *Registry) readTarget(el *etree.Element, wrapper []QName) *etree.Element {
	target := el
	for _, q := range wrapper {
		target = r.firstChild(target, q)
		if target == nil {
			return nil
		}
	}
	return target
}

// writeTarget follows a wrapper chain from el, reusing wrappers created by
// earlier bindings and creating the missing ones.
func (r *Registry) writeTarget(el *etree.Element, wrapper []QName) *etree.Element {
	target := el
	for _, q := range wrapper {
		target = r.reuseOrCreate(target, q)
	}
	return target
}

func (r *Registry) reuseOrCreate(el *etree.Element, q QName) *etree.Element {
	if child := r.firstChild(el, q); child != nil {
		return child
	}
	return r.createChild(el, q)
}

func (r *Registry) createChild(el *etree.Element, q QName) *etree.Element {
	return el.CreateElement(r.ns.Tag(q))
}

// attrValue finds an attribute by local name, ignoring namespace
// declarations.
func attrValue(el *etree.Element, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}
