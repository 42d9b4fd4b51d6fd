package protocol

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"
)

// Registry holds compiled message types. It is built once, compiled, and is
// read-only afterwards, so a compiled registry is safe for concurrent use.
type Registry struct {
	ns         *Namespaces
	transforms Transforms
	defs       []MessageDef
	order      []*MessageType
	types      map[reflect.Type]*MessageType
	compiled   bool
}

// NewRegistry creates an empty registry over ns. A nil transforms table uses
// DefaultTransforms.
func NewRegistry(ns *Namespaces, transforms Transforms) *Registry {
	if transforms == nil {
		transforms = DefaultTransforms()
	}
	return &Registry{
		ns:         ns,
		transforms: transforms,
		types:      make(map[reflect.Type]*MessageType),
	}
}

// Namespaces returns the registry's namespace table.
func (r *Registry) Namespaces() *Namespaces { return r.ns }

// Register queues message declarations for Compile. Declarations may appear in
// any order; nested references are resolved at compile time.
func (r *Registry) Register(defs ...MessageDef) error {
	if r.compiled {
		return &SchemaError{Type: "registry", Reason: "register after compile"}
	}
	r.defs = append(r.defs, defs...)
	return nil
}

// Compile resolves every queued declaration. Any inconsistency is reported as
// a SchemaError and leaves the registry unusable.
func (r *Registry) Compile() error {
	if r.compiled {
		return nil
	}
	for _, def := range r.defs {
		mt, err := r.declare(def)
		if err != nil {
			return err
		}
		r.order = append(r.order, mt)
		r.types[mt.GoType] = mt
	}
	for i, mt := range r.order {
		if err := r.resolve(mt, r.defs[i].Bindings); err != nil {
			return err
		}
	}
	r.compiled = true
	log.Debug().Int("types", len(r.order)).Msg("protocol.Registry.Compile ok")
	return nil
}

// MustCompile compiles the registry and panics on a SchemaError. Intended for
// process start.
func (r *Registry) MustCompile() *Registry {
	if err := r.Compile(); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the compiled type for a struct value, pointer or type.
func (r *Registry) Lookup(v any) (*MessageType, bool) {
	var t reflect.Type
	switch x := v.(type) {
	case reflect.Type:
		t = x
	default:
		t = reflect.TypeOf(v)
	}
	mt, ok := r.types[structType(t)]
	return mt, ok
}

// Types returns compiled types in declaration order.
func (r *Registry) Types() []*MessageType {
	out := make([]*MessageType, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) declare(def MessageDef) (*MessageType, error) {
	t := structType(reflect.TypeOf(def.Proto))
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: fmt.Sprintf("%T", def.Proto), Reason: "message proto must be a struct"}
	}
	if _, dup := r.types[t]; dup {
		return nil, &SchemaError{Type: t.Name(), Reason: "type registered twice"}
	}
	name := ParseQName(def.Name)
	if name.Local == "" {
		return nil, &SchemaError{Type: t.Name(), Reason: "message needs an element name"}
	}
	if !name.IsWildcard() {
		if name.Space == "" {
			name.Space = r.ns.Default()
		}
		if _, ok := r.ns.URI(name.Space); !ok {
			return nil, &SchemaError{Type: t.Name(), Reason: fmt.Sprintf("unknown namespace prefix %q", name.Space)}
		}
	}
	return &MessageType{Name: name, GoType: t}, nil
}

func (r *Registry) resolve(mt *MessageType, bindings []Binding) error {
	seen := make(map[string]struct{}, len(bindings))
	mt.Bindings = make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		if _, dup := seen[b.Field]; dup {
			return &SchemaError{Type: mt.GoType.Name(), Field: b.Field, Reason: "field bound twice"}
		}
		seen[b.Field] = struct{}{}
		rb, err := r.resolveBinding(mt, b)
		if err != nil {
			return err
		}
		mt.Bindings = append(mt.Bindings, rb)
	}
	for i := range mt.Bindings {
		switch mt.Bindings[i].Kind {
		case PathSelf:
			if mt.self != nil {
				return &SchemaError{Type: mt.GoType.Name(), Field: mt.Bindings[i].Field, Reason: "more than one self binding"}
			}
			mt.self = &mt.Bindings[i]
		case PathNamespace:
			if mt.namespace != nil {
				return &SchemaError{Type: mt.GoType.Name(), Field: mt.Bindings[i].Field, Reason: "more than one namespace binding"}
			}
			mt.namespace = &mt.Bindings[i]
		}
	}
	if mt.Name.IsWildcard() && mt.self == nil {
		return &SchemaError{Type: mt.GoType.Name(), Reason: "wildcard message needs a self binding"}
	}
	return nil
}

func (r *Registry) resolveBinding(mt *MessageType, b Binding) (Binding, error) {
	fail := func(format string, args ...any) (Binding, error) {
		return Binding{}, &SchemaError{Type: mt.GoType.Name(), Field: b.Field, Reason: fmt.Sprintf(format, args...)}
	}

	sf, ok := mt.GoType.FieldByName(b.Field)
	if !ok {
		return fail("no such field")
	}
	if !sf.IsExported() {
		return fail("field is not exported")
	}
	b.index = sf.Index

	arity, elem, pointer, err := inferArity(sf.Type)
	if err != nil {
		return fail("%v", err)
	}
	if b.Arity == ArityInfer {
		b.Arity = arity
	} else if !arityFits(b.Arity, arity, elem) {
		return fail("arity %s does not fit field type %s", b.Arity, sf.Type)
	}
	b.elemType = elem
	b.pointer = pointer

	inherit := mt.Name.Space
	if inherit == Wildcard {
		inherit = r.ns.Default()
	}
	if b.Kind != PathAttribute && b.Name.Space == "" && b.Name.Local != "" {
		b.Name.Space = inherit
	}
	for i := range b.Wrapper {
		if b.Wrapper[i].Space == "" {
			b.Wrapper[i].Space = inherit
		}
		if _, ok := r.ns.URI(b.Wrapper[i].Space); !ok {
			return fail("unknown wrapper prefix %q", b.Wrapper[i].Space)
		}
	}
	if b.Name.Space != "" && b.Name.Space != Wildcard {
		if _, ok := r.ns.URI(b.Name.Space); !ok {
			return fail("unknown namespace prefix %q", b.Name.Space)
		}
	}
	if b.Key != "" && b.Arity != ArityKeyedMap {
		return fail("key attribute without keyed-map arity")
	}

	switch b.Kind {
	case PathSelf, PathNamespace:
		if len(b.Wrapper) > 0 {
			return fail("conflicting path kinds: %s binding with wrapper", b.Kind)
		}
		if b.Arity == ArityList || b.Arity == ArityKeyedMap {
			return fail("%s binding must be scalar", b.Kind)
		}
		return r.resolveScalar(b, fail)
	case PathAttribute, PathContent:
		if b.Kind == PathAttribute && b.Name.Local == "" {
			return fail("attribute binding needs a name")
		}
		if b.Arity == ArityList || b.Arity == ArityKeyedMap {
			return fail("%s binding cannot be %s", b.Kind, b.Arity)
		}
		return r.resolveScalar(b, fail)
	case PathElementText:
		if b.Name.Local == "" {
			return fail("element binding needs a name")
		}
		if b.Arity == ArityKeyedMap && b.Key == "" {
			return fail("keyed-map binding needs a key attribute")
		}
		return r.resolveScalar(b, fail)
	case PathElement:
		if b.Shape == ShapeChoice {
			return r.resolveChoice(b, fail)
		}
		return r.resolveNested(b, fail)
	default:
		return fail("unknown path kind %d", b.Kind)
	}
}

func (r *Registry) resolveScalar(b Binding, fail func(string, ...any) (Binding, error)) (Binding, error) {
	inferred, ok := scalarShape(b.elemType)
	if !ok && b.Transform == "" {
		return fail("field type %s has no scalar shape", b.elemType)
	}
	if b.Shape == ShapeInfer {
		b.Shape = inferred
	} else if b.Shape == ShapeMessage || b.Shape == ShapeChoice {
		return fail("conflicting path kinds: %s binding with %s shape", b.Kind, b.Shape)
	} else if b.Transform == "" && b.Shape != inferred {
		return fail("shape %s does not fit field type %s", b.Shape, b.elemType)
	}
	codec, err := codecFor(b.Shape, b.Transform, r.transforms)
	if err != nil {
		return fail("%v", err)
	}
	if !compatible(codec, b.elemType) {
		return fail("codec %s produces %s, field holds %s", codec.Name, codec.Type, b.elemType)
	}
	b.codec = codec
	return b, nil
}

func (r *Registry) resolveNested(b Binding, fail func(string, ...any) (Binding, error)) (Binding, error) {
	if b.Shape != ShapeMessage {
		return fail("conflicting path kinds: element binding with %s shape", b.Shape)
	}
	if b.Arity == ArityKeyedMap {
		return fail("nested messages cannot be keyed")
	}
	nested, ok := r.types[b.elemType]
	if !ok {
		return fail("nested type %s is not registered", b.elemType)
	}
	if b.Name.Local == "" {
		b.Name = nested.Name
	}
	if b.Name.IsWildcard() != nested.Name.IsWildcard() {
		return fail("wildcard binding and wildcard message must go together")
	}
	b.nested = nested
	return b, nil
}

func (r *Registry) resolveChoice(b Binding, fail func(string, ...any) (Binding, error)) (Binding, error) {
	if b.elemType.Kind() != reflect.Interface {
		return fail("choice binding needs an interface field")
	}
	if b.Arity != ArityOptional {
		return fail("choice binding must be optional")
	}
	if len(b.Variants) == 0 {
		return fail("choice binding without variants")
	}
	for _, vt := range b.Variants {
		nested, ok := r.types[vt]
		if !ok {
			return fail("variant %s is not registered", vt)
		}
		if nested.Name.IsWildcard() {
			return fail("variant %s has a wildcard name", vt)
		}
		if !reflect.PointerTo(vt).Implements(b.elemType) {
			return fail("variant *%s does not implement %s", vt.Name(), b.elemType)
		}
		b.choices = append(b.choices, nested)
	}
	return b, nil
}

// inferArity derives the natural arity and element type of a field type.
func inferArity(t reflect.Type) (Arity, reflect.Type, bool, error) {
	switch t.Kind() {
	case reflect.Pointer:
		return ArityOptional, t.Elem(), true, nil
	case reflect.Interface:
		return ArityOptional, t, false, nil
	case reflect.Slice:
		return ArityList, t.Elem(), false, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return ArityInfer, nil, false, fmt.Errorf("map fields need string keys")
		}
		return ArityKeyedMap, t.Elem(), false, nil
	}
	return ArityScalar, t, false, nil
}

func arityFits(declared, natural Arity, elem reflect.Type) bool {
	if declared == natural {
		return true
	}
	// strings mark absence with the empty value
	return declared == ArityOptional && natural == ArityScalar && elem.Kind() == reflect.String
}
