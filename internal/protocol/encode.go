package protocol

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8" standalone="no"`

var errNoElementName = errors.New("wildcard message without element name")

// EncodeDocument renders root, a value of the registered root type, as a
// complete document: XML declaration, stamped namespace declarations on the
// root element, two-space indentation.
func (r *Registry) EncodeDocument(root any) ([]byte, error) {
	el, err := r.Marshal(root)
	if err != nil {
		return nil, err
	}
	r.ns.Stamp(el)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", xmlDeclaration)
	doc.SetRoot(el)
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	log.Debug().Str("root", el.Tag).Int("bytes", len(out)).Msg("protocol.EncodeDocument")
	return out, nil
}

// Marshal renders v, a registered struct or a pointer to one, as a detached
// element tree. Bindings are emitted in declaration order; absent values emit
// nothing. v is never modified.
func (r *Registry) Marshal(v any) (*etree.Element, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: got nil %T", ErrTarget, v)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: got nil", ErrTarget)
	}
	mt, ok := r.types[rv.Type()]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", ErrTarget, rv.Type())
	}
	return r.encodeMessage(nil, mt, mt.Name, rv, mt.GoType.Name())
}

func (r *Registry) encodeMessage(parent *etree.Element, mt *MessageType, name QName, v reflect.Value, path string) (*etree.Element, error) {
	tag, xmlns, err := r.elementTag(mt, name, v, path)
	if err != nil {
		return nil, err
	}
	var el *etree.Element
	if parent == nil {
		el = etree.NewElement(tag)
	} else {
		el = parent.CreateElement(tag)
	}
	if xmlns != "" {
		el.CreateAttr("xmlns", xmlns)
	}
	for i := range mt.Bindings {
		b := &mt.Bindings[i]
		if err := r.encodeBinding(el, b, v.FieldByIndex(b.index), path+"."+b.Field); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// elementTag names the element for mt. Wildcard messages carry their own
// name (and optionally namespace) in their self bindings; an unregistered
// namespace is declared on the element itself.
func (r *Registry) elementTag(mt *MessageType, name QName, v reflect.Value, path string) (string, string, error) {
	if !name.IsWildcard() {
		return r.ns.Tag(name), "", nil
	}
	local := v.FieldByIndex(mt.self.index)
	if local.Kind() == reflect.Pointer {
		if local.IsNil() {
			return "", "", &FormatError{Path: path + "." + mt.self.Field, Shape: ShapeString, Err: errNoElementName}
		}
		local = local.Elem()
	}
	if local.String() == "" {
		return "", "", &FormatError{Path: path + "." + mt.self.Field, Shape: ShapeString, Err: errNoElementName}
	}
	q := QName{Local: local.String()}
	if mt.namespace == nil {
		return r.ns.Tag(q), "", nil
	}
	space := v.FieldByIndex(mt.namespace.index)
	if space.Kind() == reflect.Pointer {
		if space.IsNil() {
			return r.ns.Tag(q), "", nil
		}
		space = space.Elem()
	}
	if _, ok := r.ns.URI(space.String()); ok {
		q.Space = space.String()
		return r.ns.Tag(q), "", nil
	}
	return q.Local, space.String(), nil
}

func (r *Registry) encodeBinding(el *etree.Element, b *Binding, field reflect.Value, path string) error {
	if absent(field) || b.Kind == PathSelf || b.Kind == PathNamespace {
		return nil
	}
	target := r.writeTarget(el, b.Wrapper)

	switch b.Kind {
	case PathAttribute:
		text, err := r.render(b, deref(field), path)
		if err != nil {
			return err
		}
		target.CreateAttr(b.Name.Local, text)
	case PathContent:
		text, err := r.render(b, deref(field), path)
		if err != nil {
			return err
		}
		target.SetText(text)
	case PathElementText:
		return r.encodeText(target, b, field, path)
	case PathElement:
		if b.Shape == ShapeChoice {
			return r.encodeChoice(target, b, field, path)
		}
		if b.Arity == ArityList {
			for i := 0; i < field.Len(); i++ {
				if _, err := r.encodeMessage(target, b.nested, b.Name, field.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
			return nil
		}
		_, err := r.encodeMessage(target, b.nested, b.Name, deref(field), path)
		return err
	}
	return nil
}

func (r *Registry) encodeText(target *etree.Element, b *Binding, field reflect.Value, path string) error {
	switch b.Arity {
	case ArityList:
		for i := 0; i < field.Len(); i++ {
			text, err := r.render(b, field.Index(i), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return err
			}
			r.createChild(target, b.Name).SetText(text)
		}
		return nil
	case ArityKeyedMap:
		keys := field.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, key := range keys {
			text, err := r.render(b, field.MapIndex(key), fmt.Sprintf("%s[%s]", path, key.String()))
			if err != nil {
				return err
			}
			child := r.createChild(target, b.Name)
			if key.String() != "" {
				child.CreateAttr(b.Key, key.String())
			}
			child.SetText(text)
		}
		return nil
	}
	text, err := r.render(b, deref(field), path)
	if err != nil {
		return err
	}
	r.reuseOrCreate(target, b.Name).SetText(text)
	return nil
}

func (r *Registry) encodeChoice(target *etree.Element, b *Binding, field reflect.Value, path string) error {
	concrete := field.Elem()
	if concrete.Kind() == reflect.Pointer && concrete.IsNil() {
		return nil
	}
	t := structType(concrete.Type())
	for _, variant := range b.choices {
		if variant.GoType == t {
			_, err := r.encodeMessage(target, variant, variant.Name, deref(concrete), path+"("+variant.Name.String()+")")
			return err
		}
	}
	return fmt.Errorf("%w: %s is not a variant of %s", ErrTarget, t, path)
}

func (r *Registry) render(b *Binding, v reflect.Value, path string) (string, error) {
	text, err := renderFrom(b.codec, v)
	if err != nil {
		return "", &FormatError{Path: path, Shape: b.Shape, Err: err}
	}
	return text, nil
}

func absent(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Interface:
		if field.IsNil() {
			return true
		}
		elem := field.Elem()
		return elem.Kind() == reflect.Pointer && elem.IsNil()
	case reflect.Pointer:
		return field.IsNil()
	case reflect.Slice, reflect.Map, reflect.String:
		return field.Len() == 0
	}
	return false
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}
