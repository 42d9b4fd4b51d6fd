package protocol

import (
	"fmt"
	"reflect"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
)

// DecodeDocument parses data and populates root, a pointer to the registered
// root type. Malformed bytes fail with a ParseError, a failed scalar coercion
// with a FormatError; root is left untouched on any error.
func (r *Registry) DecodeDocument(data []byte, root any) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return &ParseError{Reason: "malformed xml", Err: err}
	}
	el := doc.Root()
	if el == nil {
		return &ParseError{Reason: "document has no root element"}
	}
	if err := singleRoot(doc); err != nil {
		return err
	}
	mt, err := r.target(root)
	if err != nil {
		return err
	}
	if !r.matches(el, mt.Name) {
		return &ParseError{Reason: fmt.Sprintf("unexpected root element %q, want %q", el.FullTag(), mt.Name)}
	}
	log.Debug().Str("root", el.Tag).Int("bytes", len(data)).Msg("protocol.DecodeDocument")
	return r.Unmarshal(el, root)
}

// singleRoot rejects documents that carry a second root element or stray
// text after the root. The parser stops at the end of the first root.
func singleRoot(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
			if roots > 1 {
				return &ParseError{Reason: "trailing content after root element"}
			}
		case *etree.CharData:
			if !isBlank(t.Data) {
				return &ParseError{Reason: "trailing content after root element"}
			}
		}
	}
	return nil
}

// Unmarshal populates v, a pointer to a registered struct, from el. The value
// is built fresh and assigned only when every binding succeeds.
func (r *Registry) Unmarshal(el *etree.Element, v any) error {
	mt, err := r.target(v)
	if err != nil {
		return err
	}
	out := reflect.New(mt.GoType).Elem()
	if err := r.decodeMessage(el, mt, out, mt.GoType.Name()); err != nil {
		return err
	}
	reflect.ValueOf(v).Elem().Set(out)
	return nil
}

func (r *Registry) target(v any) (*MessageType, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: got %T", ErrTarget, v)
	}
	mt, ok := r.types[rv.Elem().Type()]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", ErrTarget, rv.Elem().Type())
	}
	return mt, nil
}

func (r *Registry) decodeMessage(el *etree.Element, mt *MessageType, dst reflect.Value, path string) error {
	for i := range mt.Bindings {
		b := &mt.Bindings[i]
		if err := r.decodeBinding(el, b, dst.FieldByIndex(b.index), path+"."+b.Field); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) decodeBinding(el *etree.Element, b *Binding, field reflect.Value, path string) error {
	switch b.Arity {
	case ArityList:
		field.Set(reflect.MakeSlice(field.Type(), 0, 0))
	case ArityKeyedMap:
		field.Set(reflect.MakeMap(field.Type()))
	}

	target := r.readTarget(el, b.Wrapper)
	if target == nil {
		return nil
	}

	switch b.Kind {
	case PathAttribute:
		text, ok := attrValue(target, b.Name.Local)
		if !ok {
			return nil
		}
		return r.setScalar(b, field, text, path)
	case PathContent:
		return r.setScalar(b, field, target.Text(), path)
	case PathSelf:
		return r.setScalar(b, field, target.Tag, path)
	case PathNamespace:
		return r.setScalar(b, field, r.ns.spaceOf(target), path)
	case PathElementText:
		return r.decodeText(target, b, field, path)
	case PathElement:
		if b.Shape == ShapeChoice {
			return r.decodeChoice(target, b, field, path)
		}
		return r.decodeNested(target, b, field, path)
	}
	return nil
}

func (r *Registry) decodeText(target *etree.Element, b *Binding, field reflect.Value, path string) error {
	switch b.Arity {
	case ArityList:
		for i, child := range r.childrenNamed(target, b.Name) {
			item := reflect.New(b.elemType).Elem()
			ok, err := r.coerce(b, child.Text(), item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return err
			}
			if ok {
				field.Set(reflect.Append(field, item))
			}
		}
		return nil
	case ArityKeyedMap:
		keyType := field.Type().Key()
		for _, child := range r.childrenNamed(target, b.Name) {
			key, _ := attrValue(child, b.Key)
			item := reflect.New(b.elemType).Elem()
			ok, err := r.coerce(b, child.Text(), item, fmt.Sprintf("%s[%s]", path, key))
			if err != nil {
				return err
			}
			if ok {
				field.SetMapIndex(reflect.ValueOf(key).Convert(keyType), item)
			}
		}
		return nil
	}
	child := r.firstChild(target, b.Name)
	if child == nil {
		return nil
	}
	return r.setScalar(b, field, child.Text(), path)
}

func (r *Registry) decodeNested(target *etree.Element, b *Binding, field reflect.Value, path string) error {
	if b.Arity == ArityList {
		for i, child := range r.childrenNamed(target, b.Name) {
			item := reflect.New(b.elemType).Elem()
			if err := r.decodeMessage(child, b.nested, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
			field.Set(reflect.Append(field, item))
		}
		return nil
	}
	child := r.firstChild(target, b.Name)
	if child == nil {
		return nil
	}
	item := reflect.New(b.elemType).Elem()
	if err := r.decodeMessage(child, b.nested, item, path); err != nil {
		return err
	}
	assign(b, field, item)
	return nil
}

// decodeChoice fills a sum-type slot with the first child matching a
// variant. Further matching children are ignored.
func (r *Registry) decodeChoice(target *etree.Element, b *Binding, field reflect.Value, path string) error {
	picked := ""
	for _, child := range target.ChildElements() {
		variant := r.variantFor(b, child)
		if variant == nil {
			log.Debug().Str("path", path).Str("element", child.FullTag()).Msg("protocol.decodeChoice unknown variant skipped")
			continue
		}
		if picked != "" {
			log.Debug().Str("path", path).Str("picked", picked).Str("ignored", variant.Name.String()).
				Msg("protocol.decodeChoice extra variant ignored")
			continue
		}
		item := reflect.New(variant.GoType)
		if err := r.decodeMessage(child, variant, item.Elem(), path+"("+variant.Name.String()+")"); err != nil {
			return err
		}
		field.Set(item)
		picked = variant.Name.String()
	}
	return nil
}

func (r *Registry) variantFor(b *Binding, el *etree.Element) *MessageType {
	for _, variant := range b.choices {
		if r.matches(el, variant.Name) {
			return variant
		}
	}
	return nil
}

func (r *Registry) setScalar(b *Binding, field reflect.Value, text, path string) error {
	item := reflect.New(b.elemType).Elem()
	ok, err := r.coerce(b, text, item, path)
	if err != nil || !ok {
		return err
	}
	assign(b, field, item)
	return nil
}

// coerce parses text into item. Blank text is absent for numeric, decimal and
// timestamp shapes; it reports false without error in that case.
func (r *Registry) coerce(b *Binding, text string, item reflect.Value, path string) (bool, error) {
	if b.Transform == "" && skipsBlank(b.Shape) && isBlank(text) {
		return false, nil
	}
	if err := parseInto(b.codec, text, item); err != nil {
		return false, &FormatError{Path: path, Shape: b.Shape, Text: text, Err: err}
	}
	return true, nil
}

func skipsBlank(s Shape) bool {
	return s == ShapeInteger || s == ShapeDecimal || s == ShapeTimestamp
}

func assign(b *Binding, field, item reflect.Value) {
	if b.pointer {
		field.Set(item.Addr())
		return
	}
	field.Set(item)
}
