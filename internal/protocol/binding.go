package protocol

import (
	"reflect"
	"strings"
)

// Wildcard matches any local name or any namespace.
const Wildcard = "*"

// QName is a prefix-qualified XML name. An empty Space inherits the namespace
// of the declaring message type.
type QName struct {
	Space string `json:"space,omitempty" yaml:"space,omitempty"`
	Local string `json:"local" yaml:"local"`
}

// ParseQName splits "prefix:local". A bare "*" is the any-name wildcard.
func ParseQName(s string) QName {
	s = strings.TrimSpace(s)
	if s == Wildcard {
		return QName{Space: Wildcard, Local: Wildcard}
	}
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return QName{Space: s[:i], Local: s[i+1:]}
	}
	return QName{Local: s}
}

func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return q.Space + ":" + q.Local
}

// IsWildcard reports whether q matches any element.
func (q QName) IsWildcard() bool { return q.Local == Wildcard }

// PathKind selects the node a binding reads or writes.
type PathKind uint8

const (
	PathAttribute   PathKind = iota + 1 // attribute on the target element
	PathElementText                     // text of a qualified child element
	PathElement                         // nested message found by its qualified name
	PathContent                         // text of the target element itself
	PathSelf                            // local name of the element itself
	PathNamespace                       // namespace of the element itself
)

var pathKindNames = map[PathKind]string{
	PathAttribute:   "attribute",
	PathElementText: "element-text",
	PathElement:     "element",
	PathContent:     "content",
	PathSelf:        "self",
	PathNamespace:   "namespace",
}

func (k PathKind) String() string {
	if s, ok := pathKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Arity is the multiplicity of a binding.
type Arity uint8

const (
	ArityInfer Arity = iota
	ArityScalar
	ArityOptional
	ArityList
	ArityKeyedMap
)

var arityNames = map[Arity]string{
	ArityInfer:    "infer",
	ArityScalar:   "scalar",
	ArityOptional: "optional",
	ArityList:     "list",
	ArityKeyedMap: "keyed-map",
}

func (a Arity) String() string {
	if s, ok := arityNames[a]; ok {
		return s
	}
	return "unknown"
}

// Shape is the value shape a binding produces.
type Shape uint8

const (
	ShapeInfer Shape = iota
	ShapeString
	ShapeInteger
	ShapeDecimal
	ShapeTimestamp
	ShapeBoolean
	ShapeMessage
	ShapeChoice
)

var shapeNames = map[Shape]string{
	ShapeInfer:     "infer",
	ShapeString:    "string",
	ShapeInteger:   "integer",
	ShapeDecimal:   "decimal",
	ShapeTimestamp: "timestamp",
	ShapeBoolean:   "boolean",
	ShapeMessage:   "message",
	ShapeChoice:    "choice",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return "unknown"
}

// Binding declares how one Go struct field maps onto the XML tree.
type Binding struct {
	Field     string
	Kind      PathKind
	Name      QName
	Wrapper   []QName
	Arity     Arity
	Key       string
	Shape     Shape
	Transform string
	Variants  []reflect.Type

	// resolved by Registry.Compile
	index    []int
	elemType reflect.Type
	pointer  bool
	codec    *Codec
	nested   *MessageType
	choices  []*MessageType
}

// Attr binds field to attribute name on the current element.
func Attr(field, name string) Binding {
	return Binding{Field: field, Kind: PathAttribute, Name: QName{Local: name}}
}

// Text binds field to the text of the child element name.
func Text(field, name string) Binding {
	return Binding{Field: field, Kind: PathElementText, Name: ParseQName(name)}
}

// Child binds field to a nested message. The element name comes from the
// nested type unless overridden with Named.
func Child(field string) Binding {
	return Binding{Field: field, Kind: PathElement, Shape: ShapeMessage}
}

// AnyChild binds field to nested messages matching any name in any namespace.
func AnyChild(field string) Binding {
	return Binding{Field: field, Kind: PathElement, Name: QName{Space: Wildcard, Local: Wildcard}, Shape: ShapeMessage}
}

// Content binds field to the text of the current element.
func Content(field string) Binding {
	return Binding{Field: field, Kind: PathContent}
}

// Self binds field to the local name of the current element.
func Self(field string) Binding {
	return Binding{Field: field, Kind: PathSelf, Shape: ShapeString}
}

// NamespaceOf binds field to the namespace prefix of the current element.
func NamespaceOf(field string) Binding {
	return Binding{Field: field, Kind: PathNamespace, Shape: ShapeString}
}

// Keyed binds a map field to every child element name, keyed by the value of
// attribute key and holding the element text. Later duplicates win.
func Keyed(field, name, key string) Binding {
	return Binding{Field: field, Kind: PathElementText, Name: ParseQName(name), Arity: ArityKeyedMap, Key: key, Shape: ShapeString}
}

// OneOf binds an interface field to the first child element matching one of
// the variant message types.
func OneOf(field string, variants ...any) Binding {
	types := make([]reflect.Type, 0, len(variants))
	for _, v := range variants {
		types = append(types, structType(reflect.TypeOf(v)))
	}
	return Binding{Field: field, Kind: PathElement, Shape: ShapeChoice, Variants: types}
}

// In places the target node under the given chain of wrapper elements.
func (b Binding) In(path ...string) Binding {
	wrapper := make([]QName, 0, len(b.Wrapper)+len(path))
	wrapper = append(wrapper, b.Wrapper...)
	for _, p := range path {
		wrapper = append(wrapper, ParseQName(p))
	}
	b.Wrapper = wrapper
	return b
}

// Named overrides the element name of a nested message binding.
func (b Binding) Named(name string) Binding {
	b.Name = ParseQName(name)
	return b
}

// Using selects a named transform instead of the shape's table codec.
func (b Binding) Using(transform string) Binding {
	b.Transform = transform
	return b
}

// As sets the value shape explicitly.
func (b Binding) As(shape Shape) Binding {
	b.Shape = shape
	return b
}

// With sets the arity explicitly.
func (b Binding) With(arity Arity) Binding {
	b.Arity = arity
	return b
}

// MessageDef declares one message type: its Go struct, its qualified element
// name and its ordered bindings. A wildcard name takes the element name from
// the type's Self binding.
type MessageDef struct {
	Proto    any
	Name     string
	Bindings []Binding
}

// Message is shorthand for a MessageDef literal.
func Message(proto any, name string, bindings ...Binding) MessageDef {
	return MessageDef{Proto: proto, Name: name, Bindings: bindings}
}

// MessageType is a compiled message declaration.
type MessageType struct {
	Name     QName
	GoType   reflect.Type
	Bindings []Binding

	self      *Binding
	namespace *Binding
}

func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
