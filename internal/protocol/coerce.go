package protocol

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransformTrueLiteral is the protocol boolean predicate: the literal "true"
// is true and any other text is false.
const TransformTrueLiteral = "true-literal"

var (
	stringType  = reflect.TypeOf("")
	int64Type   = reflect.TypeOf(int64(0))
	boolType    = reflect.TypeOf(false)
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

var (
	errEmptyText = errors.New("empty text")
	errNotDigits = errors.New("integer text must be decimal digits only")
)

// Codec converts between node text and a Go value of Type. Parse and Render
// must be pure.
type Codec struct {
	Name   string
	Type   reflect.Type
	Parse  func(text string) (any, error)
	Render func(v any) (string, error)
}

// Transforms is a table of named custom codecs referenced from bindings.
type Transforms map[string]Codec

// DefaultTransforms returns the built-in named transforms.
func DefaultTransforms() Transforms {
	return Transforms{
		TransformTrueLiteral: trueLiteralCodec,
	}
}

// Register adds a named transform. It must be called before the registry
// using the table is compiled.
func (t Transforms) Register(c Codec) error {
	if strings.TrimSpace(c.Name) == "" || c.Type == nil || c.Parse == nil || c.Render == nil {
		return &SchemaError{Type: "transforms", Field: c.Name, Reason: "transform needs a name, a type, Parse and Render"}
	}
	if _, dup := t[c.Name]; dup {
		return &SchemaError{Type: "transforms", Field: c.Name, Reason: "duplicate transform"}
	}
	t[c.Name] = c
	return nil
}

var trueLiteralCodec = Codec{
	Name: TransformTrueLiteral,
	Type: boolType,
	Parse: func(text string) (any, error) {
		return text == "true", nil
	},
	Render: func(v any) (string, error) {
		return strconv.FormatBool(v.(bool)), nil
	},
}

var shapeCodecs = map[Shape]*Codec{
	ShapeString: {
		Name:   "string",
		Type:   stringType,
		Parse:  func(text string) (any, error) { return text, nil },
		Render: func(v any) (string, error) { return v.(string), nil },
	},
	ShapeInteger: {
		Name: "integer",
		Type: int64Type,
		Parse: func(text string) (any, error) {
			text = strings.TrimSpace(text)
			if text == "" {
				return nil, errEmptyText
			}
			if !digitsOnly(text) {
				return nil, errNotDigits
			}
			return strconv.ParseInt(text, 10, 64)
		},
		Render: func(v any) (string, error) { return strconv.FormatInt(v.(int64), 10), nil },
	},
	ShapeDecimal: {
		Name: "decimal",
		Type: decimalType,
		Parse: func(text string) (any, error) {
			text = strings.TrimSpace(text)
			if text == "" {
				return nil, errEmptyText
			}
			return decimal.NewFromString(text)
		},
		Render: func(v any) (string, error) { return v.(decimal.Decimal).String(), nil },
	},
	ShapeTimestamp: {
		Name:   "timestamp",
		Type:   timeType,
		Parse:  parseTimestamp,
		Render: func(v any) (string, error) { return v.(time.Time).Format(time.RFC3339Nano), nil },
	},
	ShapeBoolean: &trueLiteralCodec,
}

func digitsOnly(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

func parseTimestamp(text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errEmptyText
	}
	t, err := time.Parse(time.RFC3339Nano, text)
	if err == nil {
		return t, nil
	}
	if d, derr := time.Parse(time.DateOnly, text); derr == nil {
		return d, nil
	}
	return nil, err
}

// codecFor picks the codec serving shape, honoring a named transform.
func codecFor(shape Shape, transform string, table Transforms) (*Codec, error) {
	if transform != "" {
		c, ok := table[transform]
		if !ok {
			return nil, fmt.Errorf("unknown transform %q", transform)
		}
		return &c, nil
	}
	c, ok := shapeCodecs[shape]
	if !ok {
		return nil, fmt.Errorf("no codec for shape %s", shape)
	}
	return c, nil
}

// scalarShape infers the table shape for a Go scalar type.
func scalarShape(t reflect.Type) (Shape, bool) {
	switch {
	case t == decimalType:
		return ShapeDecimal, true
	case t == timeType:
		return ShapeTimestamp, true
	}
	switch t.Kind() {
	case reflect.String:
		return ShapeString, true
	case reflect.Bool:
		return ShapeBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ShapeInteger, true
	}
	return ShapeInfer, false
}

// compatible reports whether values of the codec type can be stored in t.
func compatible(c *Codec, t reflect.Type) bool {
	if c.Type == int64Type {
		s, ok := scalarShape(t)
		return ok && s == ShapeInteger
	}
	if c.Type.Kind() != t.Kind() {
		return false
	}
	return c.Type.ConvertibleTo(t) && t.ConvertibleTo(c.Type)
}

// parseInto coerces text and stores it in dst, which has the field's element
// type.
func parseInto(c *Codec, text string, dst reflect.Value) error {
	v, err := c.Parse(text)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(v)
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if c.Type != int64Type {
			break
		}
		n := rv.Int()
		if dst.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if c.Type != int64Type {
			break
		}
		n := rv.Int()
		if n < 0 || dst.OverflowUint(uint64(n)) {
			return fmt.Errorf("value %d overflows %s", n, dst.Type())
		}
		dst.SetUint(uint64(n))
		return nil
	}
	dst.Set(rv.Convert(dst.Type()))
	return nil
}

// renderFrom renders the field element value src through the codec.
func renderFrom(c *Codec, src reflect.Value) (string, error) {
	if c.Type == int64Type {
		switch src.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(src.Uint(), 10), nil
		}
		return c.Render(src.Int())
	}
	return c.Render(src.Convert(c.Type).Interface())
}

func isBlank(text string) bool { return strings.TrimSpace(text) == "" }
