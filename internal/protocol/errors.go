package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrParse  = errors.New("protocol: parse error")
	ErrFormat = errors.New("protocol: format error")
	ErrSchema = errors.New("protocol: schema error")
	ErrTarget = errors.New("protocol: target must be a non-nil pointer to a registered type")
)

// ParseError reports input bytes that are not a well-formed document for the
// registered root type.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol: parse: %s", e.Reason)
	}
	return fmt.Sprintf("protocol: parse: %s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// FormatError reports a present node whose text could not be coerced into the
// field's scalar shape.
type FormatError struct {
	Path  string
	Shape Shape
	Text  string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("protocol: format: %s: cannot read %q as %s: %v", e.Path, e.Text, e.Shape, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// SchemaError reports an inconsistent binding declaration. It is raised while
// compiling a registry, never while encoding or decoding.
type SchemaError struct {
	Type   string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("protocol: schema: type=%s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("protocol: schema: type=%s field=%s: %s", e.Type, e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }
