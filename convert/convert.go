// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package convert converts between values and ordinary Go values.
//
// A Converter translates arbitrary Go object graphs into values (From) and
// values into typed Go targets (To). Both directions preserve identity: a
// map, slice or pointer reached more than once becomes a single shared
// container, and a cyclic Go graph becomes a cyclic value, and vice versa.
//
// Conversions for particular types are added to a Converter explicitly with
// RegisterFrom and RegisterTo. There is no global registry.
package convert

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/creachadair/rjson/value"
)

// A Converter carries the type-specific conversions used to translate between
// values and Go values. A Converter must not be modified while a conversion
// is in progress, but is otherwise safe for concurrent use.
type Converter struct {
	from map[reflect.Type]fromFunc
	to   map[reflect.Type]toFunc
}

type fromFunc func(s *fromState, rv reflect.Value, path string) (value.Value, error)
type toFunc func(value.Value, reflect.Value) error

// New constructs a Converter with no type-specific conversions.
func New() *Converter {
	return &Converter{
		from: make(map[reflect.Type]fromFunc),
		to:   make(map[reflect.Type]toFunc),
	}
}

// Default constructs a new Converter with conversions for time.Time, as a
// string in RFC 3339 format, and time.Duration, as a string in the format of
// time.ParseDuration.
func Default() *Converter {
	c := New()
	RegisterFrom(c, func(t time.Time) (value.Value, error) {
		return value.String(t.Format(time.RFC3339Nano)), nil
	})
	RegisterTo(c, func(v value.Value) (time.Time, error) {
		s, ok := v.(value.String)
		if !ok {
			return time.Time{}, fmt.Errorf("want string, got %v", value.KindOf(v))
		}
		return time.Parse(time.RFC3339Nano, string(s))
	})
	RegisterFrom(c, func(d time.Duration) (value.Value, error) {
		return value.String(d.String()), nil
	})
	RegisterTo(c, func(v value.Value) (time.Duration, error) {
		s, ok := v.(value.String)
		if !ok {
			return 0, fmt.Errorf("want string, got %v", value.KindOf(v))
		}
		return time.ParseDuration(string(s))
	})
	return c
}

// RegisterFrom adds to c a conversion from Go values of type T to values.
// It replaces any previous conversion for T. The conversion applies to values
// whose dynamic type is exactly T.
func RegisterFrom[T any](c *Converter, f func(T) (value.Value, error)) {
	c.from[reflect.TypeFor[T]()] = func(_ *fromState, rv reflect.Value, _ string) (value.Value, error) {
		return f(rv.Interface().(T))
	}
}

// RegisterFromNested adds to c a conversion from Go values of type T to
// values, as RegisterFrom. In addition f receives a function that converts
// the Go values nested inside a T as part of the same conversion, so that
// maps, slices and pointers they share with the rest of the input become
// shared containers.
//
// When T is a map, slice or pointer type, a T reached more than once is
// converted once and its value is reused.
func RegisterFromNested[T any](c *Converter, f func(v T, from func(any) (value.Value, error)) (value.Value, error)) {
	c.from[reflect.TypeFor[T]()] = func(s *fromState, rv reflect.Value, path string) (value.Value, error) {
		return f(rv.Interface().(T), func(x any) (value.Value, error) {
			return s.from(reflect.ValueOf(x), path)
		})
	}
}

// RegisterTo adds to c a conversion from values to Go values of type T.
// It replaces any previous conversion for T.
func RegisterTo[T any](c *Converter, f func(value.Value) (T, error)) {
	c.to[reflect.TypeFor[T]()] = func(v value.Value, dst reflect.Value) error {
		out, err := f(v)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(&out).Elem())
		return nil
	}
}

// Error is the concrete type of errors reported by a Converter.
type Error struct {
	Path    string // the location of the failure, e.g., $.items[2]
	Message string

	Err error // the underlying error, if any
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("convert: at %s: %s", e.Path, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

func errorf(path, msg string, args ...any) error {
	return &Error{Path: path, Message: fmt.Sprintf(msg, args...)}
}

func wrapError(path string, err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Path: path, Message: err.Error(), Err: err}
}

var valueType = reflect.TypeFor[value.Value]()

// A field is an exported struct field and its name in an object.
type field struct {
	name      string
	index     []int
	omitEmpty bool
}

// structFields returns the fields of struct type t that are converted, in
// declaration order. Untagged embedded structs are flattened, and fields
// tagged json:"-" are skipped.
func structFields(t reflect.Type) []field {
	var out []field
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		tag, hasTag := f.Tag.Lookup("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if f.Anonymous && !hasTag {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				continue // its fields are visible separately
			}
		}
		if name == "" {
			name = f.Name
		}
		out = append(out, field{
			name:      name,
			index:     f.Index,
			omitEmpty: strings.Contains(","+opts+",", ",omitempty,"),
		})
	}
	return out
}

func keyPath(path string, key any) string {
	if s, ok := key.(string); ok {
		return path + "." + s
	}
	return fmt.Sprintf("%s[%v]", path, key)
}
