// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package convert

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/creachadair/rjson"
	"github.com/creachadair/rjson/internal/debug"
	"github.com/creachadair/rjson/internal/reftab"
	"github.com/creachadair/rjson/value"
)

// From converts a Go value into a value.
//
// Booleans and strings convert to Bool and String. Signed and unsigned
// integers of at most 32 bits convert to Int32, and wider integers to Int64;
// an unsigned value too large for an int64 is an error. Floating-point values
// convert to Float32 or Float64 according to their width. A json.Number
// converts to the number its text denotes. A value.Value is used as-is.
//
// Slices and arrays convert to arrays. Maps convert to objects whose members
// are ordered by the literal text of their keys. Structs convert to objects
// with a member for each exported field, in declaration order, named by the
// field's json tag if it has one. Nil pointers, maps, slices and interfaces
// convert to Null. Other pointers and interfaces convert to the value they
// refer to.
//
// Each map, non-empty slice and pointer is converted only once. If it is
// reached again, the container made for it is reused, so the result shares
// structure exactly where v does, including cycles.
func (c *Converter) From(v any) (value.Value, error) {
	s := &fromState{
		c:    c,
		refs: reftab.New[fromKey, value.Value](),
	}
	return s.from(reflect.ValueOf(v), "$")
}

// A fromKey identifies a Go map, slice or pointer.
type fromKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type fromState struct {
	c    *Converter
	refs *reftab.Table[fromKey, value.Value]
}

// lookup reports the value already made for k, if any.
func (s *fromState) lookup(k fromKey, path string) (value.Value, bool) {
	v, ok := s.refs.Lookup(k)
	if ok && debug.Convert() {
		debug.Logf("[convert] at %s: reusing %v for %v", path, v, k.typ)
	}
	return v, ok
}

func (s *fromState) from(rv reflect.Value, path string) (value.Value, error) {
	if !rv.IsValid() {
		return value.Null{}, nil
	}
	if f, ok := s.c.from[rv.Type()]; ok {
		key, shared := refKey(rv)
		if shared {
			if v, ok := s.lookup(key, path); ok {
				return v, nil
			}
			if !s.refs.Enter(key) {
				return nil, errorf(path, "cycle through %v in a registered conversion", rv.Type())
			}
		}
		v, err := f(s, rv, path)
		if shared {
			s.refs.Leave(key)
		}
		if err != nil {
			return nil, wrapError(path, err)
		}
		if shared && value.IsContainer(v) {
			s.refs.Record(key, v)
		}
		return v, nil
	}
	if rv.Type().Implements(valueType) {
		if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
			return value.Null{}, nil
		}
		return rv.Interface().(value.Value), nil
	}
	if rv.Type() == numberType {
		return fromNumber(json.Number(rv.String()), path)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return value.Bool(rv.Bool()), nil
	case reflect.String:
		return value.String(rv.String()), nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return value.Int32(rv.Int()), nil
	case reflect.Int, reflect.Int64:
		return value.Int64(rv.Int()), nil
	case reflect.Uint8, reflect.Uint16:
		return value.Int32(rv.Uint()), nil
	case reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, errorf(path, "value %d out of range for int64", u)
		}
		return value.Int64(u), nil
	case reflect.Float32:
		return value.Float32(rv.Float()), nil
	case reflect.Float64:
		return value.Float64(rv.Float()), nil

	case reflect.Interface:
		if rv.IsNil() {
			return value.Null{}, nil
		}
		return s.from(rv.Elem(), path)

	case reflect.Pointer:
		return s.fromPointer(rv, path)
	case reflect.Map:
		return s.fromMap(rv, path)
	case reflect.Slice:
		return s.fromSlice(rv, path)
	case reflect.Array:
		return s.fromElems(rv, value.NewArray(), path)
	case reflect.Struct:
		return s.fromStruct(rv, value.NewObject(), path)
	}
	return nil, errorf(path, "cannot convert %v", rv.Type())
}

var numberType = reflect.TypeFor[json.Number]()

// refKey returns the identity of rv, if it is a non-nil map or pointer or a
// non-empty slice.
func refKey(rv reflect.Value) (fromKey, bool) {
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		if !rv.IsNil() {
			return fromKey{typ: rv.Type(), ptr: rv.Pointer()}, true
		}
	case reflect.Slice:
		if rv.Len() != 0 {
			return fromKey{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
		}
	}
	return fromKey{}, false
}

func fromNumber(n json.Number, path string) (value.Value, error) {
	tok := rjson.Integer
	if strings.ContainsAny(string(n), ".eE") {
		tok = rjson.Number
	}
	v, err := value.Decode(tok, []byte(n))
	if err != nil {
		return nil, wrapError(path, err)
	}
	return v, nil
}

func (s *fromState) fromPointer(rv reflect.Value, path string) (value.Value, error) {
	if rv.IsNil() {
		return value.Null{}, nil
	}
	key := fromKey{typ: rv.Type(), ptr: rv.Pointer()}
	if v, ok := s.lookup(key, path); ok {
		return v, nil
	}

	// A pointer to a struct becomes an object, which is recorded before its
	// fields are converted so that the fields may refer back to it.
	if elem := rv.Elem(); elem.Kind() == reflect.Struct && s.c.from[elem.Type()] == nil &&
		!elem.Type().Implements(valueType) {
		obj := value.NewObject()
		s.refs.Record(key, obj)
		v, err := s.fromStruct(elem, obj, path)
		if err != nil {
			s.refs.Forget(key)
			return nil, err
		}
		return v, nil
	}

	// Any other pointer is in progress while its target is converted. If the
	// target leads back to the pointer without passing through a container,
	// the cycle cannot be represented.
	if !s.refs.Enter(key) {
		return nil, errorf(path, "cycle through %v without an enclosing container", rv.Type())
	}
	v, err := s.from(rv.Elem(), path)
	s.refs.Leave(key)
	if err != nil {
		return nil, err
	}
	if value.IsContainer(v) {
		s.refs.Record(key, v)
	}
	return v, nil
}

func (s *fromState) fromMap(rv reflect.Value, path string) (value.Value, error) {
	if rv.IsNil() {
		return value.Null{}, nil
	}
	key := fromKey{typ: rv.Type(), ptr: rv.Pointer()}
	if v, ok := s.lookup(key, path); ok {
		return v, nil
	}
	obj := value.NewObject()
	s.refs.Record(key, obj)

	type entry struct {
		text string
		key  value.Value
		val  reflect.Value
	}
	var ents []entry
	for it := rv.MapRange(); it.Next(); {
		mk := it.Key()
		kp := keyPath(path, mk.Interface())
		k, err := s.from(mk, kp)
		if err != nil {
			s.refs.Forget(key)
			return nil, err
		}
		ents = append(ents, entry{text: keyText(k), key: k, val: it.Value()})
	}
	slices.SortStableFunc(ents, func(a, b entry) int { return cmp.Compare(a.text, b.text) })

	for _, e := range ents {
		v, err := s.from(e.val, keyPath(path, e.text))
		if err != nil {
			s.refs.Forget(key)
			return nil, err
		}
		obj.Set(e.key, v)
	}
	return obj, nil
}

// keyText returns the text used to order a map key.
func keyText(k value.Value) string {
	if s, ok := k.(value.String); ok {
		return string(s)
	}
	if text, err := value.Encode(k); err == nil {
		return text
	}
	return fmt.Sprint(k)
}

func (s *fromState) fromSlice(rv reflect.Value, path string) (value.Value, error) {
	if rv.IsNil() {
		return value.Null{}, nil
	}
	arr := value.NewArray()
	if rv.Len() == 0 {
		return arr, nil // empty slices have no useful identity
	}
	key := fromKey{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}
	if v, ok := s.lookup(key, path); ok {
		return v, nil
	}
	s.refs.Record(key, arr)
	v, err := s.fromElems(rv, arr, path)
	if err != nil {
		s.refs.Forget(key)
		return nil, err
	}
	return v, nil
}

func (s *fromState) fromElems(rv reflect.Value, arr *value.Array, path string) (value.Value, error) {
	for i := range rv.Len() {
		v, err := s.from(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}
	return arr, nil
}

func (s *fromState) fromStruct(rv reflect.Value, obj *value.Object, path string) (value.Value, error) {
	for _, f := range structFields(rv.Type()) {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil || !fv.CanInterface() {
			continue // field of a nil or unexported embedded struct
		}
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		v, err := s.from(fv, keyPath(path, f.name))
		if err != nil {
			return nil, err
		}
		obj.Set(value.String(f.name), v)
	}
	return obj, nil
}
