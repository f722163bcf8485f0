// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package convert

import (
	"fmt"
	"reflect"

	"github.com/creachadair/rjson/internal/debug"
	"github.com/creachadair/rjson/internal/reftab"
	"github.com/creachadair/rjson/value"
)

// To converts v into the Go value pointed to by target, which must be a
// non-nil pointer.
//
// If the target is an empty interface, v is converted to its natural Go form:
// nil, bool, string, int32, int64, float32, float64, []any, or a map. An
// object whose keys are all strings becomes a map[string]any, and any other
// object a map[any]any.
//
// Otherwise v must match the kind of the target. Numbers convert to any
// numeric type that can represent them exactly. Arrays convert to slices and
// Go arrays. Objects convert to maps, whose keys are converted like any other
// value, and to structs, whose fields are matched by name as for From.
// Object members with no corresponding struct field are ignored. Null
// converts to the zero value of a pointer, map, slice or interface.
//
// Each array and object is converted only once for each Go type it is
// converted to. If it is reached again, the Go value made for it is reused,
// so the result shares structure exactly where v does, including cycles.
func (c *Converter) To(v value.Value, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errorf("$", "target must be a non-nil pointer, got %T", target)
	}
	s := &toState{
		c:    c,
		refs: reftab.New[toKey, reflect.Value](),
	}
	if value.IsContainer(v) {
		s.refs.Record(toKey{src: v, typ: rv.Type()}, rv)
	}
	return s.to(v, rv.Elem(), "$")
}

// A toKey identifies a Go value made for a container converted to a type.
type toKey struct {
	src value.Value
	typ reflect.Type
}

type toState struct {
	c    *Converter
	refs *reftab.Table[toKey, reflect.Value]
}

func (s *toState) lookup(k toKey, path string) (reflect.Value, bool) {
	rv, ok := s.refs.Lookup(k)
	if ok && debug.Convert() {
		debug.Logf("[convert] at %s: reusing %v for %v", path, k.typ, k.src)
	}
	return rv, ok
}

var anyType = reflect.TypeFor[any]()

func (s *toState) to(v value.Value, dst reflect.Value, path string) error {
	if v == nil {
		v = value.Null{}
	}
	dt := dst.Type()
	if f, ok := s.c.to[dt]; ok {
		if err := f(v, dst); err != nil {
			return wrapError(path, err)
		}
		return nil
	}
	if dt.Implements(valueType) {
		if rv := reflect.ValueOf(v); rv.Type().AssignableTo(dt) {
			dst.Set(rv)
			return nil
		}
		return s.mismatch(v, dt, path)
	}

	_, isNull := v.(value.Null)
	switch dt.Kind() {
	case reflect.Interface:
		if dt.NumMethod() != 0 {
			return errorf(path, "cannot convert to %v", dt)
		}
		nat, err := s.natural(v, path)
		if err != nil {
			return err
		}
		if nat == nil {
			dst.SetZero()
		} else {
			dst.Set(reflect.ValueOf(nat))
		}
		return nil

	case reflect.Pointer:
		if isNull {
			dst.SetZero()
			return nil
		}
		key := toKey{src: v, typ: dt}
		if value.IsContainer(v) {
			if p, ok := s.lookup(key, path); ok {
				dst.Set(p)
				return nil
			}
		}
		p := reflect.New(dt.Elem())
		if value.IsContainer(v) {
			s.refs.Record(key, p)
		}
		if err := s.to(v, p.Elem(), path); err != nil {
			return err
		}
		dst.Set(p)
		return nil

	case reflect.Bool:
		b, ok := v.(value.Bool)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		dst.SetBool(bool(b))
		return nil

	case reflect.String:
		str, ok := v.(value.String)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		dst.SetString(string(str))
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(value.Number)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		z, exact := n.AsInt()
		if !exact || dst.OverflowInt(z) {
			return errorf(path, "value %v out of range for %v", n.AsFloat(), dt)
		}
		dst.SetInt(z)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := v.(value.Number)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		z, exact := n.AsInt()
		if !exact || z < 0 || dst.OverflowUint(uint64(z)) {
			return errorf(path, "value %v out of range for %v", n.AsFloat(), dt)
		}
		dst.SetUint(uint64(z))
		return nil

	case reflect.Float32, reflect.Float64:
		n, ok := v.(value.Number)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		f := n.AsFloat()
		if dst.OverflowFloat(f) {
			return errorf(path, "value %v out of range for %v", f, dt)
		}
		dst.SetFloat(f)
		return nil

	case reflect.Slice:
		if isNull {
			dst.SetZero()
			return nil
		}
		arr, ok := v.(*value.Array)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		key := toKey{src: arr, typ: dt}
		if sl, ok := s.lookup(key, path); ok {
			dst.Set(sl)
			return nil
		}
		sl := reflect.MakeSlice(dt, arr.Len(), arr.Len())
		s.refs.Record(key, sl)
		for i, elt := range arr.Values {
			if err := s.to(elt, sl.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		dst.Set(sl)
		return nil

	case reflect.Array:
		arr, ok := v.(*value.Array)
		if !ok {
			return s.mismatch(v, dt, path)
		} else if arr.Len() > dst.Len() {
			return errorf(path, "array of length %d does not fit %v", arr.Len(), dt)
		}
		for i, elt := range arr.Values {
			if err := s.to(elt, dst.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		for i := arr.Len(); i < dst.Len(); i++ {
			dst.Index(i).SetZero()
		}
		return nil

	case reflect.Map:
		if isNull {
			dst.SetZero()
			return nil
		}
		obj, ok := v.(*value.Object)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		key := toKey{src: obj, typ: dt}
		if m, ok := s.lookup(key, path); ok {
			dst.Set(m)
			return nil
		}
		m := reflect.MakeMapWithSize(dt, obj.Len())
		s.refs.Record(key, m)
		for k, elt := range obj.All() {
			kp := keyPath(path, keyText(k))
			mk := reflect.New(dt.Key()).Elem()
			if err := s.to(k, mk, kp); err != nil {
				return err
			}
			mv := reflect.New(dt.Elem()).Elem()
			if err := s.to(elt, mv, kp); err != nil {
				return err
			}
			if !mk.Comparable() {
				return errorf(kp, "key of type %v is not comparable", mk.Type())
			}
			m.SetMapIndex(mk, mv)
		}
		dst.Set(m)
		return nil

	case reflect.Struct:
		obj, ok := v.(*value.Object)
		if !ok {
			return s.mismatch(v, dt, path)
		}
		for _, f := range structFields(dt) {
			elt, ok := obj.Get(value.String(f.name))
			if !ok {
				continue
			}
			fv, err := fieldByIndexAlloc(dst, f.index)
			if err != nil {
				return errorf(keyPath(path, f.name), "%v", err)
			}
			if err := s.to(elt, fv, keyPath(path, f.name)); err != nil {
				return err
			}
		}
		return nil
	}
	return errorf(path, "cannot convert to %v", dt)
}

func (s *toState) mismatch(v value.Value, dt reflect.Type, path string) error {
	return errorf(path, "cannot convert %v to %v", value.KindOf(v), dt)
}

// fieldByIndexAlloc returns the field of struct v at the given index path,
// allocating nil embedded struct pointers along the way.
func fieldByIndexAlloc(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot set embedded pointer %v", v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("cannot set field of type %v", v.Type())
	}
	return v, nil
}

// natural converts v to its natural Go representation.
func (s *toState) natural(v value.Value, path string) (any, error) {
	switch t := v.(type) {
	case nil, value.Null:
		return nil, nil
	case value.Bool:
		return bool(t), nil
	case value.String:
		return string(t), nil
	case value.Int32:
		return int32(t), nil
	case value.Int64:
		return int64(t), nil
	case value.Float32:
		return float32(t), nil
	case value.Float64:
		return float64(t), nil

	case *value.Array:
		key := toKey{src: t, typ: anyType}
		if out, ok := s.lookup(key, path); ok {
			return out.Interface(), nil
		}
		out := make([]any, t.Len())
		s.refs.Record(key, reflect.ValueOf(out))
		for i, elt := range t.Values {
			nat, err := s.natural(elt, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = nat
		}
		return out, nil

	case *value.Object:
		key := toKey{src: t, typ: anyType}
		if out, ok := s.lookup(key, path); ok {
			return out.Interface(), nil
		}
		if stringKeys(t) {
			out := make(map[string]any, t.Len())
			s.refs.Record(key, reflect.ValueOf(out))
			for k, elt := range t.All() {
				name := string(k.(value.String))
				nat, err := s.natural(elt, keyPath(path, name))
				if err != nil {
					return nil, err
				}
				out[name] = nat
			}
			return out, nil
		}
		out := make(map[any]any, t.Len())
		s.refs.Record(key, reflect.ValueOf(out))
		for k, elt := range t.All() {
			kp := keyPath(path, keyText(k))
			if value.IsContainer(k) {
				return nil, errorf(kp, "%v key has no natural Go form", value.KindOf(k))
			}
			nk, err := s.natural(k, kp)
			if err != nil {
				return nil, err
			}
			nat, err := s.natural(elt, kp)
			if err != nil {
				return nil, err
			}
			out[nk] = nat
		}
		return out, nil
	}
	return nil, errorf(path, "unknown value type %T", v)
}

func stringKeys(o *value.Object) bool {
	for k := range o.Keys() {
		if _, ok := k.(value.String); !ok {
			return false
		}
	}
	return true
}
