// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of a value.
//
// A cursor only ever moves along edges of the value graph, one step per path
// element, so it is safe to use on cyclic values.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/rjson/value"
)

// Path traverses a sequential path into the structure of v where path
// elements are as documented for the Cursor.Down method, and returns the
// value reached converted to type T.
func Path[T value.Value](v value.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// ParsePath splits a dotted path string like "a.b.0" into path elements for
// Down. Segments that parse as decimal integers become int indexes; all other
// segments are object keys. An empty string yields an empty path.
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	var out []any
	for _, seg := range strings.Split(s, ".") {
		if n, err := strconv.Atoi(seg); err == nil {
			out = append(out, n)
		} else {
			out = append(out, seg)
		}
	}
	return out
}

// A Cursor is a pointer that navigates into the structure of a value.
type Cursor struct {
	org value.Value
	stk []value.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin value.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() value.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() value.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the
// current location of c. A value may occur more than once if the cursor has
// followed a cycle.
func (c *Cursor) Path() []value.Value {
	return append([]value.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() {
	c.stk = c.stk[:0]
	c.err = nil
}

// Down traverses a sequential path into the structure of c starting from the
// current value. If the path cannot be completely consumed, traversal stops
// at the last value reached and an error is recorded. Use Err to recover the
// error. Down returns c to permit chaining.
//
// A string path element selects the member of an object with that string
// key. A value.Value path element selects the member of an object with that
// key, which permits keys of any kind.
//
// An int path element selects the element of an array at that offset, or the
// value of the member of an object at that offset in insertion order.
// Negative offsets count backward from the end (-1 is last).
//
// A function path element must have the signature
//
//	func(value.Value) (value.Value, error)
//
// It is called with the current value and its result becomes the next value.
// If the function reports an error, traversal stops and the error is
// recorded. A nil path element is ignored.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			o, ok := cur.(*value.Object)
			if !ok {
				return c.setErrorf("cannot traverse %v with %q", value.KindOf(cur), t)
			}
			next, ok := o.Get(value.String(t))
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			switch e := cur.(type) {
			case *value.Array:
				i, ok := fixBound(e.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.Values[i])
			case *value.Object:
				i, ok := fixBound(e.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.At(i).Value)
			default:
				return c.setErrorf("cannot traverse %v with %d", value.KindOf(cur), t)
			}

		case func(value.Value) (value.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		case nil:
			// Do nothing.

		case value.Value:
			o, ok := cur.(*value.Object)
			if !ok {
				return c.setErrorf("cannot traverse %v with key %v", value.KindOf(cur), t)
			}
			next, ok := o.Get(t)
			if !ok {
				return c.setErrorf("key %v not found", t)
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v value.Value) value.Value {
	c.stk = append(c.stk, v)
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
