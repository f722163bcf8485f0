// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/rjson"
	"github.com/creachadair/rjson/convert"
	"github.com/creachadair/rjson/internal/debug"
	"github.com/creachadair/rjson/internal/reftab"
	"github.com/creachadair/rjson/value"
)

// ErrExtraInput is reported by Parse when the input contains more than one
// value.
var ErrExtraInput = errors.New("extra input after value")

// A ParseOption configures parsing.
type ParseOption func(*parseConfig)

type parseConfig struct {
	strict bool
	conv   *convert.Converter
}

func newParseConfig(opts []ParseOption) *parseConfig {
	cfg := new(parseConfig)
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

func (c *parseConfig) newStream(s *rjson.Scanner) *rjson.Stream {
	st := rjson.NewStreamWithScanner(s)
	st.AllowTrailingCommas(!c.strict)
	return st
}

// Strict is a ParseOption that rejects trailing commas in objects and arrays.
func Strict() ParseOption { return func(c *parseConfig) { c.strict = true } }

// WithConverter is a ParseOption that sets the converter used by Decode.
// By default Decode uses convert.Default().
func WithConverter(cv *convert.Converter) ParseOption {
	return func(c *parseConfig) { c.conv = cv }
}

// Parse parses and returns a single value from r. If r contains another
// value after the first, Parse returns the first value along with an error
// wrapping ErrExtraInput. If r contains no value, Parse reports
// io.ErrUnexpectedEOF.
func Parse(r io.Reader, opts ...ParseOption) (value.Value, error) {
	return ParseInto(r, nil, opts...)
}

// ParseString parses and returns a single value from s, as Parse.
func ParseString(s string, opts ...ParseOption) (value.Value, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseInto parses a single value from r, as Parse, merging it into target.
//
// If target is an *value.Object and the input is an object, or target is an
// *value.Array and the input is an array, the input is merged into target
// and target is returned. Otherwise a new value is returned and target is
// not modified.
//
// An object merges by key: each input member replaces the target member with
// the same key, or is added at the end if the key is new. An array merges by
// offset: each input element replaces the target element at the same offset,
// and elements beyond the end of the target are appended. In either case, if
// the target already holds a container of the same kind as the input value,
// the input is merged into that container recursively instead of replacing
// it. A container that encloses the one being merged is never merged into
// again; it is replaced by a new container.
//
// Members and elements of target not mentioned by the input are unchanged.
func ParseInto(r io.Reader, target value.Value, opts ...ParseOption) (value.Value, error) {
	cfg := newParseConfig(opts)
	sc := rjson.NewScanner(r)
	h := newParseHandler(target)
	if err := cfg.newStream(sc).ParseOne(h); err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	} else if err != nil {
		return nil, err
	}
	v, err := h.result()
	if err != nil {
		return nil, err
	}

	// Check for extra values after the first.
	for {
		err := sc.Next()
		if err == io.EOF {
			return v, nil
		} else if err != nil {
			return v, err
		} else if tok := sc.Token(); tok == rjson.LineComment || tok == rjson.BlockComment {
			continue
		}
		return v, fmt.Errorf("at %s: %w", sc.Location().First, ErrExtraInput)
	}
}

// ParseAll parses and returns all the values from r. In case of error, any
// complete values already parsed are returned along with the error.
func ParseAll(r io.Reader, opts ...ParseOption) ([]value.Value, error) {
	cfg := newParseConfig(opts)
	st := cfg.newStream(rjson.NewScanner(r))
	var vs []value.Value
	for {
		h := newParseHandler(nil)
		if err := st.ParseOne(h); err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		v, err := h.result()
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

// Decode parses a single value from r, as Parse, and converts it into the
// Go value pointed to by target.
func Decode(r io.Reader, target any, opts ...ParseOption) error {
	v, err := Parse(r, opts...)
	if err != nil {
		return err
	}
	cv := newParseConfig(opts).conv
	if cv == nil {
		cv = convert.Default()
	}
	return cv.To(v, target)
}

// A frame is a container under construction.
type frame struct {
	obj   *value.Object // if non-nil, the object being built
	arr   *value.Array  // if non-nil, the array being built
	merge bool          // whether existing contents are merged

	next    int         // array: offset of the next element
	key     value.Value // object: key of the current member
	haveKey bool        // object: key is complete, value is pending

	// object: keys assigned by this parse, whose values are replaced rather
	// than merged if the key occurs again
	seen mapset.Set[value.Value]
}

func (f *frame) container() value.Value {
	if f.obj != nil {
		return f.obj
	}
	return f.arr
}

// A parseHandler implements the rjson.Handler interface to construct values.
type parseHandler struct {
	stk    []*frame
	refs   *reftab.Table[value.Value, struct{}]
	target value.Value // merge target for the top-level value

	out  value.Value
	done bool
}

func newParseHandler(target value.Value) *parseHandler {
	return &parseHandler{
		refs:   reftab.New[value.Value, struct{}](),
		target: target,
	}
}

func (h *parseHandler) result() (value.Value, error) {
	if len(h.stk) != 0 || !h.done {
		return nil, errors.New("incomplete value")
	}
	return h.out, nil
}

func (h *parseHandler) top() *frame { return h.stk[len(h.stk)-1] }

// existing returns the value already present at the slot the next value will
// fill, or nil if there is none.
func (h *parseHandler) existing() value.Value {
	if len(h.stk) == 0 {
		if h.done {
			return nil
		}
		return h.target
	}
	f := h.top()
	if !f.merge {
		return nil
	}
	if f.obj != nil {
		if !f.haveKey || f.seen.Has(f.key) {
			return nil // a key is never merged, and the last write wins
		}
		v, _ := f.obj.Get(f.key)
		return v
	}
	if f.next < f.arr.Len() {
		return f.arr.Values[f.next]
	}
	return nil
}

// reusable reports whether old may be merged into. A container that is in
// progress encloses the current position and is not reused.
func (h *parseHandler) reusable(old value.Value) bool {
	switch t := old.(type) {
	case nil:
		return false
	case *value.Object:
		if t == nil {
			return false
		}
	case *value.Array:
		if t == nil {
			return false
		}
	}
	if h.refs.Active(old) {
		if debug.Parse() {
			debug.Logf("[parse] not merging into enclosing %v", old)
		}
		return false
	}
	return true
}

func (h *parseHandler) open(f *frame) {
	h.refs.Enter(f.container())
	h.stk = append(h.stk, f)
}

func (h *parseHandler) close() error {
	f := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	h.refs.Leave(f.container())
	return h.reduce(f.container())
}

// reduce stores a completed value v into the enclosing container.
func (h *parseHandler) reduce(v value.Value) error {
	if len(h.stk) == 0 {
		h.out, h.done = v, true
		return nil
	}
	f := h.top()
	switch {
	case f.obj != nil && !f.haveKey:
		f.key, f.haveKey = v, true
	case f.obj != nil:
		f.obj.Set(f.key, v)
		if f.merge {
			f.seen.Add(f.key)
		}
	case f.merge && f.next < f.arr.Len():
		f.arr.Set(f.next, v)
		f.next++
	default:
		f.arr.Append(v)
		f.next++
	}
	return nil
}

func (h *parseHandler) BeginObject(loc rjson.Anchor) error {
	if old, ok := h.existing().(*value.Object); ok && h.reusable(old) {
		if debug.Parse() {
			debug.Logf("[parse] at %s: merging into %v", loc.Location().First, old)
		}
		h.open(&frame{obj: old, merge: true, seen: mapset.New[value.Value]()})
	} else {
		h.open(&frame{obj: value.NewObject()})
	}
	return nil
}

func (h *parseHandler) EndObject(loc rjson.Anchor) error { return h.close() }

func (h *parseHandler) BeginArray(loc rjson.Anchor) error {
	if old, ok := h.existing().(*value.Array); ok && h.reusable(old) {
		if debug.Parse() {
			debug.Logf("[parse] at %s: merging into %v", loc.Location().First, old)
		}
		h.open(&frame{arr: old, merge: true})
	} else {
		h.open(&frame{arr: value.NewArray()})
	}
	return nil
}

func (h *parseHandler) EndArray(loc rjson.Anchor) error { return h.close() }

func (h *parseHandler) BeginMember(loc rjson.Anchor) error {
	f := h.top()
	f.key, f.haveKey = nil, false
	return nil
}

func (h *parseHandler) MemberValue(loc rjson.Anchor) error { return nil }

func (h *parseHandler) EndMember(loc rjson.Anchor) error {
	f := h.top()
	f.key, f.haveKey = nil, false
	return nil
}

func (h *parseHandler) Value(loc rjson.Anchor) error {
	if loc.Token() == rjson.Self {
		v, err := h.resolveSelf(loc)
		if err != nil {
			return err
		}
		return h.reduce(v)
	}
	v, err := value.Decode(loc.Token(), loc.Text())
	if err != nil {
		var lerr *value.LiteralError
		if errors.As(err, &lerr) {
			lerr.Location = loc.Location().First
		}
		return err
	}
	return h.reduce(v)
}

// resolveSelf returns the in-progress container denoted by a self reference.
func (h *parseHandler) resolveSelf(loc rjson.Anchor) (value.Value, error) {
	text := string(loc.Text())
	var depth int
	if _, num, ok := strings.Cut(text, "^"); ok {
		n, err := strconv.Atoi(num)
		if err != nil {
			return nil, h.selfError(loc, "invalid depth in %s", text)
		}
		depth = n
	}
	v, ok := h.refs.Outer(depth)
	if !ok {
		if h.refs.Open() == 0 {
			return nil, h.selfError(loc, "%s outside any object or array", text)
		}
		return nil, h.selfError(loc, "%s exceeds nesting depth %d", text, h.refs.Open())
	}
	if debug.Parse() {
		debug.Logf("[parse] at %s: %s is %v", loc.Location().First, text, v)
	}
	return v, nil
}

func (h *parseHandler) selfError(loc rjson.Anchor, msg string, args ...any) error {
	return &rjson.SyntaxError{
		Location: loc.Location().First,
		Token:    rjson.Self,
		Message:  fmt.Sprintf(msg, args...),
	}
}

func (h *parseHandler) EndOfInput(loc rjson.Anchor) {}
