// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/rjson/internal/debug"
	"github.com/creachadair/rjson/internal/reftab"
	"github.com/creachadair/rjson/value"
)

// A Formatter carries the settings for writing values as text.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the text written once per level of nesting. If empty, a
	// single tab is used.
	Indent string

	// If Compact is true, the output is a single line without whitespace.
	Compact bool

	// If non-nil, Colors decorates the output.
	Colors *Colors
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "\t"
	}
	return f.Indent
}

// Format writes v to w with default settings.
func Format(w io.Writer, v value.Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString renders v as a string with default settings. It panics if v
// cannot be formatted, which happens only if v contains a NaN or infinity.
func FormatToString(v value.Value) string {
	var f Formatter
	s, err := f.FormatString(v)
	if err != nil {
		panic(err)
	}
	return s
}

// FormatString renders v as a string using the settings from f.
func (f Formatter) FormatString(v value.Value) (string, error) {
	var sb strings.Builder
	if err := f.Format(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Format writes v to w using the settings from f.
//
// A container that encloses itself is written once; each later occurrence
// within it is written as a self reference ("this" or "this^N"), so the
// output parses back to a value of the same shape. A container shared by
// several parts of v without a cycle is written in full at each occurrence.
//
// Format reports a *value.LiteralError if v contains a number with no literal
// form. An error writing to w is returned without change.
func (f Formatter) Format(w io.Writer, v value.Value) error {
	fw := &formatWriter{
		Formatter: f,
		w:         bufio.NewWriter(w),
		refs:      reftab.New[value.Value, struct{}](),
	}
	if err := fw.value(v, 0); err != nil {
		return err
	}
	return fw.w.Flush()
}

type formatWriter struct {
	Formatter
	w    *bufio.Writer
	refs *reftab.Table[value.Value, struct{}]
}

func (f *formatWriter) put(a ColorAttr, s string) { f.w.WriteString(f.Colors.Color(a, s)) }

// newline starts a new line indented to the given depth.
func (f *formatWriter) newline(depth int) {
	if f.Compact {
		return
	}
	f.w.WriteByte('\n')
	for range depth {
		f.w.WriteString(f.indent())
	}
}

// selfRef writes a self reference for c and reports true if c is in progress.
func (f *formatWriter) selfRef(c value.Value) bool {
	n, ok := f.refs.Depth(c)
	if !ok {
		return false
	}
	ref := "this"
	if n > 0 {
		ref += "^" + strconv.Itoa(n)
	}
	if debug.Format() {
		debug.Logf("[format] closing cycle at %v with %s", c, ref)
	}
	f.put(SelfColor, ref)
	return true
}

func (f *formatWriter) value(v value.Value, depth int) error {
	switch t := v.(type) {
	case *value.Object:
		return f.object(t, depth)
	case *value.Array:
		return f.array(t, depth)
	default:
		return f.scalar(v, StringColor)
	}
}

func (f *formatWriter) scalar(v value.Value, sattr ColorAttr) error {
	s, err := value.Encode(v)
	if err != nil {
		return err
	}
	switch value.KindOf(v) {
	case value.StringKind:
		f.put(sattr, s)
	case value.NumberKind:
		f.put(NumberColor, s)
	case value.BoolKind, value.NullKind:
		f.put(ConstantColor, s)
	default:
		return fmt.Errorf("unknown value type %T", v)
	}
	return nil
}

func (f *formatWriter) object(o *value.Object, depth int) error {
	if f.selfRef(o) {
		return nil
	}
	if o.Len() == 0 {
		f.put(PunctColor, "{}")
		return nil
	}
	f.refs.Enter(o)
	defer f.refs.Leave(o)

	f.put(PunctColor, "{")
	for i := range o.Len() {
		if i > 0 {
			f.put(PunctColor, ",")
		}
		f.newline(depth + 1)
		m := o.At(i)
		var err error
		if value.IsContainer(m.Key) {
			err = f.value(m.Key, depth+1)
		} else {
			err = f.scalar(m.Key, KeyColor)
		}
		if err != nil {
			return err
		}
		f.put(PunctColor, ":")
		if err := f.value(m.Value, depth+1); err != nil {
			return err
		}
	}
	f.newline(depth)
	f.put(PunctColor, "}")
	return nil
}

func (f *formatWriter) array(a *value.Array, depth int) error {
	if f.selfRef(a) {
		return nil
	}
	if a.Len() == 0 {
		f.put(PunctColor, "[]")
		return nil
	}
	f.refs.Enter(a)
	defer f.refs.Leave(a)

	f.put(PunctColor, "[")
	for i, v := range a.Values {
		if i > 0 {
			f.put(PunctColor, ",")
		}
		f.newline(depth + 1)
		if err := f.value(v, depth+1); err != nil {
			return err
		}
	}
	f.newline(depth)
	f.put(PunctColor, "]")
	return nil
}
