// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/rjson/tree"
	"github.com/creachadair/rjson/value"
	"github.com/fatih/color"
)

func TestFormat(t *testing.T) {
	v := value.NewObject(value.Field("map", value.NewObject(
		value.Field("number", value.NewArray(value.Int64(9), value.Int64(3), value.Int64(5))),
	)))
	const want = "{\n\t\"map\":{\n\t\t\"number\":[\n\t\t\t9L,\n\t\t\t3L,\n\t\t\t5L\n\t\t]\n\t}\n}"

	var buf strings.Builder
	if err := tree.Format(&buf, v); err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	if got := buf.String(); got != want {
		t.Errorf("Format: got %q, want %q", got, want)
	}
	if got := tree.FormatToString(v); got != want {
		t.Errorf("FormatToString: got %q, want %q", got, want)
	}

	f := tree.Formatter{Indent: "  "}
	got, err := f.FormatString(value.NewArray(value.Bool(true), value.NewObject()))
	if err != nil {
		t.Fatalf("FormatString: unexpected error: %v", err)
	}
	if want := "[\n  true,\n  {}\n]"; got != want {
		t.Errorf("FormatString: got %q, want %q", got, want)
	}
}

func TestFormatCompact(t *testing.T) {
	shared := value.NewArray(value.Int32(1))
	cycle := value.NewArray(value.Int32(1), value.Int64(2))
	cycle.Append(cycle)
	outer := value.NewObject()
	outer.Set(value.String("arr"), value.NewArray(outer, value.NewArray()))
	keyed := value.NewObject(value.Field("x", nil))
	keyed.Set(keyed, value.String("me"))
	keyed.Set(value.NewArray(value.Int32(1)), value.Bool(true))

	tests := []struct {
		input value.Value
		want  string
	}{
		{nil, "null"},
		{value.Null{}, "null"},
		{value.String("a\"b"), `"a\"b"`},
		{value.Float64(100), "100.0"},
		{value.Float32(0.5), "0.5F"},
		{value.NewArray(), "[]"},
		{value.NewObject(), "{}"},
		{value.NewObject(
			value.Member{Key: value.Int32(1), Value: value.Null{}},
			value.Member{Key: value.Bool(false), Value: value.Float64(-1.5)},
		), `{1:null,false:-1.5}`},

		// Shared structure without a cycle is written out each time.
		{value.NewArray(shared, shared), `[[1],[1]]`},

		// Cycles are closed with self references.
		{cycle, `[1,2L,this]`},
		{outer, `{"arr":[this^1,[]]}`},
		{keyed, `{"x":null,this:"me",[1]:true}`},
	}
	f := tree.Formatter{Compact: true}
	for _, test := range tests {
		got, err := f.FormatString(test.input)
		if err != nil {
			t.Errorf("FormatString %v: unexpected error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("FormatString %v: got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		`{"name": "loop", "next": this, "items": [1, 2.5, 3L, 4F, this^1]}`,
		`[[this^1, [this^2, this^1, this]], {"k": this^1}]`,
		`{this: [this^1], {"a": this^1}: "nested key"}`,
		`{"a": {"b": {"c": [this^3, this^2, this^1, this]}}}`,
	}
	for _, input := range inputs {
		v := mustParse(t, input)
		for _, f := range []tree.Formatter{{}, {Compact: true}, {Indent: "  "}} {
			text, err := f.FormatString(v)
			if err != nil {
				t.Fatalf("FormatString: unexpected error: %v", err)
			}
			got := mustParse(t, text)
			if !value.Equal(got, v) {
				t.Errorf("Round trip of %q via %q: got %s", input, text, tree.FormatToString(got))
			}
		}
	}
}

func TestFormatErrors(t *testing.T) {
	for _, v := range []value.Value{
		value.Float64(math.NaN()),
		value.NewArray(value.Int32(1), value.Float32(float32(math.Inf(1)))),
		value.NewObject(value.Field("x", value.Float64(math.Inf(-1)))),
		value.NewArray(value.String("\xff\xfe")),
		value.NewObject(value.Member{Key: value.String("k\x80"), Value: value.Int32(1)}),
	} {
		var f tree.Formatter
		got, err := f.FormatString(v)
		if !value.IsLiteralError(err) {
			t.Errorf("FormatString %v: got (%q, %v), want *LiteralError", v, got, err)
		}
		mtest.MustPanic(t, func() { tree.FormatToString(v) })
	}

	// Errors writing to the output are reported.
	werr := errors.New("write failed")
	if err := tree.Format(failWriter{werr}, value.NewArray(value.Int32(1))); !errors.Is(err, werr) {
		t.Errorf("Format: got %v, want %v", err, werr)
	}
}

func TestFormatColors(t *testing.T) {
	v := value.NewObject(
		value.Field("a", value.NewArray(value.Int32(1), value.String("s"), value.Null{})),
	)
	v.Set(value.String("me"), v)

	t.Run("Custom", func(t *testing.T) {
		tag := func(name string) func(string) string {
			return func(s string) string { return fmt.Sprintf("<%s>%s", name, s) }
		}
		f := tree.Formatter{Compact: true, Colors: &tree.Colors{
			Default: func(s string) string { return s },
			Map: map[tree.ColorAttr]func(string) string{
				tree.KeyColor:      tag("k"),
				tree.StringColor:   tag("s"),
				tree.NumberColor:   tag("n"),
				tree.ConstantColor: tag("c"),
				tree.SelfColor:     tag("t"),
			},
		}}
		got, err := f.FormatString(v)
		if err != nil {
			t.Fatalf("FormatString: unexpected error: %v", err)
		}
		const want = `{<k>"a":[<n>1,<s>"s",<c>null],<k>"me":<t>this}`
		if got != want {
			t.Errorf("FormatString: got %#q, want %#q", got, want)
		}
	})

	t.Run("NoColor", func(t *testing.T) {
		save := color.NoColor
		defer func() { color.NoColor = save }()
		color.NoColor = true

		f := tree.Formatter{Colors: tree.NewColors()}
		got, err := f.FormatString(v)
		if err != nil {
			t.Fatalf("FormatString: unexpected error: %v", err)
		}
		if want := tree.FormatToString(v); got != want {
			t.Errorf("FormatString: got %q, want %q", got, want)
		}
	})

	t.Run("Nil", func(t *testing.T) {
		var c *tree.Colors
		if got := c.Color(tree.KeyColor, "x"); got != "x" {
			t.Errorf("Color: got %q, want x", got)
		}
	})
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }
