// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"testing"

	"github.com/creachadair/rjson/tree"
	"github.com/creachadair/rjson/value"
)

func TestFormatAll(t *testing.T) {
	const input = `{"a": [1, 2L], "me": this} // first
true`
	got, err := formatAll(tree.Formatter{Compact: true}, []byte(input), nil)
	if err != nil {
		t.Fatalf("formatAll: unexpected error: %v", err)
	}
	if want := "{\"a\":[1,2L],\"me\":this}\ntrue\n"; got != want {
		t.Errorf("formatAll: got %q, want %q", got, want)
	}

	strict := (&MainConfig{Strict: true}).parseOpts()
	if _, err := formatAll(tree.Formatter{}, []byte(`[1,]`), strict); err == nil {
		t.Error("formatAll strict: got no error, want error")
	}
}

func TestErrorLine(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"a" 1}`, `in.rjson:1:5: expected ":" or "=", got integer`},
		{"[\n  01]", "in.rjson:2:4: extra leading zeroes"},
		{"[\n  1.5L]", "in.rjson:2:2: invalid literal 1.5L: suffix L requires an integer"},
		{"", "in.rjson: unexpected EOF"},
	}
	for _, test := range tests {
		_, err := tree.ParseString(test.input)
		if err == nil {
			t.Fatalf("Parse %q: got no error", test.input)
		}
		if got := errorLine("in.rjson", err); got != test.want {
			t.Errorf("errorLine %q: got %q, want %q", test.input, got, test.want)
		}
	}
	if got, want := errorLine("x", errors.New("bad")), "x: bad"; got != want {
		t.Errorf("errorLine: got %q, want %q", got, want)
	}
}

func TestLineDiff(t *testing.T) {
	if got := lineDiff("a\nb\n", "a\nb\n"); got != "" {
		t.Errorf("lineDiff equal: got %q, want empty", got)
	}
	got := lineDiff("a\nb\nc\n", "a\nB\nc\nd")
	const want = " a\n-b\n+B\n c\n+d\n\\ No newline at end of file\n"
	if got != want {
		t.Errorf("lineDiff: got %q, want %q", got, want)
	}
}

func TestImport(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		v, err := fromJSON([]byte(`{"b": [1, 2,], /* c */ "a": null}`))
		if err != nil {
			t.Fatalf("fromJSON: unexpected error: %v", err)
		}
		want, _ := tree.ParseString(`{"b": [1, 2], "a": null}`)
		if !value.Equal(v, want) {
			t.Errorf("fromJSON: got %s, want %s", tree.FormatToString(v), tree.FormatToString(want))
		}

		// The self reference syntax is not JSON.
		if v, err := fromJSON([]byte(`[this]`)); err == nil {
			t.Errorf("fromJSON: got %s, want error", tree.FormatToString(v))
		}
	})

	t.Run("YAML", func(t *testing.T) {
		v, err := fromYAML([]byte("zeta: x\nalpha:\n  - true\n  - 'y'\nmid:\n  k: null\n"))
		if err != nil {
			t.Fatalf("fromYAML: unexpected error: %v", err)
		}
		// Mappings keep their document order.
		want, _ := tree.ParseString(`{"zeta": "x", "alpha": [true, "y"], "mid": {"k": null}}`)
		if !value.Equal(v, want) {
			t.Errorf("fromYAML: got %s, want %s", tree.FormatToString(v), tree.FormatToString(want))
		}
	})
}
