// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package rjson_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/rjson"
	"github.com/google/go-cmp/cmp"
)

// scanAll returns the tokens and texts of input, or fails.
func scanAll(t *testing.T, input string) ([]rjson.Token, []string) {
	t.Helper()
	var toks []rjson.Token
	var texts []string
	s := rjson.NewScanner(strings.NewReader(input))
	for {
		err := s.Next()
		if err == io.EOF {
			return toks, texts
		} else if err != nil {
			t.Fatalf("Input %#q: Next failed: %v", input, err)
		}
		toks = append(toks, s.Token())
		texts = append(texts, string(s.Text()))
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []rjson.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []rjson.Token{rjson.True, rjson.False, rjson.Null}},
		{"this this^1 this^25", []rjson.Token{rjson.Self, rjson.Self, rjson.Self}},

		// Punctuation
		{"{ [ ] } , : =", []rjson.Token{
			rjson.LBrace, rjson.LSquare, rjson.RSquare, rjson.RBrace, rjson.Comma, rjson.Colon, rjson.Equal,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []rjson.Token{rjson.String, rjson.String, rjson.String}},
		{`"\"\\\/\b\f\n\r\t"`, []rjson.Token{rjson.String}},
		{`"\u0000\u01fc\uAA9c"`, []rjson.Token{rjson.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []rjson.Token{
			rjson.Integer, rjson.Integer, rjson.Integer,
			rjson.Number, rjson.Number, rjson.Number, rjson.Number,
		}},
		{`5L 7l 2F 2.5f 3D 1e3d`, []rjson.Token{
			rjson.Integer, rjson.Integer, rjson.Integer,
			rjson.Number, rjson.Integer, rjson.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []rjson.Token{
			rjson.LBrace, rjson.True, rjson.Comma, rjson.String, rjson.Colon,
			rjson.Integer, rjson.Null, rjson.LSquare, rjson.RSquare, rjson.RBrace,
		}},
		{`{"a"= true, "b":[null, 1, 0.5, this]}`, []rjson.Token{
			rjson.LBrace,
			rjson.String, rjson.Equal, rjson.True, rjson.Comma,
			rjson.String, rjson.Colon,
			rjson.LSquare,
			rjson.Null, rjson.Comma, rjson.Integer, rjson.Comma, rjson.Number, rjson.Comma, rjson.Self,
			rjson.RSquare,
			rjson.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []rjson.Token{
			rjson.String, rjson.Comma, rjson.Integer, rjson.Comma, rjson.True,
			rjson.False, rjson.LSquare, rjson.String, rjson.RSquare,
		}},
	}

	for _, test := range tests {
		got, _ := scanAll(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_text(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`5L -2.5e-3F this^12 "x\ty"`, []string{`5L`, `-2.5e-3F`, `this^12`, `"x\ty"`}},
		{`[this,this^1]`, []string{"[", "this", ",", "this^1", "]"}},
		{`{"k"=1D}`, []string{"{", `"k"`, "=", "1D", "}"}},
	}
	for _, test := range tests {
		_, got := scanAll(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nText: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_withComments(t *testing.T) {
	tests := []struct {
		input string
		want  []rjson.Token
		coms  []string
	}{
		{"/* block comment */\n\n\n", []rjson.Token{rjson.BlockComment},
			[]string{"/* block comment */"}},
		{"// line 1\n\n// line 2\n", []rjson.Token{rjson.LineComment, rjson.LineComment},
			[]string{"// line 1\n", "// line 2\n"}}, // N.B. includes terminating newline, if present
		{"// line at EOF", []rjson.Token{rjson.LineComment},
			[]string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []rjson.Token{
			rjson.LBrace, rjson.String, rjson.Colon, rjson.Integer, rjson.Comma, rjson.LineComment,
			rjson.String, rjson.BlockComment, rjson.Colon, rjson.Number, rjson.RBrace,
		}, []string{
			"// howdy do\n", "/* hide me */",
		}},

		{`"a" // line
false /*
  this is a comment
*/ 1 null [ {} ]`, []rjson.Token{
			rjson.String, rjson.LineComment, rjson.False, rjson.BlockComment,
			rjson.Integer, rjson.Null, rjson.LSquare, rjson.LBrace, rjson.RBrace, rjson.RSquare,
		}, []string{
			"// line\n", "/*\n  this is a comment\n*/",
		}},

		{"/**\n*/", []rjson.Token{rjson.BlockComment}, []string{"/**\n*/"}},

		{`/**/"foo"/***/this/****/"baz"/*****/false/*x*/null`, []rjson.Token{
			rjson.BlockComment, rjson.String,
			rjson.BlockComment, rjson.Self,
			rjson.BlockComment, rjson.String,
			rjson.BlockComment, rjson.False,
			rjson.BlockComment, rjson.Null,
		}, []string{
			"/**/", "/***/", "/****/", "/*****/", "/*x*/",
		}},
	}

	for _, test := range tests {
		got, texts := scanAll(t, test.input)
		var coms []string
		for i, tok := range got {
			if tok == rjson.LineComment || tok == rjson.BlockComment {
				coms = append(coms, texts[i])
			}
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input: %#q\nComments: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`01`, "at 1:2: extra leading zeroes"},
		{`-`, "at 1:1: want digit, got end of input"},
		{`-x`, `at 1:1: got 'x', want digit`},
		{`1.`, "at 1:2: no digits after decimal point"},
		{`1.e5`, "at 1:2: no digits after decimal point"},
		{`2e+`, "at 1:3: missing exponent digits"},
		{`"what did you`, "at 1:13: unterminated string"},
		{`"a\qb"`, `at 1:4: invalid 'q' after escape`},
		{"\"a\x01\"", `at 1:3: unescaped control '\x01'`},
		{`"\u12"`, `at 1:5: got '"', want hex digit`},
		{"\"\xff\"", "at 1:2: invalid UTF-8 in string"},
		{`"\ud800"`, "at 1:8: unpaired surrogate in string"},
		{`"\ud800x"`, "at 1:8: unpaired surrogate in string"},
		{`"\ud800\n"`, "at 1:9: unpaired surrogate in string"},
		{`"\ud800\u0041"`, "at 1:13: unpaired surrogate in string"},
		{`"\udc00\ud800"`, "at 1:7: unpaired surrogate in string"},
		{`/* open`, "at 1:7: unterminated block comment"},
		{`/`, "at 1:1: incomplete comment"},
		{`/x`, `at 1:1: invalid 'x' in comment`},
		{`forthright`, `at 1:10: unknown constant "forthright"`},
		{`this^`, `at 1:5: missing depth after "this^"`},
		{`@`, `at 1:1: unexpected '@'`},
		{"\n\n  #", `at 3:3: unexpected '#'`},
	}
	for _, test := range tests {
		s := rjson.NewScanner(strings.NewReader(test.input))
		var err error
		for err == nil {
			err = s.Next()
		}
		var lerr *rjson.LexicalError
		if !errors.As(err, &lerr) {
			t.Errorf("Input %#q: got error %v, want *LexicalError", test.input, err)
			continue
		}
		if got := err.Error(); got != test.want {
			t.Errorf("Input %#q: got error %q, want %q", test.input, got, test.want)
		}
		if s.Err() != err {
			t.Errorf("Input %#q: Err() = %v, want %v", test.input, s.Err(), err)
		}
	}
}

func TestScannerReadError(t *testing.T) {
	bad := errors.New("read failed")
	s := rjson.NewScanner(io.MultiReader(strings.NewReader(`[1, `), iotest.ErrReader(bad)))
	var err error
	for err == nil {
		err = s.Next()
	}
	if err != bad {
		t.Errorf("Next: got error %v, want %v", err, bad)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		got := rjson.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok rjson.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{rjson.LBrace, "1:0-1"}, {rjson.RBrace, "1:2-3"}}},
		{`"foo" // bar`, []tokPos{{rjson.String, "1:0-5"}, {rjson.LineComment, "1:6-12"}}},
		{"/* ok */\ntrue\n false\n", []tokPos{{rjson.BlockComment, "1:0-8"}, {rjson.True, "2:0-4"}, {rjson.False, "3:1-6"}}},
		{"/* abc */", []tokPos{{rjson.BlockComment, "1:0-9"}}},
		{"/* ok\n*/\n null", []tokPos{{rjson.BlockComment, "1:0-2:2"}, {rjson.Null, "3:1-5"}}},
		{"[this^2 ,5L]", []tokPos{
			{rjson.LSquare, "1:0-1"}, {rjson.Self, "1:1-7"}, {rjson.Comma, "1:8-9"},
			{rjson.Integer, "1:9-11"}, {rjson.RSquare, "1:11-12"},
		}},
		{"// first\n[1, /*x*/, 2\n]", []tokPos{
			{rjson.LineComment, "1:0-2:0"}, {rjson.LSquare, "2:0-1"}, {rjson.Integer, "2:1-2"},
			{rjson.Comma, "2:2-3"}, {rjson.BlockComment, "2:4-9"}, {rjson.Comma, "2:9-10"},
			{rjson.Integer, "2:11-12"}, {rjson.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := rjson.NewScanner(strings.NewReader(tc.input))
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if err := s.Err(); err != io.EOF {
			t.Errorf("Next failed: %v", err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                          // missing quotes
		{`"missing quote`, ``, true},            // missing quotes
		{`missing quote"`, ``, true},            // missing quotes
		{`""`, ``, false},                       // ok
		{`"ok go"`, "ok go", false},             // ok
		{`"abc\ndef"`, "abc\ndef", false},       // C escapes
		{`"\tabc\n"`, "\tabc\n", false},         // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},   // C escapes
		{`"a \u0026 b"`, "a & b", false},        // short Unicode escape
		{`"\ud83d\ude00"`, "\U0001F600", false}, // surrogate pair
		{`"\ud83d"`, ``, true},                  // unpaired high surrogate
		{`"\ude00x"`, ``, true},                 // unpaired low surrogate
		{`"\ud83d\u0041"`, ``, true},            // high surrogate without low
		{`"\u"`, ``, true},                      // incomplete Unicode escape
		{`"\u00"`, ``, true},                    // incomplete Unicode escape
		{`"\q"`, ``, true},                      // invalid escape
		{`"a\"b"`, `a"b`, false},                // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},         // ok
	}

	for _, test := range tests {
		got, err := rjson.Unquote([]byte(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
			continue
		} else if test.fail {
			t.Errorf("Unquote(%#q): got %#q, want error", test.input, got)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}
