// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package rjson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"go4.org/mem"
)

// Token is the type of a lexical token in the grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Equal                // equal sign "="
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
	Self                 // self reference: this, this^N

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>

	// Do not modify the order of these constants without updating the
	// self-delimiting token check below.
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Equal:   `"="`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
	Self:    "self reference",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsValue reports whether t is a token that denotes a complete value on its
// own: a number, string, constant, or self reference.
func (t Token) IsValue() bool { return t >= Integer && t <= Self }

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// Comments are always recognized, and are reported as BlockComment and
// LineComment tokens. The Stream parser discards them.
type Scanner struct {
	r   *bufio.Reader
	buf bytes.Buffer // current token
	tok Token
	err error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. A malformed token is reported
// as a *LexicalError; an error from the underlying reader is returned as-is.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err != nil {
			return s.setErr(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(ch)
		}

		// Handle comments.
		if ch == '/' {
			return s.scanComment(ch)
		}

		// Handle names: true, false, null, this
		if !isNameRune(ch) {
			return s.failf("unexpected %q", ch)
		}
		if err := s.scanName(ch); err != nil {
			return err
		}
		switch got := mem.B(s.buf.Bytes()); {
		case got.Equal(mem.S("true")):
			s.tok = True
		case got.Equal(mem.S("false")):
			s.tok = False
		case got.Equal(mem.S("null")):
			s.tok = Null
		case got.Equal(mem.S("this")):
			return s.scanSelf()
		default:
			return s.failf("unknown constant %q", got.StringCopy())
		}
		return nil
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents of
// the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return bytes.Clone(s.buf.Bytes()) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	var esc bool
	var high bool // a high surrogate escape awaits its low half
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return s.setErr(err)
		} else if high && !(esc && ch == 'u') && !(ch == '\\' && !esc) {
			return s.failf("unpaired surrogate in string")
		} else if ch == open && !esc {
			s.buf.WriteRune(ch)
			s.tok = String
			return nil
		}
		if esc {
			// We are awaiting the completion of a \-escape.
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.buf.WriteByte(byte(ch))
			case 'u':
				s.buf.WriteByte(byte(ch))
				r, err := s.readHex4()
				if err != nil {
					return err
				}
				switch {
				case high && !isLowSurrogate(r):
					return s.failf("unpaired surrogate in string")
				case high:
					high = false
				case isLowSurrogate(r):
					return s.failf("unpaired surrogate in string")
				default:
					high = utf16.IsSurrogate(r)
				}
			default:
				return s.failf("invalid %q after escape", ch)
			}
			esc = false
		} else if ch < ' ' {
			return s.failf("unescaped control %q", ch)
		} else if ch == unicode.ReplacementChar && s.last == 1 {
			return s.failf("invalid UTF-8 in string")
		} else {
			s.buf.WriteRune(ch)
			esc = ch == '\\'
		}
	}
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)

	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := s.require(isDigit, "digit")
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
	}

	// Consume the remainder of an integer.
	if _, err := s.readWhile(isDigit); err != nil {
		return err
	}

	// Check for extra leading zeroes: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if ok, err := s.accept(isDot); err != nil {
		return err
	} else if ok {
		if nr, err := s.readWhile(isDigit); err != nil {
			return err
		} else if nr == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if ok, err := s.accept(isExpMark); err != nil {
		return err
	} else if ok {
		if _, err := s.accept(isSign); err != nil {
			return err
		}
		if nr, err := s.readWhile(isDigit); err != nil {
			return err
		} else if nr == 0 {
			return s.failf("missing exponent digits")
		}
		s.tok = Number
	}

	// A single width suffix may follow. Whether it is meaningful for this
	// number is decided when the literal is decoded.
	if _, err := s.accept(isSuffix); err != nil {
		return err
	}
	return nil
}

func (s *Scanner) scanComment(first rune) error {
	s.buf.WriteRune(first)
	ch, err := s.rune()
	if err == io.EOF {
		return s.failf("incomplete comment")
	} else if err != nil {
		return s.setErr(err)
	}
	switch ch {
	case '/': // line comment to LF
		s.buf.WriteRune(ch)
		for {
			ch, err := s.rune()
			if err == io.EOF {
				break
			} else if err != nil {
				return s.setErr(err)
			}
			s.buf.WriteRune(ch)
			if ch == '\n' {
				s.eline++
				s.ecol = 0
				break
			}
		}
		s.tok = LineComment
		return nil

	case '*': // block comment
		s.buf.WriteRune(ch)
		var star bool
		for {
			ch, err := s.rune()
			if err == io.EOF {
				return s.failf("unterminated block comment")
			} else if err != nil {
				return s.setErr(err)
			}
			s.buf.WriteRune(ch)
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			if star && ch == '/' {
				s.tok = BlockComment
				return nil
			}
			star = ch == '*'
		}

	default:
		s.unrune()
		return s.failf("invalid %q in comment", ch)
	}
}

func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, err := s.readWhile(isNameRune)
	return err
}

// scanSelf completes a self reference whose "this" keyword is already
// buffered, consuming an optional "^N" depth.
func (s *Scanner) scanSelf() error {
	s.tok = Self
	if ok, err := s.accept(isCaret); err != nil || !ok {
		return err
	}
	if nr, err := s.readWhile(isDigit); err != nil {
		return err
	} else if nr == 0 {
		return s.failf("missing depth after %q", "this^")
	}
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or returns an error
// mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.failf("want %s, got end of input", label)
	} else if err != nil {
		return 0, s.setErr(err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.failf("got %q, want %s", ch, label)
	}
	return ch, nil
}

// accept consumes and buffers one rune matching f, if one is next in the
// input. It reports whether a rune was consumed; end of input is not an
// error.
func (s *Scanner) accept(f func(rune) bool) (bool, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, s.setErr(err)
	} else if !f(ch) {
		s.unrune()
		return false, nil
	}
	s.buf.WriteRune(ch)
	return true, nil
}

// readWhile consumes and buffers runes matching f from the input until EOF or
// until a rune not matching f is found, which is left unread.  It reports the
// number of runes consumed; end of input is not an error.
func (s *Scanner) readWhile(f func(rune) bool) (int, error) {
	var nr int
	for {
		ok, err := s.accept(f)
		if err != nil || !ok {
			return nr, err
		}
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input, and returns
// the value they encode.
func (s *Scanner) readHex4() (rune, error) {
	var v rune
	for range 4 {
		ch, err := s.require(isHexDigit, "hex digit")
		if err != nil {
			return 0, err
		}
		s.buf.WriteRune(ch)
		v = v<<4 | hexValue(ch)
	}
	return v, nil
}

// LexicalError is the concrete type of errors reported by the scanner for
// malformed input tokens.
type LexicalError struct {
	Location LineCol // where the error was detected
	Offset   int     // byte offset where the error was detected
	Message  string
}

// Error satisfies the error interface.
func (e *LexicalError) Error() string {
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(&LexicalError{
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Offset:   s.end,
		Message:  fmt.Sprintf(msg, args...),
	})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }
func isDot(ch rune) bool      { return ch == '.' }
func isCaret(ch rune) bool    { return ch == '^' }
func isExpMark(ch rune) bool  { return ch == 'e' || ch == 'E' }
func isSign(ch rune) bool     { return ch == '-' || ch == '+' }
func isSuffix(ch rune) bool   { return strings.ContainsRune("LlFfDd", ch) }

func hexValue(ch rune) rune {
	switch {
	case ch >= 'a':
		return ch - 'a' + 10
	case ch >= 'A':
		return ch - 'A' + 10
	}
	return ch - '0'
}

func isLowSurrogate(r rune) bool { return r >= 0xdc00 && r < 0xe000 }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon, Equal}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:=", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
