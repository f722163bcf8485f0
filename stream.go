// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package rjson

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key begins at loc. Keys are arbitrary
	// values, so the events for the key follow.
	BeginMember(loc Anchor) error

	// Report the key-value separator (Colon or Equal) of the current member.
	// The events for the member value follow.
	MemberValue(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// handle comment tokens. If a handler implements this method, Comment will be
// called for each comment token that occurs in the input. If the handler does
// not provide this method, comments are silently discarded.
type CommentHandler interface {
	// Process the line or block comment at the specified location.
	// Line comments include their leading "//" and trailing newline (if present).
	// Block comments include their leading "/*" and trailing "*/".
	Comment(loc Anchor)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s      *Scanner
	strict bool // reject trailing commas in objects and arrays
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader) *Stream { return &Stream{s: NewScanner(r)} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays. They are allowed by default.
func (s *Stream) AllowTrailingCommas(ok bool) { s.strict = !ok }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case passError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError]; a malformed token is reported as a
// [*LexicalError], and errors from the reader or from h are returned as-is.
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for {
		if err := s.nextToken(h); err == io.EOF {
			h.EndOfInput(s.s)
			return nil
		} else if err != nil {
			return err
		}
		s.parseElement(h)
	}
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. Errors are reported as
// for Parse.
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.nextToken(h); err == io.EOF {
		h.EndOfInput(s.s)
		return err
	} else if err != nil {
		return err
	}
	s.parseElement(h)
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.s.Token(); tok {
	case LBrace:
		s.checkError(h.BeginObject(s.s))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.s))
	case LSquare:
		s.checkError(h.BeginArray(s.s))
		s.parseElements(h)
		s.checkError(h.EndArray(s.s))
	case Integer, Number, String, True, False, Null, Self:
		s.checkError(h.Value(s.s))
	case RBrace, RSquare, Comma, Colon, Equal:
		s.syntaxError("unexpected %v", tok)
	default:
		s.syntaxError("unknown token %v", tok)
	}
}

// parseMembers consumes zero of more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) {
	if tok := s.advance(h); tok == RBrace {
		return // empty object
	}
	for {
		// Parse a single member: key (":" | "=") value
		s.checkError(h.BeginMember(s.s))
		s.parseElement(h)
		s.advance(h, Colon, Equal)
		s.checkError(h.MemberValue(s.s))
		s.advance(h)
		s.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(h, RBrace, Comma)
		s.checkError(h.EndMember(s.s))
		if tok == RBrace {
			return // end of object
		}

		// If the next token is a close brace, this is a trailing comma.
		// Otherwise it must begin the key of a subsequent member.
		if next := s.advance(h); next == RBrace {
			if s.strict {
				s.syntaxError("unexpected %v after trailing comma", next)
			}
			return // end of object with trailing comma
		}
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	if tok := s.advance(h); tok == RSquare {
		return // empty array
	}
	s.parseElement(h)
	for {
		if tok := s.advance(h, RSquare, Comma); tok == RSquare {
			return // end of array
		}

		// If trailing commas are allowed and the next token is a close bracket,
		// consider this a valid end of the array; otherwise it will fail on the
		// next element.
		if next := s.advance(h); !s.strict && next == RSquare {
			return // end of array with trailing comma
		}
		s.parseElement(h)
	}
}

// nextToken advances to the next non-comment token. Comments are delivered to
// h if it implements CommentHandler.
func (s *Stream) nextToken(h Handler) error {
	for {
		if err := s.s.Next(); err != nil {
			return err
		}
		if tok := s.s.Token(); tok == LineComment || tok == BlockComment {
			if ch, ok := h.(CommentHandler); ok {
				ch.Comment(s.s)
			}
			continue // skip to the next token for the parser
		}
		return nil
	}
}

// advance moves to the next token, which must be one of tokens if any are
// given.  Reaching the end of input is a syntax error.
func (s *Stream) advance(h Handler, tokens ...Token) Token {
	if err := s.nextToken(h); err == io.EOF {
		s.syntaxError("%v", tokLabel(tokens, "end of input"))
	} else if err != nil {
		panic(passError{err})
	}
	tok := s.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError("%v", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) syntaxError(msg string, args ...any) {
	panic(&SyntaxError{
		Location: s.s.Location().First,
		Token:    s.s.Token(),
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(passError{err})
	}
}

// passError carries an error that is returned to the caller unmodified.
type passError struct{ error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected more input, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the stream parser
// for a well-formed token that is not permitted where it occurs.
type SyntaxError struct {
	Location LineCol // the start of the offending token
	Token    Token   // the offending token (Invalid at end of input)
	Message  string  // a description including what was expected
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}
