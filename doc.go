// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package rjson implements a scanner and parser for a relaxed JSON dialect
// that can describe cyclic values.
//
// The dialect extends JSON with:
//
//   - Line (// ...) and block (/* ... */) comments between any two tokens.
//   - Trailing commas in objects and arrays.
//   - Object keys that are arbitrary values, separated from their values by
//     either ":" or "=".
//   - Numbers with a width suffix: L for 64-bit integers, F for 32-bit and D
//     for 64-bit floating point.
//   - Self references: "this" denotes the innermost object or array that
//     encloses it, and "this^N" the container N levels further out.
//
// # Scanning
//
// The Scanner type implements a lexical scanner.  Construct a scanner from an
// io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := rjson.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. A malformed
// token is reported as a *rjson.LexicalError; any other error is from the
// underlying reader.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser.  The parser works
// by calling methods on a Handler value to report the structure of the input.
// In case of a structural error, parsing is terminated and an error of
// concrete type *rjson.SyntaxError is returned.
//
//	s := rjson.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of values:
//
//	Type    | Methods                               | Description
//	------- | ------------------------------------- | --------------------------
//	object  | BeginObject, EndObject                | { ... }
//	array   | BeginArray, EndArray                  | [ ... ]
//	member  | BeginMember, MemberValue, EndMember   | key: value, key = value
//	value   | Value                                 | numbers, strings, constants, this
//	--      | EndOfInput                            | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call; the handler must copy any data it
// needs to retain beyond the lifetime of the call.
//
// The tree package builds values from a Stream, and formats them back to
// text.
package rjson
