// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tree parses rjson text into values and formats values as text.
//
// # Parsing
//
// Parse reads a single value from an io.Reader:
//
//	v, err := tree.Parse(r)
//
// Objects and arrays may refer to themselves or an enclosing container with
// the self-reference token: "this" denotes the innermost container under
// construction, and "this^N" the container N levels further out. For example,
//
//	{"name": "loop", "next": this}
//
// is an object whose "next" member is the object itself.
//
// ParseInto merges the input into an existing object or array instead of
// allocating a new one. Members of the input replace members of the target
// with the same key, except that where both hold containers of the same kind
// the input is merged into the existing container, preserving its identity.
//
// # Formatting
//
// A Formatter writes values as text. Cycles are closed with self references,
// so formatted output parses back to a value of the same shape:
//
//	var f tree.Formatter
//	err := f.Format(os.Stdout, v)
//
// The zero Formatter indents with tabs. Set Compact to write a single line.
package tree
