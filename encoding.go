// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package rjson

import (
	"bytes"
	"errors"

	"github.com/creachadair/rjson/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a string literal. The contents are escaped and double
// quotation marks are added. Invalid UTF-8 in src is replaced by U+FFFD.
func Quote(src string) string {
	buf := make([]byte, 0, len(src)+2)
	buf = append(buf, '"')
	buf = escape.Quote(buf, mem.S(src))
	return string(append(buf, '"'))
}

// Unquote decodes a string literal.  Double quotation marks are removed, and
// escape sequences are replaced with their unescaped equivalents. Unquote
// reports an error for a missing quotation mark or a malformed escape.
func Unquote(src []byte) ([]byte, error) {
	if len(src) < 2 || !bytes.HasPrefix(src, []byte(`"`)) || !bytes.HasSuffix(src, []byte(`"`)) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.B(src[1 : len(src)-1]))
}
