// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of string literals.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the encoding of a string literal.
// The input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A UTF-16
// surrogate pair written as two \u escapes decodes to a single rune. Unquote
// reports an error for an incomplete or unknown escape sequence, and for a
// surrogate escape that is not part of a pair.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := parseHex4(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if utf16.IsSurrogate(v) {
				d, rest, ok := lowSurrogate(v, src)
				if !ok {
					return nil, fmt.Errorf("unpaired surrogate %U", v)
				}
				v, src = d, rest
			}
			dec = utf8.AppendRune(dec, v)
		default:
			return nil, fmt.Errorf("invalid escape %q", "\\"+string(r))
		}

		// Look for the next escape sequence, and if one is not found we can blit
		// the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
	}
}

// lowSurrogate decodes the second half of a surrogate pair whose first half is
// hi from the front of data, and returns the remainder of the input.
func lowSurrogate(hi rune, data mem.RO) (rune, mem.RO, bool) {
	if data.Len() < 6 || data.At(0) != '\\' || data.At(1) != 'u' {
		return 0, data, false
	}
	lo, rest, err := parseHex4(data.SliceFrom(2))
	if err != nil {
		return 0, data, false
	}
	d := utf16.DecodeRune(hi, lo)
	return d, rest, d != utf8.RuneError
}

// parseHex4 decodes four hexadecimal digits from the front of data, and
// returns the remainder of the input.
func parseHex4(data mem.RO) (rune, mem.RO, error) {
	if data.Len() < 4 {
		return 0, data, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := range 4 {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += rune(b - 'A' + 10)
		} else {
			return 0, data, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, data.SliceFrom(4), nil
}
