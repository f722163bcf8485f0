// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/rjson"
)

// Decode converts the text of a literal token into a scalar value.
//
// An integer without a suffix is an Int32 if it fits in 32 bits, otherwise an
// Int64. The suffix L (or l) makes an Int64 and is only valid on integers.
// The suffix F (or f) makes a Float32, and D (or d) a Float64. A number with
// a fraction or exponent and no suffix is a Float64. Strings are unquoted.
//
// Decode reports a *LiteralError if the text is not a valid literal for tok.
func Decode(tok rjson.Token, text []byte) (Value, error) {
	switch tok {
	case rjson.Integer, rjson.Number:
		return decodeNumber(tok, string(text))
	case rjson.String:
		s, err := rjson.Unquote(text)
		if err != nil {
			return nil, &LiteralError{Text: string(text), Message: err.Error(), err: err}
		}
		return String(s), nil
	case rjson.True:
		return Bool(true), nil
	case rjson.False:
		return Bool(false), nil
	case rjson.Null:
		return Null{}, nil
	default:
		return nil, &LiteralError{Text: string(text), Message: fmt.Sprintf("%v is not a literal", tok)}
	}
}

func decodeNumber(tok rjson.Token, text string) (Value, error) {
	body, sfx := text, byte(0)
	if n := len(text); n > 0 && strings.IndexByte("LlFfDd", text[n-1]) >= 0 {
		body, sfx = text[:n-1], text[n-1]
	}
	fail := func(err error, msg string, args ...any) (Value, error) {
		if errors.Is(err, strconv.ErrSyntax) {
			msg, args = "malformed number", nil
		}
		return nil, &LiteralError{Text: text, Message: fmt.Sprintf(msg, args...), err: err}
	}

	switch sfx {
	case 'L', 'l':
		if tok != rjson.Integer {
			return fail(nil, "suffix %c requires an integer", sfx)
		}
		v, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return fail(err, "out of range for int64")
		}
		return Int64(v), nil

	case 'F', 'f':
		v, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return fail(err, "out of range for float32")
		}
		return Float32(v), nil

	case 'D', 'd':
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return fail(err, "out of range for float64")
		}
		return Float64(v), nil
	}

	if tok == rjson.Number {
		v, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return fail(err, "out of range for float64")
		}
		return Float64(v), nil
	}
	v, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return fail(err, "out of range for int64")
	} else if v >= math.MinInt32 && v <= math.MaxInt32 {
		return Int32(v), nil
	}
	return Int64(v), nil
}

// Encode renders a scalar value as literal text. It is the inverse of Decode:
// Int64 values carry an L suffix, Float32 values an F suffix, and Float64
// values always include a decimal point or exponent.
//
// Encode reports a *LiteralError for a NaN or infinite number or a string
// that is not valid UTF-8, which have no literal form, or for a value that is
// not a scalar.
func Encode(v Value) (string, error) {
	switch t := v.(type) {
	case nil, Null:
		return "null", nil
	case Bool:
		return strconv.FormatBool(bool(t)), nil
	case String:
		if !utf8.ValidString(string(t)) {
			return "", &LiteralError{Text: fmt.Sprintf("%+q", string(t)), Message: "string is not valid UTF-8"}
		}
		return rjson.Quote(string(t)), nil
	case Int32:
		return strconv.FormatInt(int64(t), 10), nil
	case Int64:
		return strconv.FormatInt(int64(t), 10) + "L", nil
	case Float32:
		if err := checkFinite(float64(t)); err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(t), 'g', -1, 32) + "F", nil
	case Float64:
		if err := checkFinite(float64(t)); err != nil {
			return "", err
		}
		s := strconv.FormatFloat(float64(t), 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s, nil
	default:
		return "", &LiteralError{Text: fmt.Sprint(v), Message: fmt.Sprintf("%v is not a scalar", KindOf(v))}
	}
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &LiteralError{Text: fmt.Sprint(f), Message: "number has no literal form"}
	}
	return nil
}

// LiteralError is the concrete type of errors reported for a literal that
// cannot be decoded or a value that cannot be encoded.
type LiteralError struct {
	Location rjson.LineCol // where the literal occurs, if known (Line > 0)
	Text     string        // the literal text
	Message  string

	err error
}

// Error satisfies the error interface.
func (e *LiteralError) Error() string {
	if e.Location.Line > 0 {
		return fmt.Sprintf("at %s: invalid literal %s: %s", e.Location, e.Text, e.Message)
	}
	return fmt.Sprintf("invalid literal %s: %s", e.Text, e.Message)
}

// Unwrap supports error wrapping.
func (e *LiteralError) Unwrap() error { return e.err }

// IsLiteralError reports whether err is or wraps a *LiteralError.
func IsLiteralError(err error) bool {
	var lerr *LiteralError
	return errors.As(err, &lerr)
}
