// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/creachadair/rjson"
	"github.com/creachadair/rjson/value"
	"github.com/scott-cotton/cli"
)

// An input is the complete contents of a named input.
type input struct {
	Name string
	Data []byte
}

// inputs returns a sequence of the named files, or of stdin if there are
// none. The file name "-" also denotes stdin.
func inputs(cc *cli.Context, files []string) iter.Seq2[input, error] {
	return func(yield func(input, error) bool) {
		if len(files) == 0 {
			files = []string{"-"}
		}
		for _, name := range files {
			var data []byte
			var err error
			if name == "-" {
				data, err = io.ReadAll(cc.In)
			} else {
				data, err = os.ReadFile(name)
			}
			if err != nil {
				err = fmt.Errorf("could not read %q: %w", name, err)
			}
			if !yield(input{Name: name, Data: data}, err) {
				return
			}
		}
	}
}

// errorLine renders err in the conventional file:line:col: message format
// when err carries a source location.
func errorLine(name string, err error) string {
	var serr *rjson.SyntaxError
	var lerr *rjson.LexicalError
	var verr *value.LiteralError
	switch {
	case errors.As(err, &serr):
		return fmt.Sprintf("%s:%d:%d: %s", name, serr.Location.Line, serr.Location.Column, serr.Message)
	case errors.As(err, &lerr):
		return fmt.Sprintf("%s:%d:%d: %s", name, lerr.Location.Line, lerr.Location.Column, lerr.Message)
	case errors.As(err, &verr) && verr.Location.Line > 0:
		return fmt.Sprintf("%s:%d:%d: invalid literal %s: %s", name, verr.Location.Line, verr.Location.Column, verr.Text, verr.Message)
	}
	return fmt.Sprintf("%s: %v", name, err)
}
