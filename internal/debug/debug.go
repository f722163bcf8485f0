// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package debug provides environment-controlled tracing for the rjson
// packages. Tracing is enabled per subsystem by setting the corresponding
// environment variable to a true value (see strconv.ParseBool):
//
//	RJSON_DEBUG_PARSE    parser merges and self references
//	RJSON_DEBUG_FORMAT   formatter cycle handling
//	RJSON_DEBUG_CONVERT  converter identity reuse
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Format  bool
	Convert bool
}

var d *debug

func init() {
	d = &debug{
		Parse:   boolEnv("RJSON_DEBUG_PARSE"),
		Format:  boolEnv("RJSON_DEBUG_FORMAT"),
		Convert: boolEnv("RJSON_DEBUG_CONVERT"),
	}
}

func boolEnv(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring %s=%q: %v\n", name, v, err)
		return false
	}
	return b
}

func Parse() bool   { return d.Parse }
func Format() bool  { return d.Format }
func Convert() bool { return d.Convert }

// Logf writes a trace line to stderr. A newline is added if msg lacks one.
func Logf(msg string, args ...any) {
	if n := len(msg); n == 0 || msg[n-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
