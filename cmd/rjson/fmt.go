// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/rjson/tree"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func rjsonFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: at most one of -w and -d may be set", cli.ErrUsage)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires file arguments", cli.ErrUsage)
	}

	// Colors are only used for output going straight to the user.
	var tty io.Writer = cc.Out
	if cfg.Write || cfg.Diff {
		tty = nil
	}
	f := newFormatter(tty, cfg.Compact, cfg.Color && tty != nil, cfg.Indent)

	for in, err := range inputs(cc, args) {
		if err != nil {
			return err
		}
		text, err := formatAll(f, in.Data, cfg.parseOpts())
		if err != nil {
			return errors.New(errorLine(in.Name, err))
		}

		switch {
		case cfg.Write:
			if bytes.Equal(in.Data, []byte(text)) {
				continue
			}
			if err := os.WriteFile(in.Name, []byte(text), 0644); err != nil {
				return err
			}
		case cfg.Diff:
			if d := lineDiff(string(in.Data), text); d != "" {
				fmt.Fprintf(cc.Out, "--- %s\n+++ %s (formatted)\n%s", in.Name, in.Name, d)
			}
		default:
			if _, err := io.WriteString(cc.Out, text); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatAll parses all the values in data and formats them with f, each
// followed by a newline.
func formatAll(f tree.Formatter, data []byte, opts []tree.ParseOption) (string, error) {
	vs, err := tree.ParseAll(bytes.NewReader(data), opts...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, v := range vs {
		if err := f.Format(&sb, v); err != nil {
			return "", err
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// lineDiff returns a line-oriented diff from a to b, or "" if they are equal.
// Each line is prefixed by "-" if it is only in a, "+" if it is only in b,
// and " " if it is in both.
func lineDiff(a, b string) string {
	if a == b {
		return ""
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var tag string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			tag = "-"
		case diffmatchpatch.DiffInsert:
			tag = "+"
		default:
			tag = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(tag)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}
