// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"os"

	"github.com/creachadair/rjson/tree"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Strict bool `cli:"name=strict desc='reject trailing commas'"`

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []tree.ParseOption {
	if cfg.Strict {
		return []tree.ParseOption{tree.Strict()}
	}
	return nil
}

// newFormatter returns a Formatter for writing to w. Output is colored if
// useColor is set, or if w is a terminal.
func newFormatter(w io.Writer, compact, useColor bool, indent string) tree.Formatter {
	f := tree.Formatter{Indent: indent, Compact: compact}
	if useColor {
		color.NoColor = false
		f.Colors = tree.NewColors()
	} else if fd, ok := w.(*os.File); ok && isatty.IsTerminal(fd.Fd()) {
		f.Colors = tree.NewColors()
	}
	return f
}

type FmtConfig struct {
	*MainConfig

	Write   bool   `cli:"name=w desc='rewrite files in place'"`
	Diff    bool   `cli:"name=d desc='print a diff of the changes instead of the output'"`
	Compact bool   `cli:"name=compact desc='write each value on a single line'"`
	Indent  string `cli:"name=indent desc='indentation for each level (default tab)'"`
	Color   bool   `cli:"name=color desc='color the output'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type ImportConfig struct {
	*MainConfig

	YAML    bool   `cli:"name=yaml aliases=y desc='read YAML instead of JSON'"`
	Compact bool   `cli:"name=compact desc='write each value on a single line'"`
	Indent  string `cli:"name=indent desc='indentation for each level (default tab)'"`
	Color   bool   `cli:"name=color desc='color the output'"`

	Import *cli.Command
}

type ExportConfig struct {
	*MainConfig

	Indent string `cli:"name=indent desc='indentation for each level of JSON output'"`

	Export *cli.Command
}

type GetConfig struct {
	*MainConfig

	Compact bool `cli:"name=compact desc='write each value on a single line'"`
	Color   bool `cli:"name=color desc='color the output'"`

	Get *cli.Command
}
