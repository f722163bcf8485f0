// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/creachadair/rjson/convert"
	"github.com/creachadair/rjson/tree"
	"github.com/scott-cotton/cli"
)

func export(cfg *ExportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Export.Parse(cc, args)
	if err != nil {
		return err
	}
	indent := cfg.Indent
	if indent == "" {
		indent = "  "
	}
	c := convert.Default()
	for in, err := range inputs(cc, args) {
		if err != nil {
			return err
		}
		vs, err := tree.ParseAll(bytes.NewReader(in.Data), cfg.parseOpts()...)
		if err != nil {
			return errors.New(errorLine(in.Name, err))
		}
		for i, v := range vs {
			var nat any
			if err := c.To(v, &nat); err != nil {
				return fmt.Errorf("%s: value %d: %w", in.Name, i+1, err)
			}
			out, err := json.MarshalIndent(nat, "", indent)
			if err != nil {
				return fmt.Errorf("%s: value %d: %w", in.Name, i+1, err)
			}
			fmt.Fprintf(cc.Out, "%s\n", out)
		}
	}
	return nil
}
