// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"

	"github.com/creachadair/rjson/tree"
	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	var nbad int
	for in, err := range inputs(cc, args) {
		if err != nil {
			return err
		}
		if _, err := tree.ParseAll(bytes.NewReader(in.Data), cfg.parseOpts()...); err != nil {
			fmt.Fprintln(cc.Out, errorLine(in.Name, err))
			nbad++
		}
	}
	if nbad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
