// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/creachadair/rjson/tree"
	"github.com/creachadair/rjson/value/cursor"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	path := cursor.ParsePath(args[0])
	f := newFormatter(cc.Out, cfg.Compact, cfg.Color, "")
	for in, err := range inputs(cc, args[1:]) {
		if err != nil {
			return err
		}
		vs, err := tree.ParseAll(bytes.NewReader(in.Data), cfg.parseOpts()...)
		if err != nil {
			return errors.New(errorLine(in.Name, err))
		}
		for _, v := range vs {
			c := cursor.New(v).Down(path...)
			if err := c.Err(); err != nil {
				return fmt.Errorf("%s: %s: %w", in.Name, args[0], err)
			}
			if err := f.Format(cc.Out, c.Value()); err != nil {
				return err
			}
			fmt.Fprintln(cc.Out)
		}
	}
	return nil
}
