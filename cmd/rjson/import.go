// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/creachadair/rjson/convert"
	"github.com/creachadair/rjson/tree"
	"github.com/creachadair/rjson/value"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/tailscale/hujson"
)

func importCmd(cfg *ImportConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Import.Parse(cc, args)
	if err != nil {
		return err
	}
	f := newFormatter(cc.Out, cfg.Compact, cfg.Color, cfg.Indent)
	for in, err := range inputs(cc, args) {
		if err != nil {
			return err
		}
		var v value.Value
		if cfg.YAML {
			v, err = fromYAML(in.Data)
		} else {
			v, err = fromJSON(in.Data)
		}
		if err != nil {
			return errors.New(errorLine(in.Name, err))
		}
		if err := f.Format(cc.Out, v); err != nil {
			return err
		}
		fmt.Fprintln(cc.Out)
	}
	return nil
}

// fromJSON reads a standard JSON or JWCC value. Comments and trailing commas
// are removed first, so the result does not depend on the relaxations of
// rjson.
func fromJSON(data []byte) (value.Value, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	return tree.Parse(bytes.NewReader(std))
}

// fromYAML reads a YAML document. Mappings keep their order, and an alias
// to a mapping or sequence shares the container made for its anchor when
// the decoder shares the underlying Go value.
func fromYAML(data []byte) (value.Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	c := convert.Default()
	convert.RegisterFromNested(c, func(ms yaml.MapSlice, from func(any) (value.Value, error)) (value.Value, error) {
		obj := value.NewObject()
		for _, item := range ms {
			k, err := from(item.Key)
			if err != nil {
				return nil, err
			}
			v, err := from(item.Value)
			if err != nil {
				return nil, err
			}
			obj.Set(k, v)
		}
		return obj, nil
	})
	return c.From(doc)
}
