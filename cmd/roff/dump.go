package main

import (
	"fmt"

	"github.com/signadot/roff-format/go-roff"
	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/parse"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, arg := range inputs(args) {
		var data roff.Data
		err := withParser(cfg.MainConfig, cc, arg, func(p *parse.Parser) error {
			var err error
			data, err = roff.Collect(p)
			return err
		})
		if err != nil {
			return err
		}
		d, err := yaml.Marshal(plainData(data))
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		if i > 0 {
			fmt.Fprintln(cc.Out, "---")
		}
		if _, err := cc.Out.Write(d); err != nil {
			return err
		}
	}
	return nil
}

// plainData converts d to plain maps, slices and scalars.
func plainData(d roff.Data) map[string]any {
	res := make(map[string]any, len(d))
	for name, x := range d {
		switch x := x.(type) {
		case roff.Keys:
			res[name] = plainKeys(x)
		case []roff.Keys:
			tags := make([]any, len(x))
			for i, ks := range x {
				tags[i] = plainKeys(ks)
			}
			res[name] = tags
		}
	}
	return res
}

func plainKeys(ks roff.Keys) map[string]any {
	res := make(map[string]any, len(ks))
	for name, x := range ks {
		switch x := x.(type) {
		case ir.Value:
			res[name] = plainValue(x)
		case []ir.Value:
			vs := make([]any, len(x))
			for i, v := range x {
				vs[i] = plainValue(v)
			}
			res[name] = vs
		}
	}
	return res
}

func plainValue(v ir.Value) any {
	if v.IsArray() && v.WireType() == ir.ByteType {
		// keep bytes numeric instead of base64
		bs := v.Bytes()
		res := make([]int, len(bs))
		for i, b := range bs {
			res[i] = int(b)
		}
		return res
	}
	return v.Any()
}
