package main

import (
	"fmt"

	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/parse"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: get requires an expression, -e", cli.ErrUsage)
	}
	prg, err := expr.Compile(cfg.Expr, expr.Env(envTypes), expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	colors := cfg.colors(cc.Out)
	for _, arg := range inputs(args) {
		err := withParser(cfg.MainConfig, cc, arg, func(p *parse.Parser) error {
			return selectKeys(p, prg, func(tag string, k ir.TagKey) {
				fmt.Fprintf(cc.Out, "%s ", colors.Tag(tag))
				writeKey(cc.Out, colors, k, true)
			})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// selectKeys calls fn on every key of p for which prg is true.
func selectKeys(p *parse.Parser, prg *vm.Program, fn func(string, ir.TagKey)) error {
	for p.Next() {
		t := p.Tag()
		for t.Next() {
			k := t.Key()
			res, err := expr.Run(prg, keyEnv(t.Name(), k))
			if err != nil {
				return fmt.Errorf("tag %q key %q: %w", t.Name(), k.Name, err)
			}
			if ok, _ := res.(bool); ok {
				fn(t.Name(), k)
			}
		}
		if err := t.Err(); err != nil {
			return err
		}
	}
	return p.Err()
}

// envTypes declares the variables of a get expression. value is left untyped
// since it is a scalar or a slice depending on the key.
var envTypes = map[string]any{
	"tag":   "",
	"key":   "",
	"type":  "",
	"array": false,
	"len":   0,
	"value": nil,
}

func keyEnv(tag string, k ir.TagKey) map[string]any {
	return map[string]any{
		"tag":   tag,
		"key":   k.Name,
		"type":  k.Value.WireType().Keyword(),
		"array": k.Value.IsArray(),
		"len":   k.Value.Len(),
		"value": k.Value.Any(),
	}
}
