package main

import (
	"bufio"
	"io"

	"github.com/signadot/roff-format/go-roff/encode"
	"github.com/signadot/roff-format/go-roff/parse"

	"github.com/scott-cotton/cli"
)

func cat(cfg *CatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cat.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range inputs(args) {
		err := withParser(cfg.MainConfig, cc, arg, func(p *parse.Parser) error {
			return copyDocument(p, cc.Out, cfg.encOpts()...)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// copyDocument streams the tags of p into an encoder on w, one key at a
// time.
func copyDocument(p *parse.Parser, w io.Writer, opts ...encode.EncodeOption) error {
	bw := bufio.NewWriter(w)
	e, err := encode.NewEncoder(bw, opts...)
	if err != nil {
		return err
	}
	for p.Next() {
		t := p.Tag()
		if err := e.BeginTag(t.Name()); err != nil {
			return err
		}
		for t.Next() {
			k := t.Key()
			if err := e.WriteKey(k.Name, k.Value); err != nil {
				return err
			}
		}
		if err := t.Err(); err != nil {
			return err
		}
		if err := e.EndTag(); err != nil {
			return err
		}
	}
	if err := p.Err(); err != nil {
		bw.Flush()
		return err
	}
	if err := e.Close(); err != nil {
		return err
	}
	return bw.Flush()
}
