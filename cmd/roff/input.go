package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/parse"

	"github.com/scott-cotton/cli"
)

// withParser runs fn over the document named by arg, "-" being stdin.
func withParser(cfg *MainConfig, cc *cli.Context, arg string, fn func(*parse.Parser) error) error {
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	p, err := parse.NewParser(bufio.NewReader(r), cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", arg, err)
	}
	defer p.Close()
	if err := fn(p); err != nil {
		return fmt.Errorf("error reading %s: %w", arg, err)
	}
	return nil
}

func readDocument(cfg *MainConfig, cc *cli.Context, arg string) (ir.Document, error) {
	var doc ir.Document
	err := withParser(cfg, cc, arg, func(p *parse.Parser) error {
		var err error
		doc, err = parse.Collect(p)
		return err
	})
	return doc, err
}

// inputs defaults an empty argument list to stdin.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
