package main

import (
	"fmt"

	"github.com/signadot/roff-format/go-roff/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two documents", cli.ErrUsage)
	}
	from, err := readDocument(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	to, err := readDocument(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	changes := libdiff.Diff(from, to)
	if !libdiff.Changed(changes) {
		return nil
	}
	if !cfg.Quiet {
		colors := cfg.colors(cc.Out)
		fmt.Fprintf(cc.Out, "--- %s\n+++ %s\n", args[0], args[1])
		for _, c := range changes {
			fmt.Fprintln(cc.Out, colors.Diff[c.Op](c.String()))
		}
	}
	return cli.ExitCodeErr(1)
}
