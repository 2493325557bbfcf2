package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/roff-format/go-roff/ir"
	"github.com/signadot/roff-format/go-roff/parse"

	"github.com/scott-cotton/cli"
)

const maxValueWidth = 72

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tags.Parse(cc, args)
	if err != nil {
		return err
	}
	colors := cfg.colors(cc.Out)
	args = inputs(args)
	for _, arg := range args {
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "# %s\n", arg)
		}
		err := withParser(cfg.MainConfig, cc, arg, func(p *parse.Parser) error {
			for p.Next() {
				t := p.Tag()
				fmt.Fprintf(cc.Out, "tag %s\n", colors.Tag(t.Name()))
				for t.Next() {
					writeKey(cc.Out, colors, t.Key(), cfg.Values)
				}
				if err := t.Err(); err != nil {
					return err
				}
			}
			return p.Err()
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeKey(w io.Writer, colors *Colors, k ir.TagKey, values bool) {
	v := k.Value
	typ := v.WireType().Keyword()
	if v.IsArray() {
		typ = "array " + typ + " " + strconv.Itoa(v.Len())
	}
	if !values {
		fmt.Fprintf(w, "  %s %s\n", colors.Type(typ), colors.Key(k.Name))
		return
	}
	fmt.Fprintf(w, "  %s %s %s\n", colors.Type(typ), colors.Key(k.Name), colors.Value(preview(v)))
}

// preview renders the elements of v, cut to maxValueWidth.
func preview(v ir.Value) string {
	s := v.String()
	// drop the type prefix, writeKey prints it
	if v.IsArray() {
		s = s[len("array "+v.WireType().Keyword()+" "+strconv.Itoa(v.Len())+" "):]
	} else {
		s = s[len(v.WireType().Keyword()+" "):]
	}
	if len(s) > maxValueWidth {
		s = s[:maxValueWidth-3] + "..."
	}
	return s
}
