package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: ascii/a, binary/b (default from the -o suffix, else ascii)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "roff").
		WithSynopsis("roff [opts] command [opts]").
		WithDescription("roff is a tool for inspecting and converting ROFF files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return roffMain(cfg, cc, args)
		}).
		WithSubs(
			CatCommand(cfg),
			TagsCommand(cfg),
			GetCommand(cfg),
			DumpCommand(cfg),
			DiffCommand(cfg))
}

func CatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CatConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Cat, "cat").
		WithAliases("c").
		WithSynopsis("cat [files]").
		WithDescription("copy documents to the output, converting to the -O format (default ascii)").
		WithRun(func(cc *cli.Context, args []string) error {
			return cat(cfg, cc, args)
		})
}

func TagsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TagsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tags, "tags").
		WithAliases("t", "ls").
		WithSynopsis("tags [-v] [files]").
		WithDescription("list the tags and keys of documents with their types and lengths").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tags(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get -e <expr> [files]").
		WithDescription(getDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

const getDescription = `get prints the keys for which an expression is true.

The expression is evaluated once per key with these variables:

  tag    the tag name
  key    the key name
  type   the type keyword: char, bool, byte, int, float or double
  array  whether the key is an array
  len    the number of elements, 1 for scalars
  value  the value, a list for arrays

For example

  roff get -e 'tag == "dimensions"' grid.roff
  roff get -e 'type == "float" && array && len > 1000' grid.roff`

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Dump, "dump").
		WithSynopsis("dump [files]").
		WithDescription("read documents fully and print them as yaml").
		WithRun(func(cc *cli.Context, args []string) error {
			return dump(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-q] a b").
		WithDescription("compare two documents key by key, regardless of encoding").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
