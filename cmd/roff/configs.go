package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/roff-format/go-roff/codec"
	"github.com/signadot/roff-format/go-roff/encode"
	"github.com/signadot/roff-format/go-roff/format"
	"github.com/signadot/roff-format/go-roff/parse"

	"github.com/scott-cotton/cli"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color      bool   `cli:"name=color desc='color output'"`
	BigEndian  bool   `cli:"name=be desc='read binary input as big endian until a byteswaptest says otherwise'"`
	NoComments bool   `cli:"name=nc desc='omit header comments when writing'"`
	Creator    string `cli:"name=creator desc='creator named in header comments'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{
		parse.OnWarning(func(msg string) {
			fmt.Fprintln(os.Stderr, color.YellowString("warning: %s", msg))
		}),
	}
	if cfg.BigEndian {
		res = append(res, parse.ParseByteOrder(codec.Swapped(codec.Native)))
	}
	return res
}

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	f := format.ASCIIFormat
	switch {
	case cfg.OutFormat != nil:
		f = *cfg.OutFormat
	case strings.HasSuffix(cfg.Out, encode.FormatSuffix(format.BinaryFormat)):
		f = format.BinaryFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(f),
		encode.EncodeComments(!cfg.NoComments),
	}
	if cfg.Creator != "" {
		res = append(res, encode.EncodeCreator(cfg.Creator))
	}
	return res
}

// colors returns the palette for w: colored if -color was given or w is a
// terminal.
func (cfg *MainConfig) colors(w io.Writer) *Colors {
	if cfg.Color {
		return NewColors()
	}
	f, ok := w.(*os.File)
	if ok && isatty.IsTerminal(f.Fd()) {
		return NewColors()
	}
	return NoColors()
}

type CatConfig struct {
	*MainConfig

	Cat *cli.Command
}

type TagsConfig struct {
	*MainConfig
	Values bool `cli:"name=v desc='show values'"`

	Tags *cli.Command
}

type GetConfig struct {
	*MainConfig
	Expr string `cli:"name=e desc='expression selecting keys'"`

	Get *cli.Command
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report whether the documents differ'"`

	Diff *cli.Command
}
