package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonschema"
	"github.com/signadot/jsonschema/encode"
	"github.com/signadot/jsonschema/format"
	"github.com/signadot/jsonschema/formats"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
)

type MainConfig struct {
	Y     bool `cli:"name=y aliases=yaml desc='read inputs and write output as yaml'"`
	Color bool `cli:"name=color desc='color output'"`

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	if cfg.Y {
		return []parse.ParseOption{parse.ParseYAML()}
	}
	return nil
}

// colored reports whether output to w is colored: either -color was given
// or w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodeFormat(format.JSONFormat)}
	if cfg.Y {
		res[0] = encode.EncodeFormat(format.YAMLFormat)
	}
	if cfg.colored(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// CheckFlags are the options shared by the commands that validate.
type CheckFlags struct {
	Output       string `cli:"name=o aliases=output desc='output: flag, basic or hierarchical'"`
	AssertFormat bool   `cli:"name=assert-format desc='treat format as an assertion'"`
	Dialect      string `cli:"name=dialect desc='dialect of schemas without $schema'"`
	Jobs         int    `cli:"name=j aliases=jobs desc='number of inputs validated concurrently'"`
	Patch        string `cli:"name=patch desc='json patch file applied to each input before validating'"`

	Refs    []string
	Formats map[string]schema.Format
}

func (c *CheckFlags) opts() []*cli.Opt {
	opts, err := cli.StructOpts(c)
	if err != nil {
		panic(err)
	}
	return append(opts,
		&cli.Opt{
			Name:        "r",
			Aliases:     []string{"ref"},
			Description: "register a schema (or glob of schemas) for references",
			Type: cli.NamedFuncOpt(cli.FuncOpt(func(_ *cli.Context, a string) (any, error) {
				c.Refs = append(c.Refs, a)
				return a, nil
			}), "(file)"),
		},
		&cli.Opt{
			Name:        "format",
			Description: "define a format by an expression over value and type",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(c.formatOpt), "(name=expr)"),
		})
}

func (c *CheckFlags) formatOpt(_ *cli.Context, a string) (any, error) {
	name, src, ok := strings.Cut(a, "=")
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: -format wants name=expr, got %q", cli.ErrUsage, a)
	}
	f, err := formats.Expr(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if c.Formats == nil {
		c.Formats = map[string]schema.Format{}
	}
	c.Formats[name] = f
	return f, nil
}

func (c *CheckFlags) output() (string, error) {
	switch c.Output {
	case "", "flag":
		return "flag", nil
	case "basic", "hierarchical":
		return c.Output, nil
	default:
		return "", fmt.Errorf("%w: unknown output %q", cli.ErrUsage, c.Output)
	}
}

// validator builds a validator configured by c with the -r schemas
// registered.
func (c *CheckFlags) validator(popts []parse.ParseOption) (*jsonschema.Validator, error) {
	opts := []jsonschema.Option{jsonschema.WithFormatAssertion(c.AssertFormat)}
	if c.Dialect != "" {
		opts = append(opts, jsonschema.WithDefaultDialect(c.Dialect))
	}
	for name, f := range c.Formats {
		opts = append(opts, jsonschema.WithFormat(name, f))
	}
	v, err := jsonschema.New(opts...)
	if err != nil {
		return nil, err
	}
	refs, err := expandInputs(c.Refs)
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		doc, err := parse.ParseFile(ref, popts...)
		if err != nil {
			return nil, err
		}
		if _, err := v.AddSchema(doc); err != nil {
			return nil, fmt.Errorf("%s: %w", ref, err)
		}
	}
	return v, nil
}

type ValidateConfig struct {
	*MainConfig
	Check CheckFlags

	Validate *cli.Command
}

type WatchConfig struct {
	*MainConfig
	Check CheckFlags
	Gops  bool `cli:"name=gops desc='start a gops agent'"`

	Watch *cli.Command
}

type MetaSchemaConfig struct {
	*MainConfig
	Check CheckFlags

	MetaSchema *cli.Command
}

type DialectsConfig struct {
	*MainConfig

	Dialects *cli.Command
}
