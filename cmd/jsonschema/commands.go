package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsonschema").
		WithSynopsis("jsonschema [opts] command [opts]").
		WithDescription("jsonschema validates json and yaml documents against json schemas.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsMain(cfg, cc, args)
		}).
		WithSubs(
			ValidateCommand(cfg),
			WatchCommand(cfg),
			MetaSchemaCommand(cfg),
			DialectsCommand(cfg))
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate [-r file]... [-o output] [-assert-format] [-dialect uri] schema [inputs...]").
		WithDescription("validate inputs against a schema. inputs may be globs, - or none reads stdin.").
		WithOpts(cfg.Check.opts()...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch [validate opts] [-gops] schema inputs...").
		WithDescription("validate inputs and validate again whenever the schema, a referenced schema or an input changes.").
		WithOpts(append(opts, cfg.Check.opts()...)...).
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}

func MetaSchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MetaSchemaConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.MetaSchema, "metaschema").
		WithAliases("m", "meta").
		WithSynopsis("metaschema [-r file]... [-o output] schemas...").
		WithDescription("validate schemas against the meta-schema they declare.").
		WithOpts(cfg.Check.opts()...).
		WithRun(func(cc *cli.Context, args []string) error {
			return metaSchema(cfg, cc, args)
		})
}

func DialectsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DialectsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Dialects, "dialects").
		WithAliases("d").
		WithSynopsis("dialects").
		WithDescription("list the known dialects, their vocabularies and the built in formats.").
		WithRun(func(cc *cli.Context, args []string) error {
			return dialects(cfg, cc, args)
		})
}
