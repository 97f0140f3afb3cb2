package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func metaSchema(cfg *MetaSchemaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.MetaSchema.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: metaschema requires at least one schema", cli.ErrUsage)
	}
	p, err := newPrinter(cfg.MainConfig, &cfg.Check, cc.Out)
	if err != nil {
		return err
	}
	popts := cfg.parseOpts()
	v, err := cfg.Check.validator(popts)
	if err != nil {
		return err
	}
	inputs, err := expandInputs(args)
	if err != nil {
		return err
	}
	c, err := newInputChecker(v, &cfg.Check, popts, "")
	if err != nil {
		return err
	}
	reps, err := c.checkAll(inputs, cc.In)
	if err != nil {
		return err
	}
	valid, err := p.write(cc.Out, reps)
	if err != nil {
		return err
	}
	return exitErr(valid)
}
