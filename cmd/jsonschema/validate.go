package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonschema/parse"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires a schema", cli.ErrUsage)
	}
	p, err := newPrinter(cfg.MainConfig, &cfg.Check, cc.Out)
	if err != nil {
		return err
	}
	c, err := newChecker(cfg.MainConfig, &cfg.Check, args[0])
	if err != nil {
		return err
	}
	inputs, err := expandInputs(stdinOr(args[1:]))
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

// newChecker registers the -r schemas and then schemaPath.
func newChecker(cfg *MainConfig, check *CheckFlags, schemaPath string) (*checker, error) {
	popts := cfg.parseOpts()
	v, err := check.validator(popts)
	if err != nil {
		return nil, err
	}
	doc, err := parse.ParseFile(schemaPath, popts...)
	if err != nil {
		return nil, err
	}
	uri, err := v.AddSchema(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schemaPath, err)
	}
	return newInputChecker(v, check, popts, uri)
}
