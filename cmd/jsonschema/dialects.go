package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jsonschema/formats"
	"github.com/signadot/jsonschema/vocab"
)

func dialects(cfg *DialectsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Dialects.Parse(cc, args); err != nil {
		return err
	}
	vocabs := vocab.NewRegistry()
	for _, spec := range vocabs.DialectSpecs() {
		var flags []string
		if spec.LegacyAnchors {
			flags = append(flags, "legacy-anchors")
		}
		if spec.RefOverridesSiblings {
			flags = append(flags, "ref-overrides-siblings")
		}
		fmt.Fprintln(cc.Out, spec.ID)
		if len(flags) != 0 {
			fmt.Fprintf(cc.Out, "  flags: %s\n", strings.Join(flags, ", "))
		}
		for _, id := range spec.Vocabularies {
			v, ok := vocabs.Vocabulary(id)
			if !ok {
				continue
			}
			fmt.Fprintf(cc.Out, "  %s (%d keywords)\n", id, len(v.Handlers))
		}
	}
	fmt.Fprintf(cc.Out, "formats: %s\n", strings.Join(formats.Names(), " "))
	return nil
}
