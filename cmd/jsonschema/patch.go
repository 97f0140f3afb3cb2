package main

import (
	"fmt"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// loadPatch reads an RFC 6902 patch, written in json or yaml.
func loadPatch(path string, popts []parse.ParseOption) (jsonpatch.Patch, error) {
	doc, err := parse.ParseFile(path, popts...)
	if err != nil {
		return nil, err
	}
	d, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func applyPatch(p jsonpatch.Patch, doc *ir.Node, name string) (*ir.Node, error) {
	if debug.Eval() {
		debug.Logf("applying %d patch operations to %s\n", len(p), name)
	}
	d, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	return parse.Parse(out, parse.ParseJSON())
}
