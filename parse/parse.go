package parse

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsonschema/format"
	"github.com/signadot/jsonschema/ir"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{}
	for _, opt := range opts {
		opt(pOpts)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		if pOpts.allowEmpty {
			return ir.Null(), nil
		}
		return nil, pOpts.wrap(fmt.Errorf("%w: empty document", ErrParse))
	}
	var (
		node *ir.Node
		err  error
	)
	switch pOpts.format {
	case format.YAMLFormat:
		node, err = parseYAML(d)
	default:
		node, err = parseJSON(d)
	}
	if err != nil {
		return nil, pOpts.wrap(err)
	}
	return node, nil
}

func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

// ParseFile reads and parses a file, choosing the format from its extension
// unless an option overrides it.
func ParseFile(path string, opts ...ParseOption) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	all := append([]ParseOption{ParseFormat(format.FromFilename(path)), ParseFilename(path)}, opts...)
	return Parse(d, all...)
}

func (o *parseOpts) wrap(err error) error {
	if o.filename == "" {
		return err
	}
	return fmt.Errorf("%s: %w", o.filename, err)
}
