package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/jsonschema/ir"
)

func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingInput
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	switch x := tok.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		n, err := ir.FromNumber(x.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return n, nil
	case json.Delim:
		switch x {
		case '[':
			var vs []*ir.Node
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				vs = append(vs, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return ir.FromSlice(vs), nil
		case '{':
			var kvs []ir.KeyVal
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("%w: %w", ErrParse, err)
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %v", ErrKeyType, kt)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", key, err)
				}
				kvs = append(kvs, ir.KeyVal{Key: key, Val: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			return ir.FromKeyVals(kvs), nil
		}
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
}
