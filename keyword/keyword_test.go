package keyword_test

import (
	"errors"
	"testing"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
	"github.com/signadot/jsonschema/vocab"
)

var vocabs = vocab.NewRegistry()

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return n
}

func evaluate(t *testing.T, sch, inst string, opts ...schema.EvalOption) *schema.Result {
	t.Helper()
	reg := schema.NewRegistry(vocabs)
	res, err := reg.EvaluateSchema(mustParse(t, sch), mustParse(t, inst), opts...)
	if err != nil {
		t.Fatalf("evaluate %s against %s: %v", inst, sch, err)
	}
	return res
}

type validityCase struct {
	name   string
	schema string
	inst   string
	valid  bool
}

func runValidity(t *testing.T, tests []validityCase, opts ...schema.EvalOption) {
	t.Helper()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := evaluate(t, tc.schema, tc.inst, opts...)
			if res.Valid != tc.valid {
				t.Errorf("valid %v, want %v\n%s", res.Valid, tc.valid, ir.MustJSON(res.ToIR()))
			}
		})
	}
}

func expectSchemaError(t *testing.T, sch, inst string) {
	t.Helper()
	reg := schema.NewRegistry(vocabs)
	_, err := reg.EvaluateSchema(mustParse(t, sch), mustParse(t, inst))
	if !errors.Is(err, schema.ErrInvalidSchema) {
		t.Errorf("got %v, want ErrInvalidSchema", err)
	}
	var se *schema.SchemaError
	if err != nil && !errors.As(err, &se) {
		t.Errorf("%v is not a *SchemaError", err)
	}
}
