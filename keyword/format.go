package keyword

import (
	"fmt"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// formatKeyword always annotates with the format name. It asserts when
// assert is set or the evaluation enables format assertion. Unknown
// formats never fail.
type formatKeyword struct {
	keyword
	assert bool
}

func (k formatKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.StringType {
		return nil, ctx.Errorf("must be a string, got %s", v.Type)
	}
	if !k.assert && !ctx.FormatAssertion() {
		return schema.Annotate(v), nil
	}
	f, ok := ctx.Formats().Lookup(v.String)
	if !ok {
		return schema.Annotate(v), nil
	}
	inst := ctx.Instance()
	if valid, msg := f.Validate(inst); !valid {
		if msg == "" {
			msg = "invalid"
		}
		return schema.Fail(fmt.Sprintf("%s is not a valid %s: %s", ir.MustJSON(inst), v.String, msg)), nil
	}
	return schema.Annotate(v), nil
}

var (
	formatKw          = &formatKeyword{keyword: keyword{name: "format"}}
	formatAssertionKw = &formatKeyword{keyword: keyword{name: "format"}, assert: true}
)

func Format() schema.Handler { return formatKw }

// FormatAssertion is format as the 2020-12 format-assertion vocabulary
// defines it.
func FormatAssertion() schema.Handler { return formatAssertionKw }
