package keyword

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// ifKeyword evaluates the condition. It is always valid itself; then and
// else read its outcome.
type ifKeyword struct{ keyword }

func (ifKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (ifKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	r, err := ctx.Evaluate(v)
	if err != nil {
		return nil, err
	}
	return &schema.KeywordEvaluation{Valid: true, Children: []*schema.Result{r}}, nil
}

type branchKeyword struct {
	keyword
	when bool
}

func (branchKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (k branchKeyword) Handle(v *ir.Node, ctx schema.Context, siblings schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	cond := siblings["if"]
	if cond == nil || len(cond.Children) == 0 || cond.Children[0].Valid != k.when {
		return schema.Pass(), nil
	}
	r, err := ctx.Evaluate(v)
	if err != nil {
		return nil, err
	}
	ev := &schema.KeywordEvaluation{Valid: r.Valid, Children: []*schema.Result{r}}
	if !r.Valid {
		ev.Error = "instance does not match the " + k.name + " schema"
	}
	return ev, nil
}

var (
	ifKw   = &ifKeyword{keyword{name: "if"}}
	thenKw = &branchKeyword{keyword: keyword{name: "then", deps: []string{"if"}}, when: true}
	elseKw = &branchKeyword{keyword: keyword{name: "else", deps: []string{"if"}}, when: false}
)

func If() schema.Handler   { return ifKw }
func Then() schema.Handler { return thenKw }
func Else() schema.Handler { return elseKw }
