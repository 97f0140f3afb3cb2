package keyword

import (
	"fmt"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// evalEach evaluates every schema of the array v at the current instance.
func evalEach(v *ir.Node, ctx schema.Context) ([]*schema.Result, []int, error) {
	if err := checkSchemaArray(ctx, v); err != nil {
		return nil, nil, err
	}
	res := make([]*schema.Result, len(v.Values))
	var passed []int
	for i, sub := range v.Values {
		r, err := ctx.Descend(strIndex(i)).Evaluate(sub)
		if err != nil {
			return nil, nil, err
		}
		res[i] = r
		if r.Valid {
			passed = append(passed, i)
		}
	}
	return res, passed, nil
}

type allOfKeyword struct{ keyword }

func (allOfKeyword) Subschemas(v *ir.Node) []*ir.Node { return each(v) }

func (allOfKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	res, passed, err := evalEach(v, ctx)
	if err != nil {
		return nil, err
	}
	ev := &schema.KeywordEvaluation{Valid: len(passed) == len(res), Children: res}
	if !ev.Valid {
		ev.Error = fmt.Sprintf("%d of %d subschemas do not match", len(res)-len(passed), len(res))
	}
	return ev, nil
}

type anyOfKeyword struct{ keyword }

func (anyOfKeyword) Subschemas(v *ir.Node) []*ir.Node { return each(v) }

func (anyOfKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	res, passed, err := evalEach(v, ctx)
	if err != nil {
		return nil, err
	}
	ev := &schema.KeywordEvaluation{Valid: len(passed) > 0, Children: res}
	if !ev.Valid {
		ev.Error = "no subschema matches"
	}
	return ev, nil
}

type oneOfKeyword struct{ keyword }

func (oneOfKeyword) Subschemas(v *ir.Node) []*ir.Node { return each(v) }

func (oneOfKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	res, passed, err := evalEach(v, ctx)
	if err != nil {
		return nil, err
	}
	ev := &schema.KeywordEvaluation{Valid: len(passed) == 1, Children: res}
	switch {
	case len(passed) == 0:
		ev.Error = "no subschema matches"
	case len(passed) > 1:
		ev.Error = fmt.Sprintf("subschemas %v all match, expected exactly one", passed)
	}
	return ev, nil
}

type notKeyword struct{ keyword }

func (notKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (notKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	r, err := ctx.Evaluate(v)
	if err != nil {
		return nil, err
	}
	ev := &schema.KeywordEvaluation{Valid: !r.Valid, Children: []*schema.Result{r}}
	if !ev.Valid {
		ev.Error = "instance matches the negated schema"
	}
	return ev, nil
}

var (
	allOfKw = &allOfKeyword{keyword{name: "allOf"}}
	anyOfKw = &anyOfKeyword{keyword{name: "anyOf"}}
	oneOfKw = &oneOfKeyword{keyword{name: "oneOf"}}
	notKw   = &notKeyword{keyword{name: "not"}}
)

func AllOf() schema.Handler { return allOfKw }
func AnyOf() schema.Handler { return anyOfKw }
func OneOf() schema.Handler { return oneOfKw }
func Not() schema.Handler   { return notKw }
