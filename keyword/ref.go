package keyword

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

type refKeyword struct {
	keyword
	kind schema.RefKind
}

func (k refKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.StringType {
		return nil, ctx.Errorf("must be a string, got %s", v.Type)
	}
	res, err := ctx.EvaluateRef(k.kind, v.String)
	if err != nil {
		return nil, err
	}
	ev := &schema.KeywordEvaluation{Valid: res.Valid, Children: []*schema.Result{res}}
	if !res.Valid {
		ev.Error = "referenced schema " + res.SchemaLocation + " does not match"
	}
	return ev, nil
}

var (
	refKw          = &refKeyword{keyword: keyword{name: "$ref"}, kind: schema.RefStatic}
	dynamicRefKw   = &refKeyword{keyword: keyword{name: "$dynamicRef"}, kind: schema.RefDynamic}
	recursiveRefKw = &refKeyword{keyword: keyword{name: "$recursiveRef"}, kind: schema.RefRecursive}
)

func Ref() schema.Handler          { return refKw }
func DynamicRef() schema.Handler   { return dynamicRefKw }
func RecursiveRef() schema.Handler { return recursiveRefKw }
