package keyword

import (
	"fmt"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

var inPlaceApplicators = []string{
	"allOf", "anyOf", "oneOf", "not",
	"if", "then", "else",
	"dependentSchemas", "dependencies",
	"$ref", "$dynamicRef", "$recursiveRef",
}

func withApplicators(kws ...string) []string {
	return append(kws, inPlaceApplicators...)
}

type unevaluatedPropertiesKeyword struct{ keyword }

func (unevaluatedPropertiesKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (unevaluatedPropertiesKeyword) Handle(v *ir.Node, ctx schema.Context, siblings schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ObjectType {
		return schema.Pass(), nil
	}
	seen := collectEvaluated(ctx, siblings, false)
	ev := &schema.KeywordEvaluation{Valid: true}
	var names, failed []string
	for i, f := range inst.Fields {
		if seen.props[f.String] {
			continue
		}
		r, err := ctx.WithInstance(inst.Values[i], f.String).Evaluate(v)
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		names = append(names, f.String)
		if !r.Valid {
			failed = append(failed, f.String)
		}
	}
	ev.Annotation = namesNode(names)
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = fmt.Sprintf("unevaluated properties %q do not match", failed)
	}
	return ev, nil
}

// unevaluatedItemsKeyword counts items matched by contains as evaluated
// only in 2020-12.
type unevaluatedItemsKeyword struct {
	keyword
	withContains bool
}

func (unevaluatedItemsKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (k unevaluatedItemsKeyword) Handle(v *ir.Node, ctx schema.Context, siblings schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	seen := collectEvaluated(ctx, siblings, k.withContains)
	ev := &schema.KeywordEvaluation{Valid: true}
	var failed []int
	for i, item := range inst.Values {
		if seen.item(i) {
			continue
		}
		r, err := ctx.WithInstance(item, strIndex(i)).Evaluate(v)
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		if !r.Valid {
			failed = append(failed, i)
		}
	}
	if len(ev.Children) != 0 {
		ev.Annotation = ir.FromBool(true)
	}
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = fmt.Sprintf("unevaluated items %v do not match", failed)
	}
	return ev, nil
}

var (
	unevaluatedPropertiesKw = &unevaluatedPropertiesKeyword{keyword{
		name: "unevaluatedProperties",
		deps: withApplicators("properties", "patternProperties", "additionalProperties"),
	}}
	unevaluatedItemsKw = &unevaluatedItemsKeyword{
		keyword: keyword{
			name: "unevaluatedItems",
			deps: withApplicators("prefixItems", "items", "additionalItems", "contains"),
		},
		withContains: true,
	}
	legacyUnevaluatedItemsKw = &unevaluatedItemsKeyword{
		keyword: keyword{
			name: "unevaluatedItems",
			deps: withApplicators("items", "additionalItems"),
		},
	}
)

func UnevaluatedProperties() schema.Handler  { return unevaluatedPropertiesKw }
func UnevaluatedItems() schema.Handler       { return unevaluatedItemsKw }
func LegacyUnevaluatedItems() schema.Handler { return legacyUnevaluatedItemsKw }
