package keyword

import (
	"fmt"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// evalItems evaluates sub against the items of inst from index start on.
func evalItems(ctx schema.Context, sub *ir.Node, inst *ir.Node, start int, toks ...string) ([]*schema.Result, []int, error) {
	var (
		res    []*schema.Result
		failed []int
	)
	for i := start; i < len(inst.Values); i++ {
		r, err := ctx.Descend(toks...).WithInstance(inst.Values[i], strIndex(i)).Evaluate(sub)
		if err != nil {
			return nil, nil, err
		}
		res = append(res, r)
		if !r.Valid {
			failed = append(failed, i)
		}
	}
	return res, failed, nil
}

// evalTuple evaluates the schemas of the array v positionally against the
// items of the instance.
func evalTuple(ctx schema.Context, v *ir.Node) (*schema.KeywordEvaluation, error) {
	inst := ctx.Instance()
	if inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	ev := &schema.KeywordEvaluation{Valid: true}
	n := min(len(v.Values), len(inst.Values))
	var failed []int
	for i := range n {
		r, err := ctx.Descend(strIndex(i)).WithInstance(inst.Values[i], strIndex(i)).Evaluate(v.Values[i])
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		if !r.Valid {
			failed = append(failed, i)
		}
	}
	switch {
	case n == len(inst.Values):
		ev.Annotation = ir.FromBool(true)
	case n > 0:
		ev.Annotation = ir.FromInt(int64(n - 1))
	}
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = fmt.Sprintf("items %v do not match", failed)
	}
	return ev, nil
}

func itemsEvaluation(res []*schema.Result, failed []int) *schema.KeywordEvaluation {
	ev := &schema.KeywordEvaluation{Valid: len(failed) == 0, Children: res}
	if len(res) != 0 {
		ev.Annotation = ir.FromBool(true)
	}
	if !ev.Valid {
		ev.Error = fmt.Sprintf("items %v do not match", failed)
	}
	return ev
}

type prefixItemsKeyword struct{ keyword }

func (prefixItemsKeyword) Subschemas(v *ir.Node) []*ir.Node { return each(v) }

func (prefixItemsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchemaArray(ctx, v); err != nil {
		return nil, err
	}
	return evalTuple(ctx, v)
}

// itemsKeyword is the 2020-12 items: one schema for every item after
// those prefixItems covers.
type itemsKeyword struct{ keyword }

func (itemsKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (itemsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	start := 0
	if prefix := ir.Get(ctx.Schema(), "prefixItems"); prefix != nil && prefix.Type == ir.ArrayType {
		start = len(prefix.Values)
	}
	res, failed, err := evalItems(ctx, v, inst, start)
	if err != nil {
		return nil, err
	}
	return itemsEvaluation(res, failed), nil
}

// legacyItemsKeyword is items before 2020-12: a schema for every item, or
// an array of schemas applied positionally.
type legacyItemsKeyword struct{ keyword }

func (legacyItemsKeyword) Subschemas(v *ir.Node) []*ir.Node {
	if v.Type == ir.ArrayType {
		return each(v)
	}
	return one(v)
}

func (legacyItemsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type == ir.ArrayType {
		for i, e := range v.Values {
			if !isSchema(e) {
				return nil, ctx.Errorf("element %d must be a schema, got %s", i, e.Type)
			}
		}
		return evalTuple(ctx, v)
	}
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	res, failed, err := evalItems(ctx, v, inst, 0)
	if err != nil {
		return nil, err
	}
	return itemsEvaluation(res, failed), nil
}

// additionalItemsKeyword applies after a tuple form of items; otherwise it
// does nothing.
type additionalItemsKeyword struct{ keyword }

func (additionalItemsKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (additionalItemsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	items := ir.Get(ctx.Schema(), "items")
	if inst.Type != ir.ArrayType || items == nil || items.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	res, failed, err := evalItems(ctx, v, inst, len(items.Values))
	if err != nil {
		return nil, err
	}
	return itemsEvaluation(res, failed), nil
}

// containsKeyword annotates the indices of matching items. Its bounds come
// from minContains and maxContains when the dialect has them.
type containsKeyword struct{ keyword }

func (containsKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (containsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	lo, hi := 1, -1
	if ctx.Dialect().Has("minContains") {
		if m := ir.Get(ctx.Schema(), "minContains"); m != nil {
			n, err := nonNegativeInt(ctx, m)
			if err != nil {
				return nil, err
			}
			lo = n
		}
	}
	if ctx.Dialect().Has("maxContains") {
		if m := ir.Get(ctx.Schema(), "maxContains"); m != nil {
			n, err := nonNegativeInt(ctx, m)
			if err != nil {
				return nil, err
			}
			hi = n
		}
	}
	ev := &schema.KeywordEvaluation{Valid: true}
	var matched []int
	for i, item := range inst.Values {
		r, err := ctx.WithInstance(item, strIndex(i)).Evaluate(v)
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		if r.Valid {
			matched = append(matched, i)
		}
	}
	ev.Annotation = indexList(matched)
	switch {
	case len(matched) < lo:
		ev.Valid = false
		ev.Error = fmt.Sprintf("%d items match, at least %d required", len(matched), lo)
	case hi >= 0 && len(matched) > hi:
		ev.Valid = false
		ev.Error = fmt.Sprintf("%d items match, at most %d allowed", len(matched), hi)
	}
	return ev, nil
}

// containsBoundKeyword is minContains or maxContains; contains enforces
// them, so they only check their own value.
type containsBoundKeyword struct{ keyword }

func (containsBoundKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if _, err := nonNegativeInt(ctx, v); err != nil {
		return nil, err
	}
	return schema.Pass(), nil
}

type itemCountKeyword struct {
	keyword
	max bool
}

func (k itemCountKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	n, err := nonNegativeInt(ctx, v)
	if err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	got := len(inst.Values)
	switch {
	case k.max && got > n:
		return schema.Fail(fmt.Sprintf("has %d items, at most %d allowed", got, n)), nil
	case !k.max && got < n:
		return schema.Fail(fmt.Sprintf("has %d items, at least %d required", got, n)), nil
	}
	return schema.Pass(), nil
}

type uniqueItemsKeyword struct{ keyword }

func (uniqueItemsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.BoolType {
		return nil, ctx.Errorf("must be a boolean, got %s", v.Type)
	}
	inst := ctx.Instance()
	if !v.Bool || inst.Type != ir.ArrayType {
		return schema.Pass(), nil
	}
	seen := map[uint64][]int{}
	for i, item := range inst.Values {
		h := item.Hash()
		for _, j := range seen[h] {
			if ir.Equal(inst.Values[j], item) {
				return schema.Fail(fmt.Sprintf("items %d and %d are equal", j, i)), nil
			}
		}
		seen[h] = append(seen[h], i)
	}
	return schema.Pass(), nil
}

var (
	prefixItemsKw     = &prefixItemsKeyword{keyword{name: "prefixItems"}}
	itemsKw           = &itemsKeyword{keyword{name: "items", deps: []string{"prefixItems"}}}
	legacyItemsKw     = &legacyItemsKeyword{keyword{name: "items"}}
	additionalItemsKw = &additionalItemsKeyword{keyword{name: "additionalItems", deps: []string{"items"}}}
	containsKw        = &containsKeyword{keyword{name: "contains"}}
	minContainsKw     = &containsBoundKeyword{keyword{name: "minContains", deps: []string{"contains"}}}
	maxContainsKw     = &containsBoundKeyword{keyword{name: "maxContains", deps: []string{"contains"}}}
	maxItemsKw        = &itemCountKeyword{keyword: keyword{name: "maxItems"}, max: true}
	minItemsKw        = &itemCountKeyword{keyword: keyword{name: "minItems"}}
	uniqueItemsKw     = &uniqueItemsKeyword{keyword{name: "uniqueItems"}}
)

func PrefixItems() schema.Handler     { return prefixItemsKw }
func Items() schema.Handler           { return itemsKw }
func LegacyItems() schema.Handler     { return legacyItemsKw }
func AdditionalItems() schema.Handler { return additionalItemsKw }
func Contains() schema.Handler        { return containsKw }
func MinContains() schema.Handler     { return minContainsKw }
func MaxContains() schema.Handler     { return maxContainsKw }
func MaxItems() schema.Handler        { return maxItemsKw }
func MinItems() schema.Handler        { return minItemsKw }
func UniqueItems() schema.Handler     { return uniqueItemsKw }
