package keyword

import (
	"fmt"
	"math/big"
	"slices"
	"unicode/utf8"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

var typeNames = []string{"null", "boolean", "object", "array", "number", "string", "integer"}

func matchesType(inst *ir.Node, name string) bool {
	switch name {
	case "integer":
		return inst.IsInteger()
	case "number":
		return inst.Type == ir.NumberType
	default:
		return inst.Type.String() == name
	}
}

type typeKeyword struct{ keyword }

func (typeKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	var names []string
	switch v.Type {
	case ir.StringType:
		names = []string{v.String}
	case ir.ArrayType:
		var err error
		if names, err = stringList(ctx, v); err != nil {
			return nil, err
		}
	default:
		return nil, ctx.Errorf("must be a string or an array of strings, got %s", v.Type)
	}
	for _, n := range names {
		if !slices.Contains(typeNames, n) {
			return nil, ctx.Errorf("unknown type %q", n)
		}
	}
	inst := ctx.Instance()
	for _, n := range names {
		if matchesType(inst, n) {
			return schema.Pass(), nil
		}
	}
	return schema.Fail(fmt.Sprintf("got %s, want %s", ir.JSONType(inst), ir.MustJSON(v))), nil
}

type enumKeyword struct{ keyword }

func (enumKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.ArrayType {
		return nil, ctx.Errorf("must be an array, got %s", v.Type)
	}
	inst := ctx.Instance()
	for _, e := range v.Values {
		if ir.Equal(e, inst) {
			return schema.Pass(), nil
		}
	}
	return schema.Fail(fmt.Sprintf("%s is not one of %s", ir.MustJSON(inst), ir.MustJSON(v))), nil
}

type constKeyword struct{ keyword }

func (constKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	inst := ctx.Instance()
	if ir.Equal(v, inst) {
		return schema.Pass(), nil
	}
	return schema.Fail(fmt.Sprintf("%s is not %s", ir.MustJSON(inst), ir.MustJSON(v))), nil
}

type multipleOfKeyword struct{ keyword }

func (multipleOfKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	d, ok := v.Rat()
	if !ok || d.Sign() <= 0 {
		return nil, ctx.Errorf("must be a number greater than 0, got %s", ir.MustJSON(v))
	}
	inst := ctx.Instance()
	n, ok := inst.Rat()
	if !ok {
		return schema.Pass(), nil
	}
	if new(big.Rat).Quo(n, d).IsInt() {
		return schema.Pass(), nil
	}
	return schema.Fail(fmt.Sprintf("%s is not a multiple of %s", inst.Number, v.Number)), nil
}

// boundKeyword is one of maximum, minimum, exclusiveMaximum and
// exclusiveMinimum.
type boundKeyword struct {
	keyword
	max       bool
	exclusive bool
}

func (k boundKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := number(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.NumberType {
		return schema.Pass(), nil
	}
	c, err := ir.CompareNumbers(inst, v)
	if err != nil {
		return nil, ctx.Errorf("%v", err)
	}
	if k.max {
		c = -c
	}
	if c > 0 || (c == 0 && !k.exclusive) {
		return schema.Pass(), nil
	}
	rel := map[[2]bool]string{
		{true, false}:  "at most",
		{true, true}:   "less than",
		{false, false}: "at least",
		{false, true}:  "greater than",
	}[[2]bool{k.max, k.exclusive}]
	return schema.Fail(fmt.Sprintf("%s is not %s %s", inst.Number, rel, v.Number)), nil
}

type lengthKeyword struct {
	keyword
	max bool
}

func (k lengthKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	n, err := nonNegativeInt(ctx, v)
	if err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.StringType {
		return schema.Pass(), nil
	}
	got := utf8.RuneCountInString(inst.String)
	switch {
	case k.max && got > n:
		return schema.Fail(fmt.Sprintf("length %d is greater than %d", got, n)), nil
	case !k.max && got < n:
		return schema.Fail(fmt.Sprintf("length %d is less than %d", got, n)), nil
	}
	return schema.Pass(), nil
}

type patternKeyword struct{ keyword }

func (patternKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.StringType {
		return nil, ctx.Errorf("must be a string, got %s", v.Type)
	}
	re, err := compilePattern(v.String)
	if err != nil {
		return nil, ctx.Errorf("%v", err)
	}
	inst := ctx.Instance()
	if inst.Type != ir.StringType || re.MatchString(inst.String) {
		return schema.Pass(), nil
	}
	return schema.Fail(fmt.Sprintf("%q does not match %q", inst.String, v.String)), nil
}

var (
	typeKw             = &typeKeyword{keyword{name: "type"}}
	enumKw             = &enumKeyword{keyword{name: "enum"}}
	constKw            = &constKeyword{keyword{name: "const"}}
	multipleOfKw       = &multipleOfKeyword{keyword{name: "multipleOf"}}
	maximumKw          = &boundKeyword{keyword: keyword{name: "maximum"}, max: true}
	exclusiveMaximumKw = &boundKeyword{keyword: keyword{name: "exclusiveMaximum"}, max: true, exclusive: true}
	minimumKw          = &boundKeyword{keyword: keyword{name: "minimum"}}
	exclusiveMinimumKw = &boundKeyword{keyword: keyword{name: "exclusiveMinimum"}, exclusive: true}
	maxLengthKw        = &lengthKeyword{keyword: keyword{name: "maxLength"}, max: true}
	minLengthKw        = &lengthKeyword{keyword: keyword{name: "minLength"}}
	patternKw          = &patternKeyword{keyword{name: "pattern"}}
)

func Type() schema.Handler             { return typeKw }
func Enum() schema.Handler             { return enumKw }
func Const() schema.Handler            { return constKw }
func MultipleOf() schema.Handler       { return multipleOfKw }
func Maximum() schema.Handler          { return maximumKw }
func ExclusiveMaximum() schema.Handler { return exclusiveMaximumKw }
func Minimum() schema.Handler          { return minimumKw }
func ExclusiveMinimum() schema.Handler { return exclusiveMinimumKw }
func MaxLength() schema.Handler        { return maxLengthKw }
func MinLength() schema.Handler        { return minLengthKw }
func Pattern() schema.Handler          { return patternKw }
