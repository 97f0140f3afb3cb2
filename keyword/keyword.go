package keyword

import (
	"strconv"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

type keyword struct {
	name string
	deps []string
}

func (k keyword) Name() string {
	return k.name
}

func (k keyword) Dependencies() []string {
	return k.deps
}

func (k keyword) Subschemas(*ir.Node) []*ir.Node {
	return nil
}

func isSchema(v *ir.Node) bool {
	return v != nil && (v.Type == ir.ObjectType || v.Type == ir.BoolType)
}

// one reports v when it is a schema.
func one(v *ir.Node) []*ir.Node {
	if isSchema(v) {
		return []*ir.Node{v}
	}
	return nil
}

// each reports the schemas in the array v.
func each(v *ir.Node) []*ir.Node {
	if v == nil || v.Type != ir.ArrayType {
		return nil
	}
	res := make([]*ir.Node, 0, len(v.Values))
	for _, e := range v.Values {
		if isSchema(e) {
			res = append(res, e)
		}
	}
	return res
}

// values reports the schemas among the values of the object v.
func values(v *ir.Node) []*ir.Node {
	if v == nil || v.Type != ir.ObjectType {
		return nil
	}
	res := make([]*ir.Node, 0, len(v.Values))
	for _, e := range v.Values {
		if isSchema(e) {
			res = append(res, e)
		}
	}
	return res
}

func checkSchema(ctx schema.Context, v *ir.Node) error {
	if !isSchema(v) {
		return ctx.Errorf("must be a schema, got %s", v.Type)
	}
	return nil
}

func checkSchemaArray(ctx schema.Context, v *ir.Node) error {
	if v.Type != ir.ArrayType || len(v.Values) == 0 {
		return ctx.Errorf("must be a non-empty array of schemas")
	}
	for i, e := range v.Values {
		if !isSchema(e) {
			return ctx.Errorf("element %d must be a schema, got %s", i, e.Type)
		}
	}
	return nil
}

func checkSchemaMap(ctx schema.Context, v *ir.Node) error {
	if v.Type != ir.ObjectType {
		return ctx.Errorf("must be an object, got %s", v.Type)
	}
	for i, e := range v.Values {
		if !isSchema(e) {
			return ctx.Errorf("value for %q must be a schema, got %s", v.Fields[i].String, e.Type)
		}
	}
	return nil
}

func nonNegativeInt(ctx schema.Context, v *ir.Node) (int, error) {
	n, ok := v.Int()
	if !ok || n < 0 {
		return 0, ctx.Errorf("must be a non-negative integer, got %s", ir.MustJSON(v))
	}
	return n, nil
}

func number(ctx schema.Context, v *ir.Node) error {
	if v.Type != ir.NumberType {
		return ctx.Errorf("must be a number, got %s", v.Type)
	}
	return nil
}

func stringList(ctx schema.Context, v *ir.Node) ([]string, error) {
	if v.Type != ir.ArrayType {
		return nil, ctx.Errorf("must be an array of strings, got %s", v.Type)
	}
	res := make([]string, len(v.Values))
	for i, e := range v.Values {
		if e.Type != ir.StringType {
			return nil, ctx.Errorf("element %d must be a string, got %s", i, e.Type)
		}
		res[i] = e.String
	}
	return res, nil
}

func strIndex(i int) string {
	return strconv.Itoa(i)
}

func indexList(is []int) *ir.Node {
	vs := make([]*ir.Node, len(is))
	for i, x := range is {
		vs[i] = ir.FromInt(int64(x))
	}
	return ir.FromSlice(vs)
}
