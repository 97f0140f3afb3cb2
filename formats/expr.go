package formats

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// Expr builds a format from a boolean expression. The expression sees the
// instance as value and its JSON type as type, and can call the built in
// format checks through isFormat, e.g.
//
//	type != "string" || (len(value) <= 8 && value matches "^[a-z]+$")
//	isFormat("uuid", value) && value[0:1] == "0"
func Expr(expression string) (schema.Format, error) {
	program, err := expr.Compile(expression, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("format expression %q: %w", expression, err)
	}
	return schema.FormatFunc(func(n *ir.Node) (bool, string) {
		out, err := vm.Run(program, newExprEnv(n))
		if err != nil {
			return false, err.Error()
		}
		if out.(bool) {
			return true, ""
		}
		return false, fmt.Sprintf("does not satisfy %s", expression)
	}), nil
}

type exprEnv struct {
	Value any    `expr:"value"`
	Type  string `expr:"type"`
}

func newExprEnv(n *ir.Node) exprEnv {
	return exprEnv{Value: exprValue(n), Type: ir.JSONType(n)}
}

// exprValue converts n for the expression VM, which has no arithmetic on
// json.Number.
func exprValue(n *ir.Node) any {
	switch n.Type {
	case ir.NumberType:
		if i, ok := n.Int(); ok {
			return i
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		if r, ok := n.Rat(); ok {
			f, _ := r.Float64()
			return f
		}
		return nil
	case ir.ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = exprValue(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i, f := range n.Fields {
			res[f.String] = exprValue(n.Values[i])
		}
		return res
	}
	return ir.ToAny(n)
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(exprEnv{}),
		expr.AsBool(),
		expr.Function("isFormat", func(params ...any) (any, error) {
			name := params[0].(string)
			f, ok := builtin[name]
			if !ok {
				return nil, fmt.Errorf("unknown format %q", name)
			}
			s, ok := params[1].(string)
			return !ok || f(s) == nil, nil
		}, new(func(string, any) bool)),
	}
}
