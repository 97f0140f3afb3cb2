package encode

import (
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
	"github.com/signadot/jsonschema/ir"
)

func encodeYAML(node *ir.Node, es *EncState) (string, error) {
	indent := es.indent
	if indent <= 0 {
		indent = 2
	}
	d, err := yaml.MarshalWithOptions(toYAML(node), yaml.Indent(indent), yaml.IndentSequence(true))
	if err != nil {
		return "", err
	}
	if es.colors == nil {
		return string(d), nil
	}
	p := &printer.Printer{
		MapKey: es.property(ir.ObjectType, FieldColor),
		String: es.property(ir.StringType, ValueColor),
		Number: es.property(ir.NumberType, ValueColor),
		Bool:   es.property(ir.BoolType, ValueColor),
	}
	return p.PrintTokens(lexer.Tokenize(string(d))), nil
}

func (es *EncState) property(t ir.Type, a ColorAttr) func() *printer.Property {
	prefix, suffix := es.colors.escapes(t, a)
	return func() *printer.Property {
		return &printer.Property{Prefix: prefix, Suffix: suffix}
	}
}

// toYAML converts a node into values go-yaml marshals in document order.
func toYAML(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		if f, err := strconv.ParseFloat(node.Number, 64); err == nil {
			return f
		}
		return node.Number
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.String, Value: toYAML(node.Values[i])}
		}
		return res
	}
	return nil
}
