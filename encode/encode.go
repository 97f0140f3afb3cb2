package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/jsonschema/format"
	"github.com/signadot/jsonschema/ir"
)

type EncState struct {
	indent int
	format format.Format
	colors *Colors
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	var (
		out string
		err error
	)
	switch es.format {
	case format.YAMLFormat:
		out, err = encodeYAML(node, es)
	default:
		b := &strings.Builder{}
		err = encodeJSON(node, b, es, 0)
		out = b.String()
	}
	if err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(t, a, s)
}

func (es *EncState) newline(b *strings.Builder, depth int) {
	if es.indent <= 0 {
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", depth*es.indent))
}

func encodeJSON(node *ir.Node, b *strings.Builder, es *EncState, depth int) error {
	switch node.Type {
	case ir.NullType:
		b.WriteString(es.color(ir.NullType, ValueColor, "null"))
	case ir.BoolType:
		b.WriteString(es.color(ir.BoolType, ValueColor, fmt.Sprint(node.Bool)))
	case ir.NumberType:
		d, err := node.MarshalJSON()
		if err != nil {
			return err
		}
		b.WriteString(es.color(ir.NumberType, ValueColor, string(d)))
	case ir.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		b.WriteString(es.color(ir.StringType, ValueColor, string(d)))
	case ir.ArrayType:
		b.WriteString(es.color(ir.ArrayType, SepColor, "["))
		for i, v := range node.Values {
			if i > 0 {
				b.WriteString(es.color(ir.ArrayType, SepColor, ","))
			}
			es.newline(b, depth+1)
			if err := encodeJSON(v, b, es, depth+1); err != nil {
				return err
			}
		}
		if len(node.Values) > 0 {
			es.newline(b, depth)
		}
		b.WriteString(es.color(ir.ArrayType, SepColor, "]"))
	case ir.ObjectType:
		b.WriteString(es.color(ir.ObjectType, SepColor, "{"))
		for i, f := range node.Fields {
			if i > 0 {
				b.WriteString(es.color(ir.ObjectType, SepColor, ","))
			}
			es.newline(b, depth+1)
			d, err := json.Marshal(f.String)
			if err != nil {
				return err
			}
			b.WriteString(es.color(ir.ObjectType, FieldColor, string(d)))
			b.WriteString(es.color(ir.ObjectType, SepColor, ":"))
			if es.indent > 0 {
				b.WriteByte(' ')
			}
			if err := encodeJSON(node.Values[i], b, es, depth+1); err != nil {
				return err
			}
		}
		if len(node.Fields) > 0 {
			es.newline(b, depth)
		}
		b.WriteString(es.color(ir.ObjectType, SepColor, "}"))
	default:
		return fmt.Errorf("cannot encode node type %d", node.Type)
	}
	return nil
}
