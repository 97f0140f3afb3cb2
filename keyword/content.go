package keyword

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// contentSchemaKeyword annotates with its schema. The decoded content is
// never validated against it.
type contentSchemaKeyword struct{ keyword }

func (contentSchemaKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (contentSchemaKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	if ctx.Instance().Type != ir.StringType {
		return schema.Pass(), nil
	}
	return schema.Annotate(v), nil
}

var contentSchemaKw = &contentSchemaKeyword{keyword{name: "contentSchema", deps: []string{"contentMediaType"}}}

func ContentEncoding() schema.Handler  { return contentEncodingKw }
func ContentMediaType() schema.Handler { return contentMediaTypeKw }
func ContentSchema() schema.Handler    { return contentSchemaKw }
