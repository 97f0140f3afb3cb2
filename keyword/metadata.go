package keyword

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// annotationKeyword annotates the instance with the keyword value. A kind
// of -1 accepts any value.
type annotationKeyword struct {
	keyword
	kind ir.Type
}

func (k annotationKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if k.kind >= 0 && v.Type != k.kind {
		return nil, ctx.Errorf("must be %s, got %s", k.kind, v.Type)
	}
	return schema.Annotate(v), nil
}

const anyType ir.Type = -1

var (
	titleKw            = &annotationKeyword{keyword: keyword{name: "title"}, kind: ir.StringType}
	descriptionKw      = &annotationKeyword{keyword: keyword{name: "description"}, kind: ir.StringType}
	defaultKw          = &annotationKeyword{keyword: keyword{name: "default"}, kind: anyType}
	deprecatedKw       = &annotationKeyword{keyword: keyword{name: "deprecated"}, kind: ir.BoolType}
	readOnlyKw         = &annotationKeyword{keyword: keyword{name: "readOnly"}, kind: ir.BoolType}
	writeOnlyKw        = &annotationKeyword{keyword: keyword{name: "writeOnly"}, kind: ir.BoolType}
	examplesKw         = &annotationKeyword{keyword: keyword{name: "examples"}, kind: ir.ArrayType}
	contentEncodingKw  = &annotationKeyword{keyword: keyword{name: "contentEncoding"}, kind: ir.StringType}
	contentMediaTypeKw = &annotationKeyword{keyword: keyword{name: "contentMediaType"}, kind: ir.StringType}
)

func Title() schema.Handler       { return titleKw }
func Description() schema.Handler { return descriptionKw }
func Default() schema.Handler     { return defaultKw }
func Deprecated() schema.Handler  { return deprecatedKw }
func ReadOnly() schema.Handler    { return readOnlyKw }
func WriteOnly() schema.Handler   { return writeOnlyKw }
func Examples() schema.Handler    { return examplesKw }
