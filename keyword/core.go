package keyword

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// identifierKeyword covers keywords the registry consumes while scanning;
// they have no effect during evaluation.
type identifierKeyword struct {
	keyword
	kind ir.Type
}

func (k identifierKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != k.kind {
		return nil, ctx.Errorf("must be a %s, got %s", k.kind, v.Type)
	}
	return schema.Pass(), nil
}

var (
	idKw              = &identifierKeyword{keyword: keyword{name: "$id"}, kind: ir.StringType}
	schemaKw          = &identifierKeyword{keyword: keyword{name: "$schema"}, kind: ir.StringType}
	anchorKw          = &identifierKeyword{keyword: keyword{name: "$anchor"}, kind: ir.StringType}
	dynamicAnchorKw   = &identifierKeyword{keyword: keyword{name: "$dynamicAnchor"}, kind: ir.StringType}
	recursiveAnchorKw = &identifierKeyword{keyword: keyword{name: "$recursiveAnchor"}, kind: ir.BoolType}
	vocabularyKw      = &identifierKeyword{keyword: keyword{name: "$vocabulary"}, kind: ir.ObjectType}
	commentKw         = &identifierKeyword{keyword: keyword{name: "$comment"}, kind: ir.StringType}
)

func ID() schema.Handler              { return idKw }
func Schema() schema.Handler          { return schemaKw }
func Anchor() schema.Handler          { return anchorKw }
func DynamicAnchor() schema.Handler   { return dynamicAnchorKw }
func RecursiveAnchor() schema.Handler { return recursiveAnchorKw }
func Vocabulary() schema.Handler      { return vocabularyKw }
func Comment() schema.Handler         { return commentKw }

// defsKeyword holds reusable schemas; they are reached only by reference.
type defsKeyword struct {
	keyword
}

func (defsKeyword) Subschemas(v *ir.Node) []*ir.Node {
	return values(v)
}

func (defsKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchemaMap(ctx, v); err != nil {
		return nil, err
	}
	return schema.Pass(), nil
}

var (
	defsKw        = &defsKeyword{keyword: keyword{name: "$defs"}}
	definitionsKw = &defsKeyword{keyword: keyword{name: "definitions"}}
)

func Defs() schema.Handler        { return defsKw }
func Definitions() schema.Handler { return definitionsKw }
