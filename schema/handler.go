package schema

import "github.com/signadot/jsonschema/ir"

// Handler implements one keyword. Handlers are stateless and shared between
// dialects and evaluations.
type Handler interface {
	// Name is the keyword the handler implements.
	Name() string
	// Dependencies names sibling keywords whose evaluations must be
	// available to Handle. Absent siblings are ignored.
	Dependencies() []string
	// Handle evaluates the keyword value against ctx.Instance(). A
	// returned error means the schema is malformed and aborts evaluation;
	// an instance mismatch is reported with Valid false.
	Handle(value *ir.Node, ctx Context, siblings Siblings) (*KeywordEvaluation, error)
	// Subschemas returns the schemas embedded in value, used when scanning
	// documents at registration.
	Subschemas(value *ir.Node) []*ir.Node
}

// KeywordEvaluation is the outcome of one keyword.
type KeywordEvaluation struct {
	Valid      bool
	Annotation *ir.Node
	Error      string
	Children   []*Result
}

// Siblings holds the evaluations of keywords already evaluated in the same
// schema object, keyed by keyword name.
type Siblings map[string]*KeywordEvaluation

func Pass() *KeywordEvaluation {
	return &KeywordEvaluation{Valid: true}
}

func Annotate(a *ir.Node) *KeywordEvaluation {
	return &KeywordEvaluation{Valid: true, Annotation: a}
}

func Fail(msg string) *KeywordEvaluation {
	return &KeywordEvaluation{Error: msg}
}
