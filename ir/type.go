package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	ObjectType
	ArrayType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType: "object",
		ArrayType:  "array",
		StringType: "string",
		NumberType: "number",
		BoolType:   "boolean",
		NullType:   "null",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"null":    NullType,
		"boolean": BoolType,
		"number":  NumberType,
		"string":  StringType,
		"array":   ArrayType,
		"object":  ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		ObjectType,
		ArrayType,
	}
}

// JSONType returns the JSON Schema type name of the node. Numbers with an
// integral value report "integer".
func JSONType(node *Node) string {
	if node.Type == NumberType && node.IsInteger() {
		return "integer"
	}
	return node.Type.String()
}
