package keyword_test

import "testing"

func TestValidationKeywords(t *testing.T) {
	runValidity(t, []validityCase{
		{"type match", `{"type": "string"}`, `"x"`, true},
		{"type mismatch", `{"type": "string"}`, `1`, false},
		{"type list", `{"type": ["null", "number"]}`, `null`, true},
		{"integer with zero fraction", `{"type": "integer"}`, `1.0`, true},
		{"integer rejects fraction", `{"type": "integer"}`, `1.5`, false},
		{"number accepts integer", `{"type": "number"}`, `3`, true},
		{"boolean is not number", `{"type": "number"}`, `true`, false},
		{"enum", `{"enum": [1, "a", {"b": [null]}]}`, `{"b": [null]}`, true},
		{"enum numeric equality", `{"enum": [1]}`, `1.0`, true},
		{"enum miss", `{"enum": [1, "a"]}`, `"b"`, false},
		{"const object order", `{"const": {"a": 1, "b": 2}}`, `{"b": 2, "a": 1}`, true},
		{"const miss", `{"const": false}`, `0`, false},
		{"multipleOf", `{"multipleOf": 0.1}`, `0.3`, true},
		{"multipleOf miss", `{"multipleOf": 2}`, `7`, false},
		{"multipleOf ignores strings", `{"multipleOf": 2}`, `"7"`, true},
		{"maximum equal", `{"maximum": 3}`, `3`, true},
		{"maximum above", `{"maximum": 3}`, `3.0001`, false},
		{"exclusiveMaximum equal", `{"exclusiveMaximum": 3}`, `3`, false},
		{"minimum", `{"minimum": -1}`, `-1`, true},
		{"exclusiveMinimum", `{"exclusiveMinimum": -1}`, `-0.5`, true},
		{"exclusiveMinimum equal", `{"exclusiveMinimum": -1}`, `-1`, false},
		{"big integers compare exactly", `{"maximum": 9007199254740993}`, `9007199254740992`, true},
		{"maxLength counts runes", `{"maxLength": 2}`, `"żó"`, true},
		{"maxLength over", `{"maxLength": 2}`, `"abc"`, false},
		{"minLength", `{"minLength": 2}`, `"a"`, false},
		{"pattern unanchored", `{"pattern": "b+"}`, `"abbc"`, true},
		{"pattern miss", `{"pattern": "^a$"}`, `"ab"`, false},
		{"pattern ignores numbers", `{"pattern": "^a$"}`, `12`, true},
	})
}

func TestValidationSchemaErrors(t *testing.T) {
	for _, sch := range []string{
		`{"type": "integr"}`,
		`{"type": 3}`,
		`{"multipleOf": 0}`,
		`{"maximum": "3"}`,
		`{"maxLength": -1}`,
		`{"minLength": 1.5}`,
		`{"pattern": "("}`,
		`{"enum": 1}`,
	} {
		t.Run(sch, func(t *testing.T) {
			expectSchemaError(t, sch, `"x"`)
		})
	}
}
