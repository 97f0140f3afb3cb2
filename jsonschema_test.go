package jsonschema_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	reflector "github.com/invopop/jsonschema"
	"github.com/signadot/jsonschema"
	"github.com/signadot/jsonschema/formats"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
	"github.com/stretchr/testify/require"
)

type Address struct {
	Street string `json:"street" jsonschema:"minLength=1"`
	City   string `json:"city"`
	Zip    string `json:"zip,omitempty" jsonschema:"pattern=^[0-9]{5}$"`
}

type Person struct {
	Name  string   `json:"name" jsonschema:"minLength=1"`
	Email string   `json:"email" jsonschema:"format=email"`
	ID    string   `json:"id" jsonschema:"format=uuid"`
	Kind  string   `json:"kind" jsonschema:"enum=admin,enum=user"`
	Age   int      `json:"age,omitempty" jsonschema:"minimum=0,maximum=150"`
	Tags  []string `json:"tags,omitempty"`
	Home  *Address `json:"home,omitempty"`
}

func reflectSchema(t *testing.T, v any, anonymous bool) *ir.Node {
	t.Helper()
	r := &reflector.Reflector{Anonymous: anonymous}
	d, err := json.Marshal(r.Reflect(v))
	require.NoError(t, err)
	doc, err := parse.Parse(d)
	require.NoError(t, err)
	return doc
}

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	require.NoError(t, err)
	return n
}

const validPerson = `{
	"name": "Ada",
	"email": "ada@example.com",
	"id": "2eb8aa08-aa98-11ea-b4aa-73b441d16380",
	"kind": "admin",
	"home": {"street": "1 Main St", "city": "Springfield", "zip": "12345"}
}`

func TestReflectedSchema(t *testing.T) {
	v, err := jsonschema.New()
	require.NoError(t, err)
	uri, err := v.AddSchema(reflectSchema(t, &Person{}, false))
	require.NoError(t, err)

	tests := []struct {
		name     string
		instance string
		valid    bool
	}{
		{"valid", validPerson, true},
		{"minimal", `{"name": "a", "email": "x", "id": "y", "kind": "user"}`, true},
		{"missing name", `{"email": "x", "id": "y", "kind": "user"}`, false},
		{"empty name", `{"name": "", "email": "x", "id": "y", "kind": "user"}`, false},
		{"extra property", `{"name": "a", "email": "x", "id": "y", "kind": "user", "nick": "b"}`, false},
		{"bad enum", `{"name": "a", "email": "x", "id": "y", "kind": "root"}`, false},
		{"negative age", `{"name": "a", "email": "x", "id": "y", "kind": "user", "age": -1}`, false},
		{"fractional age", `{"name": "a", "email": "x", "id": "y", "kind": "user", "age": 1.5}`, false},
		{"integral float age", `{"name": "a", "email": "x", "id": "y", "kind": "user", "age": 30.0}`, true},
		{"bad tags", `{"name": "a", "email": "x", "id": "y", "kind": "user", "tags": [1]}`, false},
		{"bad zip via ref", `{"name": "a", "email": "x", "id": "y", "kind": "user", "home": {"street": "s", "city": "c", "zip": "1"}}`, false},
		{"address missing city", `{"name": "a", "email": "x", "id": "y", "kind": "user", "home": {"street": "s"}}`, false},
		{"not an object", `[]`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := v.Validate(uri, mustParse(t, tc.instance))
			require.NoError(t, err)
			require.Equal(t, tc.valid, res.Valid, ir.MustJSON(res.Basic()))
		})
	}
}

func TestReflectedSchemaFormats(t *testing.T) {
	doc := reflectSchema(t, &Person{}, true)
	bad := mustParse(t, `{"name": "a", "email": "not an email", "id": "2eb8aa08-aa98-11ea-b4aa-73b441d16380", "kind": "user"}`)

	v, err := jsonschema.New()
	require.NoError(t, err)
	res, err := v.ValidateSchema(doc, bad)
	require.NoError(t, err)
	require.True(t, res.Valid, "format is an annotation by default")

	v, err = jsonschema.New(jsonschema.WithFormatAssertion(true))
	require.NoError(t, err)
	res, err = v.ValidateSchema(doc, bad)
	require.NoError(t, err)
	require.False(t, res.Valid)
	var failed []string
	res.Walk(func(r *schema.Result) bool {
		if _, ok := r.Errors["format"]; ok {
			failed = append(failed, r.InstanceLocation.String())
		}
		return true
	})
	require.Equal(t, []string{"/email"}, failed)

	res, err = v.ValidateSchema(doc, mustParse(t, validPerson))
	require.NoError(t, err)
	require.True(t, res.Valid, ir.MustJSON(res.Basic()))
}

func TestReflectedSchemaAgainstMetaSchema(t *testing.T) {
	v := jsonschema.Default()
	doc := reflectSchema(t, &Person{}, true)
	require.Equal(t, schema.Draft2020, v.MetaSchema(doc))
	res, err := v.ValidateMetaSchema(doc)
	require.NoError(t, err)
	require.True(t, res.Valid, ir.MustJSON(res.Basic()))
}

func TestValidateMetaSchema(t *testing.T) {
	v := jsonschema.Default()
	tests := []struct {
		name   string
		schema string
		valid  bool
	}{
		{"2020 ok", `{"type": ["string", "null"], "maxLength": 3}`, true},
		{"2020 bad", `{"type": "strin"}`, false},
		{"draft-07 ok", `{"$schema": "http://json-schema.org/draft-07/schema#", "items": [{}], "additionalItems": false}`, true},
		{"draft-07 bad", `{"$schema": "http://json-schema.org/draft-07/schema#", "required": [1]}`, false},
		{"2019 bad", `{"$schema": "https://json-schema.org/draft/2019-09/schema", "minItems": -2}`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := v.ValidateMetaSchema(mustParse(t, tc.schema))
			require.NoError(t, err)
			require.Equal(t, tc.valid, res.Valid)
		})
	}
}

func TestValidateJSON(t *testing.T) {
	v := jsonschema.Default()
	res, err := v.ValidateJSON([]byte(`{"minimum": 10}`), []byte(`12`))
	require.NoError(t, err)
	require.True(t, res.Valid)

	res, err = v.ValidateJSON([]byte(`{"minimum": 10}`), []byte(`9.99`))
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "minimum")

	_, err = v.ValidateJSON([]byte(`{"minimum": 10`), []byte(`1`))
	require.Error(t, err)

	_, err = v.ValidateJSON([]byte(`{"$ref": "#/nowhere"}`), []byte(`1`))
	require.ErrorIs(t, err, schema.ErrRefResolution)
}

func TestWithFormat(t *testing.T) {
	even, err := formats.Expr(`type != "integer" || value % 2 == 0`)
	require.NoError(t, err)
	v, err := jsonschema.New(jsonschema.WithFormat("even", even), jsonschema.WithFormatAssertion(true))
	require.NoError(t, err)
	doc := mustParse(t, `{"items": {"format": "even"}}`)

	res, err := v.ValidateSchema(doc, mustParse(t, `[2, 4, "x"]`))
	require.NoError(t, err)
	require.True(t, res.Valid)

	res, err = v.ValidateSchema(doc, mustParse(t, `[2, 3]`))
	require.NoError(t, err)
	require.False(t, res.Valid)
}

func TestDefaultDialectOption(t *testing.T) {
	v, err := jsonschema.New(jsonschema.WithDefaultDialect(schema.Draft07))
	require.NoError(t, err)
	doc := mustParse(t, `{"$ref": "#/definitions/s", "minLength": 5, "definitions": {"s": {"type": "string"}}}`)
	res, err := v.ValidateSchema(doc, mustParse(t, `"abc"`))
	require.NoError(t, err)
	require.True(t, res.Valid, "$ref siblings are ignored in draft-07")
	require.Equal(t, schema.Draft07, v.MetaSchema(doc))
}

func TestChildIsolation(t *testing.T) {
	parent, err := jsonschema.New()
	require.NoError(t, err)
	child := parent.Child()
	uri, err := child.AddSchema(mustParse(t, `{"$id": "https://example.com/private", "type": "string"}`))
	require.NoError(t, err)
	require.Equal(t, "https://example.com/private", uri)

	res, err := child.Validate(uri, mustParse(t, `"s"`))
	require.NoError(t, err)
	require.True(t, res.Valid)

	_, err = parent.Validate(uri, mustParse(t, `"s"`))
	var refErr *schema.RefResolutionError
	require.True(t, errors.As(err, &refErr), "got %v", err)

	sibling, err := jsonschema.New(jsonschema.WithParent(parent.Registry()))
	require.NoError(t, err)
	res, err = sibling.ValidateMetaSchema(mustParse(t, `{"type": 3}`))
	require.NoError(t, err)
	require.False(t, res.Valid)
}

func TestAddSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "port.yaml")
	require.NoError(t, os.WriteFile(path, []byte("$id: https://example.com/port\ntype: integer\nminimum: 1\nmaximum: 65535\n"), 0o644))
	v, err := jsonschema.New()
	require.NoError(t, err)
	uri, err := v.AddSchemaFile(path)
	require.NoError(t, err)
	for in, want := range map[string]bool{`80`: true, `0`: false, `70000`: false, `"80"`: false} {
		res, err := v.Validate(uri, mustParse(t, in))
		require.NoError(t, err)
		require.Equal(t, want, res.Valid, in)
	}

	_, err = v.AddSchemaFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestDefaultIsShared(t *testing.T) {
	require.Same(t, jsonschema.Default(), jsonschema.Default())
	require.Contains(t, jsonschema.Default().Formats().Names(), "date-time")
}
