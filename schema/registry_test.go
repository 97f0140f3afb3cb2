package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
	"github.com/signadot/jsonschema/vocab"
)

var vocabs = vocab.NewRegistry()

func mustParse(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return n
}

func newRegistry(t *testing.T, docs ...string) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry(vocabs)
	for _, d := range docs {
		if _, err := reg.Add(mustParse(t, d)); err != nil {
			t.Fatalf("add %s: %v", d, err)
		}
	}
	return reg
}

func TestRegistrationIndexes(t *testing.T) {
	reg := newRegistry(t, `{
		"$id": "https://example.com/root",
		"$defs": {
			"a": {"$anchor": "A"},
			"d": {"$dynamicAnchor": "D"},
			"sub": {
				"$id": "sub/inner",
				"$defs": {"x": {"$anchor": "X"}}
			},
			"legacy": {"$id": "#L"}
		}
	}`)
	if diff := cmp.Diff([]string{"https://example.com/root", "https://example.com/sub/inner"}, reg.Registrations()); diff != "" {
		t.Errorf("registrations (-want +got):\n%s", diff)
	}
	root, _ := reg.Lookup("https://example.com/root")
	for _, name := range []string{"A", "D"} {
		if root.Anchors[name] == nil {
			t.Errorf("missing anchor %s", name)
		}
	}
	if root.DynamicAnchors["D"] == nil || root.DynamicAnchors["A"] != nil {
		t.Errorf("dynamic anchors %v", root.DynamicAnchors)
	}
	if root.LegacyAnchors["L"] == nil {
		t.Errorf("missing legacy anchor")
	}
	if root.Anchors["X"] != nil {
		t.Errorf("anchor of a nested resource leaked into the parent")
	}
	inner, _ := reg.Lookup("https://example.com/sub/inner")
	if inner.Anchors["X"] == nil {
		t.Errorf("missing X in nested resource")
	}
	x, err := reg.Get("https://example.com/sub/inner", "X", false)
	if err != nil {
		t.Fatal(err)
	}
	loc, ok := reg.Location(x)
	if !ok {
		t.Fatal("no location")
	}
	if diff := cmp.Diff("https://example.com/sub/inner#/$defs/x", loc.String()); diff != "" {
		t.Error(diff)
	}
	if _, err := reg.Get("https://example.com/root", "L", false); err == nil {
		t.Errorf("legacy anchor returned without allowLegacy")
	}
	if _, err := reg.Get("https://example.com/root", "L", true); err != nil {
		t.Errorf("legacy anchor: %v", err)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	const doc = `{"$id": "https://example.com/s", "$defs": {"a": {"$anchor": "a", "type": "string"}}}`
	reg := newRegistry(t, doc)
	first, err := reg.Get("https://example.com/s", "a", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Add(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	second, err := reg.Get("https://example.com/s", "a", false)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(first, second) {
		t.Errorf("got %s then %s", ir.MustJSON(first), ir.MustJSON(second))
	}
	if diff := cmp.Diff([]string{"https://example.com/s"}, reg.Registrations()); diff != "" {
		t.Error(diff)
	}
}

func TestRegisterErrors(t *testing.T) {
	reg := schema.NewRegistry(vocabs)
	if err := reg.Register("relative/path", mustParse(t, `{}`)); !errors.Is(err, schema.ErrInvalidSchema) {
		t.Errorf("relative base: %v", err)
	}
	if err := reg.Register("https://example.com/x", mustParse(t, `1`)); !errors.Is(err, schema.ErrInvalidSchema) {
		t.Errorf("number document: %v", err)
	}
	for _, doc := range []string{
		`{"$anchor": "1bad"}`,
		`{"$id": 3}`,
		`{"$defs": {"a": {"$id": "#bad anchor"}}}`,
	} {
		if _, err := reg.Add(mustParse(t, doc)); !errors.Is(err, schema.ErrInvalidSchema) {
			t.Errorf("%s: got %v", doc, err)
		}
	}
}

func TestAddAnonymous(t *testing.T) {
	reg := schema.NewRegistry(vocabs)
	uri, err := reg.Add(mustParse(t, `{"type": "string"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(uri, "urn:uuid:") {
		t.Errorf("uri %q", uri)
	}
	res, err := reg.Evaluate(uri, mustParse(t, `"x"`))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("expected valid")
	}
}

func TestChildRegistry(t *testing.T) {
	parent := newRegistry(t, `{"$id": "https://example.com/int", "type": "integer"}`)
	child := parent.Child()
	if _, err := child.Add(mustParse(t, `{"$id": "https://example.com/uses", "$ref": "int"}`)); err != nil {
		t.Fatal(err)
	}
	res, err := child.Evaluate("https://example.com/uses", mustParse(t, `"x"`))
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Errorf("expected invalid")
	}
	if _, ok := parent.Lookup("https://example.com/uses"); ok {
		t.Errorf("child registration visible in parent")
	}
}
