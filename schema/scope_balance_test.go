package schema

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonschema/ir"
)

type refHandler struct{}

func (refHandler) Name() string                   { return "ref" }
func (refHandler) Dependencies() []string         { return nil }
func (refHandler) Subschemas(*ir.Node) []*ir.Node { return nil }

// Handle reports reference errors in band so that evaluation goes on.
func (refHandler) Handle(v *ir.Node, ctx Context, _ Siblings) (*KeywordEvaluation, error) {
	res, err := ctx.EvaluateRef(RefStatic, v.String)
	if err != nil {
		return Fail(err.Error()), nil
	}
	return &KeywordEvaluation{Valid: res.Valid, Children: []*Result{res}}, nil
}

var errBoom = errors.New("boom")

type boomHandler struct{}

func (boomHandler) Name() string                   { return "boom" }
func (boomHandler) Dependencies() []string         { return nil }
func (boomHandler) Subschemas(*ir.Node) []*ir.Node { return nil }
func (boomHandler) Handle(*ir.Node, Context, Siblings) (*KeywordEvaluation, error) {
	return nil, errBoom
}

type probeHandler struct{ seen *[][]string }

func (probeHandler) Name() string                   { return "probe" }
func (probeHandler) Dependencies() []string         { return []string{"ref"} }
func (probeHandler) Subschemas(*ir.Node) []*ir.Node { return nil }
func (h probeHandler) Handle(_ *ir.Node, ctx Context, _ Siblings) (*KeywordEvaluation, error) {
	*h.seen = append(*h.seen, ctx.Scope().Entries())
	return Pass(), nil
}

func TestScopeBalancedAfterError(t *testing.T) {
	var seen [][]string
	reg := testRegistry(t, refHandler{}, boomHandler{}, probeHandler{seen: &seen})
	for uri, doc := range map[string]string{
		"https://example.com/root":  `{"ref": "https://example.com/mid", "probe": true}`,
		"https://example.com/mid":   `{"ref": "https://example.com/other", "probe": true}`,
		"https://example.com/other": `{"boom": true}`,
	} {
		if err := reg.Register(uri, mustParse(t, doc)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := reg.Evaluate("https://example.com/root", ir.Null())
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Errorf("expected the failed reference to invalidate")
	}
	want := [][]string{
		{"https://example.com/root", "https://example.com/mid"},
		{"https://example.com/root"},
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("scopes seen by probe (-want +got):\n%s", diff)
	}
}
