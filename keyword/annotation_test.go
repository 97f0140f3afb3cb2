package keyword_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

func annotations(r *schema.Result) map[string]string {
	if len(r.Annotations) == 0 {
		return nil
	}
	res := map[string]string{}
	for k, v := range r.Annotations {
		res[k] = ir.MustJSON(v)
	}
	return res
}

func TestAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		inst   string
		want   map[string]string
	}{
		{
			name:   "metadata",
			schema: `{"title": "T", "description": "D", "default": {"a": 1}, "deprecated": true, "readOnly": false, "writeOnly": true, "examples": [1]}`,
			inst:   `1`,
			want: map[string]string{
				"title":       `"T"`,
				"description": `"D"`,
				"default":     `{"a":1}`,
				"deprecated":  `true`,
				"readOnly":    `false`,
				"writeOnly":   `true`,
				"examples":    `[1]`,
			},
		},
		{
			name:   "properties",
			schema: `{"properties": {"a": true, "b": true}, "patternProperties": {"^c": true}, "additionalProperties": true}`,
			inst:   `{"b": 1, "c": 2, "d": 3}`,
			want: map[string]string{
				"properties":           `["b"]`,
				"patternProperties":    `["c"]`,
				"additionalProperties": `["d"]`,
			},
		},
		{
			name:   "prefix covers part",
			schema: `{"prefixItems": [true, true]}`,
			inst:   `[1, 2, 3]`,
			want:   map[string]string{"prefixItems": `1`},
		},
		{
			name:   "prefix covers all",
			schema: `{"prefixItems": [true, true], "items": true}`,
			inst:   `[1]`,
			want:   map[string]string{"prefixItems": `true`},
		},
		{
			name:   "items",
			schema: `{"prefixItems": [true], "items": true}`,
			inst:   `[1, 2]`,
			want:   map[string]string{"prefixItems": `0`, "items": `true`},
		},
		{
			name:   "contains",
			schema: `{"contains": {"type": "string"}}`,
			inst:   `[1, "a", 2, "b"]`,
			want:   map[string]string{"contains": `[1,3]`},
		},
		{
			name:   "format annotates",
			schema: `{"format": "whatever"}`,
			inst:   `"x"`,
			want:   map[string]string{"format": `"whatever"`},
		},
		{
			name:   "content",
			schema: `{"contentEncoding": "base64", "contentMediaType": "application/json", "contentSchema": {"type": "object"}}`,
			inst:   `"e30="`,
			want: map[string]string{
				"contentEncoding":  `"base64"`,
				"contentMediaType": `"application/json"`,
				"contentSchema":    `{"type":"object"}`,
			},
		},
		{
			name:   "invalid node drops annotations",
			schema: `{"title": "T", "type": "string"}`,
			inst:   `1`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := evaluate(t, tc.schema, tc.inst)
			if diff := cmp.Diff(tc.want, annotations(res)); diff != "" {
				t.Errorf("annotations (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFailedKeywordAnnotationDropped(t *testing.T) {
	res := evaluate(t, `{"anyOf": [{"title": "a", "type": "string"}, {"title": "b"}]}`, `1`)
	if !res.Valid {
		t.Fatalf("expected valid: %s", ir.MustJSON(res.ToIR()))
	}
	var titles []string
	res.Walk(func(r *schema.Result) bool {
		if a := r.Annotations["title"]; a != nil {
			titles = append(titles, a.String)
		}
		return true
	})
	if diff := cmp.Diff([]string{"b"}, titles); diff != "" {
		t.Errorf("titles (-want +got):\n%s", diff)
	}
}

func TestUnknownKeywordAnnotations(t *testing.T) {
	sch := `{"x-extra": {"a": 1}, "type": "object"}`
	res := evaluate(t, sch, `{}`)
	if res.Annotations != nil {
		t.Errorf("unexpected annotations %v", annotations(res))
	}
	res = evaluate(t, sch, `{}`, schema.WithUnknownKeywordAnnotations(true))
	want := map[string]string{"x-extra": `{"a":1}`}
	if diff := cmp.Diff(want, annotations(res)); diff != "" {
		t.Errorf("annotations (-want +got):\n%s", diff)
	}
}
