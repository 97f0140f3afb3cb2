package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonschema/format"
	"github.com/signadot/jsonschema/ir"
)

func sample() *ir.Node {
	n, _ := ir.FromNumber("1.50")
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "valid", Val: ir.FromBool(false)},
		{Key: "errors", Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: "type", Val: ir.FromString("expected string")},
		})},
		{Key: "num", Val: n},
		{Key: "empty", Val: ir.FromSlice(nil)},
	})
}

func TestEncodeJSON(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(sample(), buf); err != nil {
		t.Fatal(err)
	}
	want := `{
  "valid": false,
  "errors": {
    "type": "expected string"
  },
  "num": 1.50,
  "empty": []
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeCompact(t *testing.T) {
	got := MustString(sample(), Indent(0))
	want := `{"valid":false,"errors":{"type":"expected string"},"num":1.50,"empty":[]}`
	if got != want {
		t.Errorf("got %s", got)
	}
}

func TestEncodeYAML(t *testing.T) {
	got := MustString(sample(), EncodeFormat(format.YAMLFormat))
	for _, want := range []string{"valid: false", "type: expected string", "num: 1.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if strings.Index(got, "valid") > strings.Index(got, "errors") {
		t.Errorf("field order not preserved:\n%s", got)
	}
}

func TestColorsDefault(t *testing.T) {
	c := &Colors{Default: colorDefault}
	if got := c.Color(ir.StringType, ValueColor, "x"); got != "x" {
		t.Errorf("got %q", got)
	}
	pre, suf := c.escapes(ir.StringType, ValueColor)
	if pre != "" || suf != "" {
		t.Errorf("got %q %q", pre, suf)
	}
}
