package debug

import (
	"bytes"
	"testing"

	"github.com/signadot/jsonschema/ir"
)

func TestLogf(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	old := out
	out = buf
	defer func() { out = old }()

	node := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	Logf("node %v at %v\n", node, ir.Pointer{"x", "y"})
	want := "node {\"a\":1} at \"/x/y\"\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("JSONSCHEMA_TEST_FLAG", "true")
	if !boolEnv("JSONSCHEMA_TEST_FLAG") {
		t.Error("expected true")
	}
	t.Setenv("JSONSCHEMA_TEST_FLAG", "nope")
	if boolEnv("JSONSCHEMA_TEST_FLAG") {
		t.Error("expected false")
	}
}
