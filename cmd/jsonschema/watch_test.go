package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineDiff(t *testing.T) {
	from := "a.json: valid\nb.json: valid\nc.json: valid\n"
	to := "a.json: valid\nb.json: invalid\nc.json: valid\nd.json: valid\n"
	want := "- b.json: valid\n+ b.json: invalid\n+ d.json: valid\n"
	if diff := cmp.Diff(want, lineDiff(from, to)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := lineDiff(from, from); got != "" {
		t.Errorf("identical outputs diff to %q", got)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.json", "sub/b.json", "sub/deep/c.yaml", "sub/d.txt"} {
		p := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := expandInputs([]string{
		filepath.Join(dir, "**", "*.json"),
		filepath.Join(dir, "sub", "deep", "c.yaml"),
		filepath.Join(dir, "missing.json"),
		"-",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "sub", "b.json"),
		filepath.Join(dir, "sub", "deep", "c.yaml"),
		filepath.Join(dir, "missing.json"),
		"-",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
