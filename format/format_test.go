package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range AllFormats() {
		got, err := ParseFormat(f.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != f {
			t.Errorf("got %s want %s", got, f)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromFilename(t *testing.T) {
	tests := map[string]Format{
		"a.json":      JSONFormat,
		"dir/a.YAML":  YAMLFormat,
		"a.yml":       YAMLFormat,
		"no-ext":      JSONFormat,
		"x.yaml.json": JSONFormat,
	}
	for name, want := range tests {
		if got := FromFilename(name); got != want {
			t.Errorf("%s: got %s want %s", name, got, want)
		}
	}
}
