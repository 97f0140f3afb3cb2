package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonschema/ir"
)

func TestResolveURI(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"https://example.com/root.json", "other.json", "https://example.com/other.json"},
		{"https://example.com/a/b.json", "../c.json#/x", "https://example.com/c.json#/x"},
		{"https://example.com/root.json", "#foo", "https://example.com/root.json#foo"},
		{"https://example.com/root.json", "#", "https://example.com/root.json"},
		{"https://example.com/root.json", "https://other.org/s", "https://other.org/s"},
		{"urn:uuid:1234", "#/$defs/a", "urn:uuid:1234#/$defs/a"},
		{"", "http://json-schema.org/draft-07/schema#", "http://json-schema.org/draft-07/schema"},
	}
	for _, tc := range tests {
		got, err := ResolveURI(tc.base, tc.ref)
		if err != nil {
			t.Errorf("ResolveURI(%q, %q): %v", tc.base, tc.ref, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ResolveURI(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
		}
	}
}

func TestSplitFragment(t *testing.T) {
	tests := []struct {
		uri, base, frag string
	}{
		{"https://example.com/s", "https://example.com/s", ""},
		{"https://example.com/s#", "https://example.com/s", ""},
		{"https://example.com/s#name", "https://example.com/s", "name"},
		{"https://example.com/s#/a%20b/c", "https://example.com/s", "/a b/c"},
	}
	for _, tc := range tests {
		base, frag, err := SplitFragment(tc.uri)
		if err != nil {
			t.Fatal(err)
		}
		if base != tc.base || frag != tc.frag {
			t.Errorf("SplitFragment(%q) = %q, %q", tc.uri, base, frag)
		}
	}
	if _, _, err := SplitFragment("https://example.com/s#%zz"); err == nil {
		t.Errorf("expected error for bad escape")
	}
}

func TestAnchorNames(t *testing.T) {
	for name, want := range map[string]bool{
		"foo":     true,
		"_foo":    true,
		"a-b.c_d": true,
		"1foo":    false,
		"a:b":     false,
		"":        false,
	} {
		if got := ValidAnchor(name); got != want {
			t.Errorf("ValidAnchor(%q) = %v", name, got)
		}
	}
	for name, want := range map[string]bool{
		"foo": true,
		"a:b": true,
		"_a":  false,
	} {
		if got := ValidLegacyAnchor(name); got != want {
			t.Errorf("ValidLegacyAnchor(%q) = %v", name, got)
		}
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{BaseURI: "https://example.com/s"}
	if diff := cmp.Diff("https://example.com/s#", loc.String()); diff != "" {
		t.Error(diff)
	}
	loc = loc.Append("$defs", "a b", "x/y")
	if diff := cmp.Diff("https://example.com/s#/$defs/a%20b/x~1y", loc.String()); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff(ir.Pointer{"$defs", "a b", "x/y"}, loc.Pointer); diff != "" {
		t.Error(diff)
	}
}
