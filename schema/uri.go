package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/signadot/jsonschema/ir"
)

// ResolveURI resolves ref against base following RFC 3986. An empty
// fragment is dropped.
func ResolveURI(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("bad uri reference %q: %w", ref, err)
	}
	if base == "" {
		return strings.TrimSuffix(r.String(), "#"), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("bad base uri %q: %w", base, err)
	}
	return strings.TrimSuffix(b.ResolveReference(r).String(), "#"), nil
}

// SplitFragment splits an absolute uri into its base and its decoded
// fragment.
func SplitFragment(uri string) (string, string, error) {
	base, raw, ok := strings.Cut(uri, "#")
	if !ok || raw == "" {
		return base, "", nil
	}
	frag, err := url.PathUnescape(raw)
	if err != nil {
		return "", "", fmt.Errorf("bad fragment in %q: %w", uri, err)
	}
	return base, frag, nil
}

// IsPointerFragment reports whether a decoded fragment is a JSON Pointer
// rather than an anchor name.
func IsPointerFragment(frag string) bool {
	return frag == "" || frag[0] == '/'
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

var (
	anchorRE       = regexp.MustCompile(`^[A-Za-z_][-A-Za-z0-9._]*$`)
	legacyAnchorRE = regexp.MustCompile(`^[A-Za-z][-A-Za-z0-9.:_]*$`)
)

// ValidAnchor reports whether name may be used as an $anchor or
// $dynamicAnchor.
func ValidAnchor(name string) bool {
	return anchorRE.MatchString(name)
}

// ValidLegacyAnchor reports whether name may be used as a "#name" $id.
func ValidLegacyAnchor(name string) bool {
	return legacyAnchorRE.MatchString(name)
}

// Location is an absolute schema location: a resource base uri and a JSON
// Pointer within that resource.
type Location struct {
	BaseURI string
	Pointer ir.Pointer
}

func (l Location) String() string {
	return l.BaseURI + "#" + fragmentEscape(l.Pointer.String())
}

func (l Location) Append(toks ...string) Location {
	return Location{BaseURI: l.BaseURI, Pointer: l.Pointer.Append(toks...)}
}

func fragmentEscape(p string) string {
	u := url.URL{Fragment: p}
	return u.EscapedFragment()
}
