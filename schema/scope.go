package schema

import "slices"

// DynamicScope is the stack of schema resource base uris entered during one
// evaluation run, outermost first.
type DynamicScope struct {
	uris []string
}

// Push enters uri and returns the function that leaves it. The returned
// function restores the stack to its depth before Push, so it is meant to
// be deferred:
//
//	defer scope.Push(uri)()
func (s *DynamicScope) Push(uri string) func() {
	n := len(s.uris)
	s.uris = append(s.uris, uri)
	return func() {
		s.uris = s.uris[:n]
	}
}

// Entries returns a copy of the scope, outermost first.
func (s *DynamicScope) Entries() []string {
	return slices.Clone(s.uris)
}

func (s *DynamicScope) Len() int {
	return len(s.uris)
}

// Innermost returns the most recently entered uri.
func (s *DynamicScope) Innermost() (string, bool) {
	if len(s.uris) == 0 {
		return "", false
	}
	return s.uris[len(s.uris)-1], true
}
