package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDynamicScope(t *testing.T) {
	s := &DynamicScope{}
	popA := s.Push("a")
	popB := s.Push("b")
	if diff := cmp.Diff([]string{"a", "b"}, s.Entries()); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	in, ok := s.Innermost()
	if !ok || in != "b" {
		t.Errorf("innermost %q %v", in, ok)
	}
	entries := s.Entries()
	entries[0] = "mutated"
	if s.Entries()[0] != "a" {
		t.Errorf("Entries must return a copy")
	}
	popB()
	popA()
	if s.Len() != 0 {
		t.Errorf("len %d after pops", s.Len())
	}
	if _, ok := s.Innermost(); ok {
		t.Errorf("innermost of empty scope")
	}
}

func TestDynamicScopeDeferred(t *testing.T) {
	s := &DynamicScope{}
	var depths []int
	var enter func(n int)
	enter = func(n int) {
		defer s.Push("r")()
		depths = append(depths, s.Len())
		if n > 0 {
			enter(n - 1)
		}
	}
	enter(3)
	if diff := cmp.Diff([]int{1, 2, 3, 4}, depths); diff != "" {
		t.Errorf("depths (-want +got):\n%s", diff)
	}
	if s.Len() != 0 {
		t.Errorf("scope not balanced: %v", s.Entries())
	}
}
