package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePointer(t *testing.T) {
	tests := []struct {
		in   string
		want Pointer
		err  bool
	}{
		{in: "", want: nil},
		{in: "/", want: Pointer{""}},
		{in: "/a/b", want: Pointer{"a", "b"}},
		{in: "/a~1b/m~0n", want: Pointer{"a/b", "m~n"}},
		{in: "/~01", want: Pointer{"~1"}},
		{in: "a", err: true},
		{in: "/a~", err: true},
		{in: "/a~2", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePointer(tt.in)
			if tt.err {
				if !errors.Is(err, ErrPointer) {
					t.Fatalf("expected ErrPointer, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if got.String() != tt.in {
				t.Errorf("round trip: got %q want %q", got.String(), tt.in)
			}
		})
	}
}

func TestPointerResolve(t *testing.T) {
	doc := FromKeyVals([]KeyVal{
		{Key: "a/b", Val: FromInt(1)},
		{Key: "list", Val: FromSlice([]*Node{FromString("x"), FromString("y")})},
		{Key: "", Val: FromBool(true)},
	})
	tests := []struct {
		ptr  string
		want *Node
		err  error
	}{
		{ptr: "", want: doc},
		{ptr: "/a~1b", want: FromInt(1)},
		{ptr: "/list/1", want: FromString("y")},
		{ptr: "/", want: FromBool(true)},
		{ptr: "/list/2", err: ErrNoSuchPath},
		{ptr: "/list/01", err: ErrNoSuchPath},
		{ptr: "/list/-", err: ErrNoSuchPath},
		{ptr: "/missing", err: ErrNoSuchPath},
		{ptr: "/a~1b/x", err: ErrNoSuchPath},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			p, err := ParsePointer(tt.ptr)
			if err != nil {
				t.Fatal(err)
			}
			got, err := p.Resolve(doc)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("got error %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("got %s want %s", MustJSON(got), MustJSON(tt.want))
			}
		})
	}
}

func TestNodePointer(t *testing.T) {
	leaf := FromString("leaf")
	doc := FromKeyVals([]KeyVal{
		{Key: "defs", Val: FromKeyVals([]KeyVal{
			{Key: "x/y", Val: FromSlice([]*Node{Null(), leaf})},
		})},
	})
	if diff := cmp.Diff(Pointer{"defs", "x/y", "1"}, leaf.Pointer()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := leaf.Pointer().String(); got != "/defs/x~1y/1" {
		t.Errorf("got %q", got)
	}
	defs := Get(doc, "defs")
	p, ok := leaf.PointerFrom(defs)
	if !ok || p.String() != "/x~1y/1" {
		t.Errorf("PointerFrom: got %q %v", p, ok)
	}
	if _, ok := defs.PointerFrom(leaf); ok {
		t.Error("leaf is not an ancestor of defs")
	}
	if len(doc.Pointer()) != 0 {
		t.Error("root pointer should be empty")
	}
}

func TestPointerAppendDoesNotAlias(t *testing.T) {
	base := make(Pointer, 1, 4)
	base[0] = "a"
	x := base.Append("x")
	y := base.Append("y")
	if x.String() != "/a/x" || y.String() != "/a/y" {
		t.Errorf("got %s and %s", x, y)
	}
}
