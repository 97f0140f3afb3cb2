package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Pointer is a parsed RFC 6901 JSON Pointer. The empty pointer refers to the
// whole document.
type Pointer []string

func ParsePointer(p string) (Pointer, error) {
	if p == "" {
		return nil, nil
	}
	if p[0] != '/' {
		return nil, fmt.Errorf("%w: %q should start with '/'", ErrPointer, p)
	}
	parts := strings.Split(p[1:], "/")
	res := make(Pointer, len(parts))
	for i, part := range parts {
		tok, err := unescapeToken(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrPointer, p, err)
		}
		res[i] = tok
	}
	return res, nil
}

func unescapeToken(s string) (string, error) {
	if strings.IndexByte(s, '~') == -1 {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 == len(s) {
			return "", fmt.Errorf("dangling '~'")
		}
		switch s[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape '~%c'", s[i+1])
		}
		i++
	}
	return b.String(), nil
}

func EscapeToken(tok string) string {
	if strings.IndexAny(tok, "~/") == -1 {
		return tok
	}
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}

func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}

// Append returns a new pointer extended by toks. p is never modified, so
// pointers may be shared between sibling branches.
func (p Pointer) Append(toks ...string) Pointer {
	res := make(Pointer, len(p), len(p)+len(toks))
	copy(res, p)
	return append(res, toks...)
}

func (p Pointer) AppendIndex(i int) Pointer {
	return p.Append(strconv.Itoa(i))
}

func (p Pointer) Equal(o Pointer) bool {
	return slices.Equal(p, o)
}

// Resolve navigates from node along p.
func (p Pointer) Resolve(node *Node) (*Node, error) {
	res := node
	for i, tok := range p {
		switch res.Type {
		case ObjectType:
			v := Get(res, tok)
			if v == nil {
				return nil, fmt.Errorf("%w: %s", ErrNoSuchPath, p[:i+1])
			}
			res = v
		case ArrayType:
			idx, err := arrayIndex(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrNoSuchPath, p[:i+1], err)
			}
			if idx >= len(res.Values) {
				return nil, fmt.Errorf("%w: %s: index out of bounds %d (len %d)", ErrNoSuchPath, p[:i+1], idx, len(res.Values))
			}
			res = res.Values[idx]
		default:
			return nil, fmt.Errorf("%w: %s: cannot descend into %s", ErrNoSuchPath, p[:i+1], res.Type)
		}
	}
	return res, nil
}

func arrayIndex(tok string) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("bad array index %q", tok)
	}
	u64, err := strconv.ParseUint(tok, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("bad array index %q", tok)
	}
	return int(u64), nil
}

// PointerFrom returns the pointer leading from ancestor to y by following
// parent links, and false if ancestor is not an ancestor of y.
func (y *Node) PointerFrom(ancestor *Node) (Pointer, bool) {
	var rev []string
	x := y
	for x != ancestor {
		p := x.Parent
		if p == nil {
			return nil, false
		}
		switch p.Type {
		case ObjectType:
			rev = append(rev, x.ParentField)
		case ArrayType:
			rev = append(rev, strconv.Itoa(x.ParentIndex))
		default:
			panic("parent but not in container")
		}
		x = p
	}
	slices.Reverse(rev)
	return Pointer(rev), true
}

// Pointer returns the pointer from the document root to y.
func (y *Node) Pointer() Pointer {
	p, _ := y.PointerFrom(y.Root())
	return p
}
