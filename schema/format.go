package schema

import (
	"maps"
	"slices"
	"sync"

	"github.com/signadot/jsonschema/ir"
)

// Format checks the "format" of an instance. The message explains a
// failure.
type Format interface {
	Validate(*ir.Node) (bool, string)
}

type FormatFunc func(*ir.Node) (bool, string)

func (f FormatFunc) Validate(n *ir.Node) (bool, string) {
	return f(n)
}

type FormatRegistry struct {
	mu sync.RWMutex
	m  map[string]Format
}

func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{m: map[string]Format{}}
}

func (r *FormatRegistry) Register(name string, f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[name] = f
}

func (r *FormatRegistry) Lookup(name string) (Format, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.m[name]
	return f, ok
}

func (r *FormatRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.m))
}
