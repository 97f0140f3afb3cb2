package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
)

// Vocabulary is a named bundle of keyword handlers.
type Vocabulary struct {
	ID         string
	MetaSchema string
	Handlers   []Handler
}

// DialectSpec describes a well known dialect by the vocabularies it enables.
type DialectSpec struct {
	ID                   string
	Vocabularies         []string
	LegacyAnchors        bool
	RefOverridesSiblings bool
}

// VocabularyRegistry holds the known vocabularies and dialects and caches
// the resolved handler set per meta-schema id.
type VocabularyRegistry struct {
	mu       sync.RWMutex
	vocabs   map[string]*Vocabulary
	specs    map[string]*DialectSpec
	byName   map[string][]Handler
	dialects map[string]*Dialect
}

func NewVocabularyRegistry() *VocabularyRegistry {
	return &VocabularyRegistry{
		vocabs:   map[string]*Vocabulary{},
		specs:    map[string]*DialectSpec{},
		byName:   map[string][]Handler{},
		dialects: map[string]*Dialect{},
	}
}

func (r *VocabularyRegistry) RegisterVocabulary(v *Vocabulary) error {
	if v.ID == "" {
		return fmt.Errorf("vocabulary must have an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vocabs[v.ID] = v
	for _, h := range v.Handlers {
		if !slices.Contains(r.byName[h.Name()], h) {
			r.byName[h.Name()] = append(r.byName[h.Name()], h)
		}
	}
	clear(r.dialects)
	return nil
}

func (r *VocabularyRegistry) RegisterDialect(spec *DialectSpec) error {
	id := normalizeDialectID(spec.ID)
	if id == "" {
		return fmt.Errorf("dialect must have an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, vid := range spec.Vocabularies {
		if r.vocabs[vid] == nil {
			return fmt.Errorf("%w: dialect %s uses %s", ErrUnknownVocabulary, id, vid)
		}
	}
	r.specs[id] = spec
	delete(r.dialects, id)
	return nil
}

func (r *VocabularyRegistry) Vocabulary(id string) (*Vocabulary, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vocabs[id]
	return v, ok
}

func (r *VocabularyRegistry) Vocabularies() []*Vocabulary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(r.vocabs))
	res := make([]*Vocabulary, len(ids))
	for i, id := range ids {
		res[i] = r.vocabs[id]
	}
	return res
}

func (r *VocabularyRegistry) DialectSpecs() []*DialectSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := slices.Sorted(maps.Keys(r.specs))
	res := make([]*DialectSpec, len(ids))
	for i, id := range ids {
		res[i] = r.specs[id]
	}
	return res
}

// Handlers returns every known handler for the keyword name, regardless of
// dialect.
func (r *VocabularyRegistry) Handlers(name string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Dialect resolves a meta-schema id to its handler set. Well known dialects
// come first, then meta-schema documents found in docs. An id that cannot
// be resolved gives ErrUnknownDialect.
func (r *VocabularyRegistry) Dialect(id string, docs *Registry) (*Dialect, error) {
	return r.dialect(normalizeDialectID(id), docs, map[string]bool{})
}

func (r *VocabularyRegistry) dialect(id string, docs *Registry, seen map[string]bool) (*Dialect, error) {
	r.mu.RLock()
	d := r.dialects[id]
	spec := r.specs[id]
	r.mu.RUnlock()
	if d != nil {
		return d, nil
	}
	var err error
	switch {
	case spec != nil:
		d, err = r.fromSpec(spec)
	case docs != nil && !seen[id]:
		seen[id] = true
		d, err = r.fromMetaSchema(id, docs, seen)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownDialect, id)
	}
	if err != nil {
		return nil, err
	}
	if debug.Dialect() {
		debug.Logf("dialect %s: %d keywords %v\n", id, len(d.handlers), d.Vocabularies)
	}
	r.mu.Lock()
	r.dialects[id] = d
	r.mu.Unlock()
	return d, nil
}

func (r *VocabularyRegistry) fromSpec(spec *DialectSpec) (*Dialect, error) {
	d := newDialect(spec.ID)
	d.LegacyAnchors = spec.LegacyAnchors
	d.RefOverridesSiblings = spec.RefOverridesSiblings
	for _, vid := range spec.Vocabularies {
		v, ok := r.Vocabulary(vid)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVocabulary, vid)
		}
		d.add(v)
	}
	return d, nil
}

func (r *VocabularyRegistry) fromMetaSchema(id string, docs *Registry, seen map[string]bool) (*Dialect, error) {
	reg, ok := docs.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, id)
	}
	var parent *Dialect
	if reg.Dialect != "" && normalizeDialectID(reg.Dialect) != id {
		p, err := r.dialect(normalizeDialectID(reg.Dialect), docs, seen)
		if err != nil {
			return nil, fmt.Errorf("meta-schema %s: %w", id, err)
		}
		parent = p
	}
	vocabs := ir.Get(reg.Root, "$vocabulary")
	if vocabs == nil {
		if parent == nil {
			return nil, fmt.Errorf("%w: %s declares neither $schema nor $vocabulary", ErrUnknownDialect, id)
		}
		d := parent.clone()
		d.ID = id
		return d, nil
	}
	if vocabs.Type != ir.ObjectType {
		return nil, &SchemaError{Keyword: "$vocabulary", Location: id, Msg: "must be an object"}
	}
	d := newDialect(id)
	if parent != nil {
		d.LegacyAnchors = parent.LegacyAnchors
		d.RefOverridesSiblings = parent.RefOverridesSiblings
	}
	for i, f := range vocabs.Fields {
		req := vocabs.Values[i]
		if req.Type != ir.BoolType {
			return nil, &SchemaError{Keyword: "$vocabulary", Location: id, Msg: fmt.Sprintf("value for %s must be a boolean", f.String)}
		}
		v, ok := r.Vocabulary(f.String)
		if !ok {
			if req.Bool {
				return nil, fmt.Errorf("%w: %s (required by %s)", ErrUnknownVocabulary, f.String, id)
			}
			continue
		}
		d.add(v)
	}
	return d, nil
}

func normalizeDialectID(id string) string {
	return strings.TrimSuffix(id, "#")
}
