package schema

import (
	"maps"
	"slices"
)

// Meta-schema ids of the well known dialects.
const (
	Draft06        = "http://json-schema.org/draft-06/schema"
	Draft07        = "http://json-schema.org/draft-07/schema"
	Draft2019      = "https://json-schema.org/draft/2019-09/schema"
	Draft2020      = "https://json-schema.org/draft/2020-12/schema"
	DefaultDialect = Draft2020
)

// Dialect is the resolved handler set for one meta-schema id.
type Dialect struct {
	ID           string
	Vocabularies []string
	// LegacyAnchors allows "#name" $id values to be referenced.
	LegacyAnchors bool
	// RefOverridesSiblings makes $ref hide every sibling keyword.
	RefOverridesSiblings bool

	handlers map[string]Handler
}

func newDialect(id string) *Dialect {
	return &Dialect{ID: id, handlers: map[string]Handler{}}
}

// add merges the handlers of v, replacing handlers of the same name added
// earlier.
func (d *Dialect) add(v *Vocabulary) {
	d.Vocabularies = append(d.Vocabularies, v.ID)
	for _, h := range v.Handlers {
		d.handlers[h.Name()] = h
	}
}

func (d *Dialect) clone() *Dialect {
	res := *d
	res.Vocabularies = slices.Clone(d.Vocabularies)
	res.handlers = maps.Clone(d.handlers)
	return &res
}

func (d *Dialect) Handler(name string) (Handler, bool) {
	h, ok := d.handlers[name]
	return h, ok
}

func (d *Dialect) Has(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

func (d *Dialect) HasVocabulary(id string) bool {
	return slices.Contains(d.Vocabularies, id)
}

// Keywords returns the keyword names of the dialect, sorted.
func (d *Dialect) Keywords() []string {
	return slices.Sorted(maps.Keys(d.handlers))
}
