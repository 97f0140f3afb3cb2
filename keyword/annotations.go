package keyword

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// evaluated gathers what the adjacent keywords of a schema object, and the
// valid subschemas they applied at the same instance location, have
// already evaluated.
type evaluated struct {
	props    map[string]bool
	allItems bool
	maxItem  int
	contains map[int]bool

	withContains bool
	loc          ir.Pointer
}

func collectEvaluated(ctx schema.Context, siblings schema.Siblings, withContains bool) *evaluated {
	e := &evaluated{
		props:        map[string]bool{},
		maxItem:      -1,
		contains:     map[int]bool{},
		withContains: withContains,
		loc:          ctx.InstanceLocation(),
	}
	for kw, ev := range siblings {
		if !ev.Valid {
			continue
		}
		e.add(kw, ev.Annotation)
		for _, c := range ev.Children {
			e.walk(c)
		}
	}
	return e
}

func (e *evaluated) walk(r *schema.Result) {
	if !r.Valid || !r.InstanceLocation.Equal(e.loc) {
		return
	}
	for kw, a := range r.Annotations {
		e.add(kw, a)
	}
	for _, d := range r.Details {
		e.walk(d)
	}
}

func (e *evaluated) add(kw string, a *ir.Node) {
	if a == nil {
		return
	}
	switch kw {
	case "properties", "patternProperties", "additionalProperties", "unevaluatedProperties":
		for _, name := range a.Values {
			e.props[name.String] = true
		}
	case "prefixItems", "items", "additionalItems", "unevaluatedItems":
		if a.Type == ir.BoolType {
			e.allItems = e.allItems || a.Bool
			return
		}
		if n, ok := a.Int(); ok && n > e.maxItem {
			e.maxItem = n
		}
	case "contains":
		if !e.withContains {
			return
		}
		for _, x := range a.Values {
			if n, ok := x.Int(); ok {
				e.contains[n] = true
			}
		}
	}
}

func (e *evaluated) item(i int) bool {
	return e.allItems || i <= e.maxItem || e.contains[i]
}
