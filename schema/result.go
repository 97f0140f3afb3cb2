package schema

import (
	"maps"
	"slices"

	"github.com/signadot/jsonschema/ir"
)

// Result is one node of the evaluation output tree.
type Result struct {
	Valid            bool
	SchemaLocation   string
	InstanceLocation ir.Pointer
	EvaluationPath   ir.Pointer
	Annotations      map[string]*ir.Node
	Errors           map[string]string
	Details          []*Result
}

// ToIR renders the hierarchical output shape.
func (r *Result) ToIR() *ir.Node {
	kvs := r.header()
	if len(r.Annotations) != 0 {
		kvs = append(kvs, ir.KeyVal{Key: "annotations", Val: annotationsIR(r.Annotations)})
	}
	if len(r.Errors) != 0 {
		kvs = append(kvs, ir.KeyVal{Key: "errors", Val: errorsIR(r.Errors)})
	}
	if len(r.Details) != 0 {
		ds := make([]*ir.Node, len(r.Details))
		for i, d := range r.Details {
			ds[i] = d.ToIR()
		}
		kvs = append(kvs, ir.KeyVal{Key: "details", Val: ir.FromSlice(ds)})
	}
	return ir.FromKeyVals(kvs)
}

func (r *Result) MarshalJSON() ([]byte, error) {
	return r.ToIR().MarshalJSON()
}

// Flag renders only the overall validity.
func (r *Result) Flag() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{{Key: "valid", Val: ir.FromBool(r.Valid)}})
}

// Basic renders a flat list of the nodes that carry errors, or annotations
// when the instance is valid.
func (r *Result) Basic() *ir.Node {
	var units []*ir.Node
	r.Walk(func(x *Result) bool {
		switch {
		case !r.Valid && len(x.Errors) != 0:
			kvs := x.header()
			kvs = append(kvs, ir.KeyVal{Key: "errors", Val: errorsIR(x.Errors)})
			units = append(units, ir.FromKeyVals(kvs))
		case r.Valid && len(x.Annotations) != 0:
			kvs := x.header()
			kvs = append(kvs, ir.KeyVal{Key: "annotations", Val: annotationsIR(x.Annotations)})
			units = append(units, ir.FromKeyVals(kvs))
		}
		return true
	})
	key := "details"
	if !r.Valid {
		key = "errors"
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "valid", Val: ir.FromBool(r.Valid)},
		{Key: key, Val: ir.FromSlice(units)},
	})
}

// Walk visits r and its details depth first, descending into a node's
// details only when f returns true.
func (r *Result) Walk(f func(*Result) bool) {
	if !f(r) {
		return
	}
	for _, d := range r.Details {
		d.Walk(f)
	}
}

func (r *Result) header() []ir.KeyVal {
	return []ir.KeyVal{
		{Key: "valid", Val: ir.FromBool(r.Valid)},
		{Key: "schemaLocation", Val: ir.FromString(r.SchemaLocation)},
		{Key: "instanceLocation", Val: ir.FromString(r.InstanceLocation.String())},
		{Key: "evaluationPath", Val: ir.FromString(r.EvaluationPath.String())},
	}
}

func annotationsIR(m map[string]*ir.Node) *ir.Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]ir.KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = ir.KeyVal{Key: k, Val: m[k].Clone()}
	}
	return ir.FromKeyVals(kvs)
}

func errorsIR(m map[string]string) *ir.Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]ir.KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = ir.KeyVal{Key: k, Val: ir.FromString(m[k])}
	}
	return ir.FromKeyVals(kvs)
}
