package schema

import (
	"fmt"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
)

// Evaluate evaluates the schema node against the instance of c.
//
// Every keyword present in the dialect is evaluated, in dependency order,
// even after one has failed: later keywords may need the annotations of
// earlier ones and the result reports all of them.
func (c Context) Evaluate(node *ir.Node) (*Result, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil schema at %s", ErrInvalidSchema, c.schemaLoc)
	}
	var err error
	if loc, ok := c.run.registry.Location(node); ok {
		c.schemaLoc = loc
		if loc.BaseURI != c.baseURI {
			c.baseURI = loc.BaseURI
			defer c.run.scope.Push(loc.BaseURI)()
			if reg, ok := c.run.registry.Lookup(loc.BaseURI); ok {
				if c, err = c.withDialect(reg.Dialect); err != nil {
					return nil, err
				}
			}
		}
	}
	res := &Result{
		SchemaLocation:   c.schemaLoc.String(),
		InstanceLocation: c.instanceLoc,
		EvaluationPath:   c.evalPath,
	}
	switch node.Type {
	case ir.BoolType:
		res.Valid = node.Bool
		if !node.Bool {
			res.Errors = map[string]string{"": "false schema never validates"}
		}
		return res, nil
	case ir.ObjectType:
	default:
		return nil, c.Errorf("schema must be an object or boolean, got %s", node.Type)
	}
	if s, ok := ir.GetString(node, "$schema"); ok {
		if c, err = c.withDialect(s); err != nil {
			return nil, err
		}
	}
	instLoc := c.instanceLoc.String()
	if !c.run.expand(node, instLoc) {
		return nil, fmt.Errorf("%w: %s re-entered at instance location %q", ErrInfiniteRecursion, c.schemaLoc, instLoc)
	}
	defer c.run.unexpand(node, instLoc)
	c.schema = node

	order, err := c.keywordOrder(node)
	if err != nil {
		return nil, err
	}
	if debug.Eval() {
		debug.Logf("eval %s at %s path %s keywords %v\n", c.schemaLoc, c.instanceLoc, c.evalPath, order)
	}
	valid := true
	siblings := Siblings{}
	annotations := map[string]*ir.Node{}
	errs := map[string]string{}
	for _, kw := range order {
		h, _ := c.dialect.Handler(kw)
		ev, err := h.Handle(ir.Get(node, kw), c.keyword(kw), siblings)
		if err != nil {
			return nil, err
		}
		siblings[kw] = ev
		res.Details = append(res.Details, ev.Children...)
		if !ev.Valid {
			valid = false
			msg := ev.Error
			if msg == "" {
				msg = kw + " failed"
			}
			errs[kw] = msg
			continue
		}
		if ev.Annotation != nil {
			annotations[kw] = ev.Annotation
		}
	}
	if c.run.opts.unknownAnnotations {
		for i, f := range node.Fields {
			if !c.dialect.Has(f.String) {
				annotations[f.String] = node.Values[i]
			}
		}
	}
	res.Valid = valid
	if valid && len(annotations) != 0 {
		res.Annotations = annotations
	}
	if len(errs) != 0 {
		res.Errors = errs
	}
	if debug.Eval() && !valid {
		debug.Logf("invalid %s at %s: %v\n", c.schemaLoc, c.instanceLoc, errs)
	}
	return res, nil
}

func (c Context) keyword(kw string) Context {
	c.evalPath = c.evalPath.Append(kw)
	c.schemaLoc = c.schemaLoc.Append(kw)
	return c
}

// keywordOrder returns the keywords of node known to the dialect, ordered
// so that dependencies come first and document order breaks ties.
func (c Context) keywordOrder(node *ir.Node) ([]string, error) {
	if c.dialect.RefOverridesSiblings && ir.Has(node, "$ref") && c.dialect.Has("$ref") {
		return []string{"$ref"}, nil
	}
	present := map[string]bool{}
	names := make([]string, 0, len(node.Fields))
	for _, f := range node.Fields {
		if c.dialect.Has(f.String) {
			present[f.String] = true
			names = append(names, f.String)
		}
	}
	return orderKeywords(names, present, c.dialect)
}

func orderKeywords(names []string, present map[string]bool, d *Dialect) ([]string, error) {
	const (
		visiting = iota + 1
		done
	)
	state := make(map[string]int, len(names))
	order := make([]string, 0, len(names))
	var visit func(kw string) error
	visit = func(kw string) error {
		switch state[kw] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: %s", ErrKeywordCycle, kw)
		}
		state[kw] = visiting
		h, _ := d.Handler(kw)
		for _, dep := range h.Dependencies() {
			if !present[dep] {
				continue
			}
			if err := visit(dep); err != nil {
				return fmt.Errorf("%s: %w", kw, err)
			}
		}
		state[kw] = done
		order = append(order, kw)
		return nil
	}
	for _, kw := range names {
		if err := visit(kw); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Evaluate evaluates instance against the schema at uri, which may carry a
// JSON Pointer or anchor fragment.
func (r *Registry) Evaluate(uri string, instance *ir.Node, opts ...EvalOption) (*Result, error) {
	abs, err := ResolveURI("", uri)
	if err != nil {
		return nil, &RefResolutionError{Kind: RefStatic, Ref: uri, Err: err}
	}
	base, frag, err := SplitFragment(abs)
	if err != nil {
		return nil, &RefResolutionError{Kind: RefStatic, Ref: uri, Err: err}
	}
	node, err := lookupFragment(r, base, frag, true)
	if err != nil {
		return nil, err
	}
	return r.evaluateNode(node, instance, opts)
}

// EvaluateSchema evaluates instance against doc. A document that is not
// yet registered is registered into a private child registry for the
// duration of the call.
func (r *Registry) EvaluateSchema(doc, instance *ir.Node, opts ...EvalOption) (*Result, error) {
	if _, ok := r.indexed(doc); ok {
		return r.evaluateNode(doc, instance, opts)
	}
	child := r.Child()
	if _, err := child.Add(doc); err != nil {
		return nil, err
	}
	return child.evaluateNode(doc, instance, opts)
}

func (r *Registry) evaluateNode(node, instance *ir.Node, opts []EvalOption) (*Result, error) {
	ctx, err := newContext(r, newEvalOpts(opts), instance)
	if err != nil {
		return nil, err
	}
	return ctx.Evaluate(node)
}
