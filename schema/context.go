package schema

import (
	"errors"
	"fmt"

	"github.com/signadot/jsonschema/ir"
)

// run is the state shared by every Context of one top-level evaluation.
type run struct {
	registry *Registry
	scope    *DynamicScope
	opts     *evalOpts

	// expanding tracks (schema, instance location) pairs under evaluation
	// for recursion detection.
	expanding map[expandKey]bool
}

type expandKey struct {
	node *ir.Node
	loc  string
}

// expand marks node as being evaluated at loc. It returns false if that
// pair is already being evaluated. Use with unexpand in a defer pattern:
//
//	if !r.expand(node, loc) {
//	    return // recursion
//	}
//	defer r.unexpand(node, loc)
func (r *run) expand(node *ir.Node, loc string) bool {
	k := expandKey{node: node, loc: loc}
	if r.expanding[k] {
		return false
	}
	r.expanding[k] = true
	return true
}

func (r *run) unexpand(node *ir.Node, loc string) {
	delete(r.expanding, expandKey{node: node, loc: loc})
}

// Context is the evaluation state for one step. It is a value: the With
// and Descend methods return modified copies, so a Context held by one
// branch never observes changes made in another.
type Context struct {
	instance    *ir.Node
	instanceLoc ir.Pointer
	baseURI     string
	refURI      string
	evalPath    ir.Pointer
	schemaLoc   Location
	schema      *ir.Node
	dialect     *Dialect
	run         *run
}

func newContext(reg *Registry, opts *evalOpts, instance *ir.Node) (Context, error) {
	d, err := reg.Dialect(opts.defaultDialect)
	if err != nil {
		return Context{}, fmt.Errorf("default dialect: %w", err)
	}
	return Context{
		instance: instance,
		dialect:  d,
		run: &run{
			registry:  reg,
			scope:     &DynamicScope{},
			opts:      opts,
			expanding: map[expandKey]bool{},
		},
	}, nil
}

func (c Context) Instance() *ir.Node           { return c.instance }
func (c Context) InstanceLocation() ir.Pointer { return c.instanceLoc }
func (c Context) BaseURI() string              { return c.baseURI }
func (c Context) RefURI() string               { return c.refURI }
func (c Context) EvaluationPath() ir.Pointer   { return c.evalPath }
func (c Context) SchemaLocation() Location     { return c.schemaLoc }
func (c Context) Dialect() *Dialect            { return c.dialect }
func (c Context) Registry() *Registry          { return c.run.registry }
func (c Context) Scope() *DynamicScope         { return c.run.scope }
func (c Context) FormatAssertion() bool        { return c.run.opts.formatAssertion }
func (c Context) Formats() *FormatRegistry     { return c.run.opts.formats }

// Schema returns the schema object whose keyword is being evaluated.
func (c Context) Schema() *ir.Node { return c.schema }

// Keyword returns the name of the keyword being evaluated.
func (c Context) Keyword() string {
	if len(c.evalPath) == 0 {
		return ""
	}
	return c.evalPath[len(c.evalPath)-1]
}

// Descend extends the evaluation path and schema location by toks, for
// evaluating a subschema embedded in the current keyword value.
func (c Context) Descend(toks ...string) Context {
	c.evalPath = c.evalPath.Append(toks...)
	c.schemaLoc = c.schemaLoc.Append(toks...)
	return c
}

// WithInstance moves to a child of the current instance.
func (c Context) WithInstance(child *ir.Node, tok string) Context {
	c.instance = child
	c.instanceLoc = c.instanceLoc.Append(tok)
	return c
}

// Errorf returns a SchemaError for the current keyword.
func (c Context) Errorf(format string, args ...any) error {
	return &SchemaError{
		Keyword:  c.Keyword(),
		Location: c.schemaLoc.String(),
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (c Context) withDialect(id string) (Context, error) {
	if id == "" || normalizeDialectID(id) == c.dialect.ID {
		return c, nil
	}
	d, err := c.run.registry.Dialect(id)
	if err != nil {
		if !errors.Is(err, ErrUnknownDialect) {
			return c, err
		}
		d, err = c.run.registry.Dialect(c.run.opts.defaultDialect)
		if err != nil {
			return c, err
		}
	}
	c.dialect = d
	return c, nil
}
