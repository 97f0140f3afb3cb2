package keyword

import (
	"fmt"
	"slices"

	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

func namesNode(names []string) *ir.Node {
	if names == nil {
		names = []string{}
	}
	return ir.FromStrings(names)
}

func propertyFailure(failed []string) string {
	return fmt.Sprintf("properties %q do not match", failed)
}

type propertiesKeyword struct{ keyword }

func (propertiesKeyword) Subschemas(v *ir.Node) []*ir.Node { return values(v) }

func (propertiesKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchemaMap(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ObjectType {
		return schema.Pass(), nil
	}
	ev := &schema.KeywordEvaluation{Valid: true}
	var evaluated, failed []string
	for i, f := range inst.Fields {
		sub := ir.Get(v, f.String)
		if sub == nil {
			continue
		}
		r, err := ctx.Descend(f.String).WithInstance(inst.Values[i], f.String).Evaluate(sub)
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		evaluated = append(evaluated, f.String)
		if !r.Valid {
			failed = append(failed, f.String)
		}
	}
	ev.Annotation = namesNode(evaluated)
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = propertyFailure(failed)
	}
	return ev, nil
}

type patternPropertiesKeyword struct{ keyword }

func (patternPropertiesKeyword) Subschemas(v *ir.Node) []*ir.Node { return values(v) }

func (patternPropertiesKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchemaMap(ctx, v); err != nil {
		return nil, err
	}
	for _, f := range v.Fields {
		if _, err := compilePattern(f.String); err != nil {
			return nil, ctx.Errorf("%v", err)
		}
	}
	inst := ctx.Instance()
	if inst.Type != ir.ObjectType {
		return schema.Pass(), nil
	}
	ev := &schema.KeywordEvaluation{Valid: true}
	var evaluated, failed []string
	for i, name := range inst.Fields {
		matched := false
		for j, pat := range v.Fields {
			re, _ := compilePattern(pat.String)
			if !re.MatchString(name.String) {
				continue
			}
			matched = true
			r, err := ctx.Descend(pat.String).WithInstance(inst.Values[i], name.String).Evaluate(v.Values[j])
			if err != nil {
				return nil, err
			}
			ev.Children = append(ev.Children, r)
			if !r.Valid && !slices.Contains(failed, name.String) {
				failed = append(failed, name.String)
			}
		}
		if matched {
			evaluated = append(evaluated, name.String)
		}
	}
	ev.Annotation = namesNode(evaluated)
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = propertyFailure(failed)
	}
	return ev, nil
}

// additionalPropertiesKeyword applies to the properties that neither
// properties nor patternProperties of the same schema object name.
type additionalPropertiesKeyword struct{ keyword }

func (additionalPropertiesKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (additionalPropertiesKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ObjectType {
		return schema.Pass(), nil
	}
	props := ir.Get(ctx.Schema(), "properties")
	patterns := ir.Get(ctx.Schema(), "patternProperties")
	ev := &schema.KeywordEvaluation{Valid: true}
	var evaluated, failed []string
	for i, name := range inst.Fields {
		if ir.Has(props, name.String) || matchesAnyPattern(patterns, name.String) {
			continue
		}
		r, err := ctx.WithInstance(inst.Values[i], name.String).Evaluate(v)
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		evaluated = append(evaluated, name.String)
		if !r.Valid {
			failed = append(failed, name.String)
		}
	}
	ev.Annotation = namesNode(evaluated)
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = fmt.Sprintf("additional properties %q do not match", failed)
	}
	return ev, nil
}

func matchesAnyPattern(patterns *ir.Node, name string) bool {
	if patterns == nil || patterns.Type != ir.ObjectType {
		return false
	}
	for _, p := range patterns.Fields {
		re, err := compilePattern(p.String)
		if err == nil && re.MatchString(name) {
			return true
		}
	}
	return false
}

type propertyNamesKeyword struct{ keyword }

func (propertyNamesKeyword) Subschemas(v *ir.Node) []*ir.Node { return one(v) }

func (propertyNamesKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchema(ctx, v); err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ObjectType {
		return schema.Pass(), nil
	}
	ev := &schema.KeywordEvaluation{Valid: true}
	var failed []string
	for _, name := range inst.Fields {
		r, err := ctx.WithInstance(ir.FromString(name.String), name.String).Evaluate(v)
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		if !r.Valid {
			failed = append(failed, name.String)
		}
	}
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = fmt.Sprintf("property names %q do not match", failed)
	}
	return ev, nil
}

type dependentSchemasKeyword struct{ keyword }

func (dependentSchemasKeyword) Subschemas(v *ir.Node) []*ir.Node { return values(v) }

func (dependentSchemasKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if err := checkSchemaMap(ctx, v); err != nil {
		return nil, err
	}
	return applyDependentSchemas(v, ctx)
}

func applyDependentSchemas(v *ir.Node, ctx schema.Context) (*schema.KeywordEvaluation, error) {
	inst := ctx.Instance()
	ev := &schema.KeywordEvaluation{Valid: true}
	if inst.Type != ir.ObjectType {
		return ev, nil
	}
	var failed []string
	for i, f := range v.Fields {
		if !ir.Has(inst, f.String) || !isSchema(v.Values[i]) {
			continue
		}
		r, err := ctx.Descend(f.String).Evaluate(v.Values[i])
		if err != nil {
			return nil, err
		}
		ev.Children = append(ev.Children, r)
		if !r.Valid {
			failed = append(failed, f.String)
		}
	}
	if len(failed) != 0 {
		ev.Valid = false
		ev.Error = fmt.Sprintf("schemas depending on %q do not match", failed)
	}
	return ev, nil
}

type requiredKeyword struct{ keyword }

func (requiredKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	names, err := stringList(ctx, v)
	if err != nil {
		return nil, err
	}
	if missing := missingProperties(ctx.Instance(), names); len(missing) != 0 {
		return schema.Fail(fmt.Sprintf("missing properties %q", missing)), nil
	}
	return schema.Pass(), nil
}

func missingProperties(inst *ir.Node, names []string) []string {
	if inst.Type != ir.ObjectType {
		return nil
	}
	var missing []string
	for _, n := range names {
		if !ir.Has(inst, n) {
			missing = append(missing, n)
		}
	}
	return missing
}

type dependentRequiredKeyword struct{ keyword }

func (dependentRequiredKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.ObjectType {
		return nil, ctx.Errorf("must be an object, got %s", v.Type)
	}
	for i, e := range v.Values {
		if e.Type != ir.ArrayType {
			return nil, ctx.Errorf("value for %q must be an array of strings", v.Fields[i].String)
		}
	}
	return applyDependentRequired(v, ctx)
}

func applyDependentRequired(v *ir.Node, ctx schema.Context) (*schema.KeywordEvaluation, error) {
	inst := ctx.Instance()
	var msgs []string
	for i, f := range v.Fields {
		if v.Values[i].Type != ir.ArrayType {
			continue
		}
		names, err := stringList(ctx, v.Values[i])
		if err != nil {
			return nil, err
		}
		if !ir.Has(inst, f.String) {
			continue
		}
		if missing := missingProperties(inst, names); len(missing) != 0 {
			msgs = append(msgs, fmt.Sprintf("%q requires %q", f.String, missing))
		}
	}
	if len(msgs) != 0 {
		return schema.Fail(fmt.Sprintf("missing dependent properties: %v", msgs)), nil
	}
	return schema.Pass(), nil
}

// dependenciesKeyword is the draft-06/07 form combining dependentRequired
// and dependentSchemas.
type dependenciesKeyword struct{ keyword }

func (dependenciesKeyword) Subschemas(v *ir.Node) []*ir.Node { return values(v) }

func (dependenciesKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	if v.Type != ir.ObjectType {
		return nil, ctx.Errorf("must be an object, got %s", v.Type)
	}
	for i, e := range v.Values {
		if e.Type != ir.ArrayType && !isSchema(e) {
			return nil, ctx.Errorf("value for %q must be a schema or an array of strings", v.Fields[i].String)
		}
	}
	req, err := applyDependentRequired(v, ctx)
	if err != nil {
		return nil, err
	}
	ev, err := applyDependentSchemas(v, ctx)
	if err != nil {
		return nil, err
	}
	if !req.Valid {
		ev.Valid = false
		ev.Error = joinErrors(req.Error, ev.Error)
	}
	return ev, nil
}

func joinErrors(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}

type propertyCountKeyword struct {
	keyword
	max bool
}

func (k propertyCountKeyword) Handle(v *ir.Node, ctx schema.Context, _ schema.Siblings) (*schema.KeywordEvaluation, error) {
	n, err := nonNegativeInt(ctx, v)
	if err != nil {
		return nil, err
	}
	inst := ctx.Instance()
	if inst.Type != ir.ObjectType {
		return schema.Pass(), nil
	}
	got := len(inst.Fields)
	switch {
	case k.max && got > n:
		return schema.Fail(fmt.Sprintf("has %d properties, at most %d allowed", got, n)), nil
	case !k.max && got < n:
		return schema.Fail(fmt.Sprintf("has %d properties, at least %d required", got, n)), nil
	}
	return schema.Pass(), nil
}

var (
	propertiesKw           = &propertiesKeyword{keyword{name: "properties"}}
	patternPropertiesKw    = &patternPropertiesKeyword{keyword{name: "patternProperties"}}
	additionalPropertiesKw = &additionalPropertiesKeyword{keyword{name: "additionalProperties", deps: []string{"properties", "patternProperties"}}}
	propertyNamesKw        = &propertyNamesKeyword{keyword{name: "propertyNames"}}
	dependentSchemasKw     = &dependentSchemasKeyword{keyword{name: "dependentSchemas"}}
	dependenciesKw         = &dependenciesKeyword{keyword{name: "dependencies"}}
	requiredKw             = &requiredKeyword{keyword{name: "required"}}
	dependentRequiredKw    = &dependentRequiredKeyword{keyword{name: "dependentRequired"}}
	maxPropertiesKw        = &propertyCountKeyword{keyword: keyword{name: "maxProperties"}, max: true}
	minPropertiesKw        = &propertyCountKeyword{keyword: keyword{name: "minProperties"}}
)

func Properties() schema.Handler           { return propertiesKw }
func PatternProperties() schema.Handler    { return patternPropertiesKw }
func AdditionalProperties() schema.Handler { return additionalPropertiesKw }
func PropertyNames() schema.Handler        { return propertyNamesKw }
func DependentSchemas() schema.Handler     { return dependentSchemasKw }
func Dependencies() schema.Handler         { return dependenciesKw }
func Required() schema.Handler             { return requiredKw }
func DependentRequired() schema.Handler    { return dependentRequiredKw }
func MaxProperties() schema.Handler        { return maxPropertiesKw }
func MinProperties() schema.Handler        { return minPropertiesKw }
