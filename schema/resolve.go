package schema

import (
	"errors"
	"fmt"

	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
)

// EvaluateRef resolves a reference keyword value and evaluates its target
// at the current instance. The target resource is on the dynamic scope for
// the extent of the call.
func (c Context) EvaluateRef(kind RefKind, ref string) (*Result, error) {
	var (
		target *ir.Node
		abs    string
		err    error
	)
	switch kind {
	case RefStatic:
		target, abs, err = c.resolveStatic(ref)
	case RefDynamic:
		target, abs, err = c.resolveDynamic(ref)
	case RefRecursive:
		target, abs, err = c.resolveRecursive(ref)
	default:
		return nil, fmt.Errorf("cannot evaluate reference kind %s", kind)
	}
	if err != nil {
		return nil, err
	}
	loc, ok := c.run.registry.Location(target)
	if !ok {
		return nil, &RefResolutionError{Kind: kind, Ref: ref, Base: c.baseURI, Err: errors.New("target is not registered")}
	}
	if debug.Ref() {
		debug.Logf("%s %q from %s -> %s scope %v\n", kind, ref, c.baseURI, loc, c.run.scope.Entries())
	}
	rc := c
	rc.refURI = abs
	rc.baseURI = loc.BaseURI
	rc.schemaLoc = loc
	if reg, ok := c.run.registry.Lookup(loc.BaseURI); ok {
		if rc, err = rc.withDialect(reg.Dialect); err != nil {
			return nil, err
		}
	}
	defer c.run.scope.Push(loc.BaseURI)()
	return rc.Evaluate(target)
}

func (c Context) resolveStatic(ref string) (*ir.Node, string, error) {
	abs, base, frag, err := c.absolute(RefStatic, ref)
	if err != nil {
		return nil, "", err
	}
	node, err := lookupFragment(c.run.registry, base, frag, c.dialect.LegacyAnchors)
	if err != nil {
		return nil, "", c.refError(RefStatic, ref, err)
	}
	return node, abs, nil
}

// resolveDynamic resolves $dynamicRef. When the static target is a
// $dynamicAnchor, the outermost resource in the dynamic scope defining the
// same dynamic anchor wins.
func (c Context) resolveDynamic(ref string) (*ir.Node, string, error) {
	abs, base, frag, err := c.absolute(RefDynamic, ref)
	if err != nil {
		return nil, "", err
	}
	initial, err := lookupFragment(c.run.registry, base, frag, c.dialect.LegacyAnchors)
	if err != nil {
		return nil, "", c.refError(RefDynamic, ref, err)
	}
	if IsPointerFragment(frag) {
		return initial, abs, nil
	}
	reg, ok := c.run.registry.Lookup(base)
	if !ok || reg.DynamicAnchors[frag] == nil {
		return initial, abs, nil
	}
	for _, uri := range c.run.scope.Entries() {
		r, ok := c.run.registry.Lookup(uri)
		if !ok {
			continue
		}
		if n := r.DynamicAnchors[frag]; n != nil {
			return n, uri + "#" + frag, nil
		}
	}
	return nil, "", &RefResolutionError{
		Kind: RefDynamic,
		Ref:  ref,
		Base: c.baseURI,
		Err:  fmt.Errorf("no resource in the dynamic scope defines $dynamicAnchor %q", frag),
	}
}

// resolveRecursive resolves $recursiveRef, which must be "#". When the
// current resource declares "$recursiveAnchor": true, the outermost
// resource in the dynamic scope that also declares it wins.
func (c Context) resolveRecursive(ref string) (*ir.Node, string, error) {
	if ref != "#" {
		return nil, "", c.Errorf(`value must be "#", got %q`, ref)
	}
	reg, ok := c.run.registry.Lookup(c.baseURI)
	if !ok {
		return nil, "", &RefResolutionError{Kind: RefRecursive, Ref: ref, Base: c.baseURI, Err: errors.New("current resource is not registered")}
	}
	if reg.RecursiveAnchor == nil {
		return reg.Root, reg.BaseURI, nil
	}
	for _, uri := range c.run.scope.Entries() {
		r, ok := c.run.registry.Lookup(uri)
		if ok && r.RecursiveAnchor != nil {
			return r.Root, uri, nil
		}
	}
	return reg.Root, reg.BaseURI, nil
}

func (c Context) absolute(kind RefKind, ref string) (abs, base, frag string, err error) {
	abs, err = ResolveURI(c.baseURI, ref)
	if err != nil {
		return "", "", "", &RefResolutionError{Kind: kind, Ref: ref, Base: c.baseURI, Err: err}
	}
	base, frag, err = SplitFragment(abs)
	if err != nil {
		return "", "", "", &RefResolutionError{Kind: kind, Ref: ref, Base: c.baseURI, Err: err}
	}
	return abs, base, frag, nil
}

func (c Context) refError(kind RefKind, ref string, err error) error {
	var re *RefResolutionError
	if !errors.As(err, &re) {
		return &RefResolutionError{Kind: kind, Ref: ref, Base: c.baseURI, Err: err}
	}
	if kind == RefStatic && re.Kind == RefAnchor {
		kind = RefAnchor
	}
	return &RefResolutionError{Kind: kind, Ref: ref, Base: c.baseURI, Err: re.Err}
}

// lookupFragment finds the node a decoded fragment names within the
// resource at base: a JSON Pointer from the resource root, or an anchor.
func lookupFragment(reg *Registry, base, frag string, allowLegacy bool) (*ir.Node, error) {
	if !IsPointerFragment(frag) {
		return reg.Get(base, frag, allowLegacy)
	}
	root, err := reg.Get(base, "", false)
	if err != nil {
		return nil, err
	}
	ptr, err := ir.ParsePointer(frag)
	if err != nil {
		return nil, &RefResolutionError{Kind: RefStatic, Ref: base + "#" + frag, Err: err}
	}
	node, err := ptr.Resolve(root)
	if err != nil {
		return nil, &RefResolutionError{Kind: RefStatic, Ref: base + "#" + frag, Err: err}
	}
	return node, nil
}
