package schema

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/signadot/jsonschema/debug"
	"github.com/signadot/jsonschema/ir"
)

// Registration is everything the registry knows about one schema resource.
type Registration struct {
	BaseURI string
	Root    *ir.Node
	// Anchors holds $anchor and $dynamicAnchor names.
	Anchors map[string]*ir.Node
	// DynamicAnchors holds $dynamicAnchor names only.
	DynamicAnchors map[string]*ir.Node
	// LegacyAnchors holds names declared with a "#name" $id.
	LegacyAnchors map[string]*ir.Node
	// RecursiveAnchor is the resource root if it declares
	// "$recursiveAnchor": true.
	RecursiveAnchor *ir.Node
	// Dialect is the $schema of the resource, inherited from the enclosing
	// resource when absent.
	Dialect string
}

func newRegistration(uri string, root *ir.Node, dialect string) *Registration {
	return &Registration{
		BaseURI:        uri,
		Root:           root,
		Anchors:        map[string]*ir.Node{},
		DynamicAnchors: map[string]*ir.Node{},
		LegacyAnchors:  map[string]*ir.Node{},
		Dialect:        dialect,
	}
}

// Registry maps base uris to schema resources. Lookups that miss consult
// the parent registry.
type Registry struct {
	mu     sync.RWMutex
	parent *Registry
	vocabs *VocabularyRegistry
	regs   map[string]*Registration
	locs   map[*ir.Node]Location

	// dialect is assumed while scanning documents without $schema.
	dialect string
}

func NewRegistry(vocabs *VocabularyRegistry) *Registry {
	return &Registry{
		vocabs: vocabs,
		regs:   map[string]*Registration{},
		locs:   map[*ir.Node]Location{},
	}
}

// Child returns an empty registry that falls back to r. Documents added to
// the child are invisible to r.
func (r *Registry) Child() *Registry {
	c := NewRegistry(r.vocabs)
	c.parent = r
	c.dialect = r.dialect
	return c
}

// SetDefaultDialect sets the dialect assumed when scanning documents that
// declare no $schema. It affects documents registered afterwards.
func (r *Registry) SetDefaultDialect(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialect = id
}

// refHidesSiblings reports whether node's $ref hides its sibling keywords,
// $id included, in dialect id.
func (r *Registry) refHidesSiblings(node *ir.Node, id string) bool {
	if !ir.Has(node, "$ref") {
		return false
	}
	if id == "" {
		r.mu.RLock()
		id = r.dialect
		r.mu.RUnlock()
	}
	if id == "" {
		return false
	}
	d, err := r.Dialect(id)
	return err == nil && d.RefOverridesSiblings && d.Has("$ref")
}

func (r *Registry) Vocabularies() *VocabularyRegistry {
	return r.vocabs
}

// Register scans doc and records every schema resource and anchor it
// contains, starting with doc itself under baseURI. Registering a base uri
// again replaces the earlier registration.
func (r *Registry) Register(baseURI string, doc *ir.Node) error {
	base, _, err := SplitFragment(baseURI)
	if err != nil {
		return err
	}
	if !isAbsoluteURI(base) {
		return fmt.Errorf("%w: base uri %q is not absolute", ErrInvalidSchema, baseURI)
	}
	if doc.Type != ir.ObjectType && doc.Type != ir.BoolType {
		return &SchemaError{Keyword: "", Location: base, Msg: fmt.Sprintf("schema must be an object or boolean, got %s", doc.Type)}
	}
	regs, locs, err := r.scan(base, doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for uri, reg := range regs {
		r.regs[uri] = reg
	}
	maps.Copy(r.locs, locs)
	return nil
}

// Add registers doc under its absolute $id, or under a fresh urn:uuid: base
// when it has none, and returns the uri used.
func (r *Registry) Add(doc *ir.Node) (string, error) {
	if id, ok := ir.GetString(doc, "$id"); ok {
		if abs, err := ResolveURI("", id); err == nil {
			if base, _, err := SplitFragment(abs); err == nil && isAbsoluteURI(base) {
				return base, r.Register(base, doc)
			}
		}
	}
	uri := "urn:uuid:" + uuid.NewString()
	return uri, r.Register(uri, doc)
}

type scanItem struct {
	uri     string
	root    *ir.Node
	dialect string
	node    *ir.Node
}

func (r *Registry) scan(baseURI string, doc *ir.Node) (map[string]*Registration, map[*ir.Node]Location, error) {
	regs := map[string]*Registration{}
	locs := map[*ir.Node]Location{}
	dialect, _ := ir.GetString(doc, "$schema")
	regs[baseURI] = newRegistration(baseURI, doc, dialect)

	queue := []scanItem{{uri: baseURI, root: doc, dialect: dialect, node: doc}}
	seen := map[*ir.Node]bool{doc: true}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		node := it.node
		hidden := node.Type == ir.ObjectType && r.refHidesSiblings(node, it.dialect)
		if node.Type == ir.ObjectType && !hidden {
			if err := r.rebase(&it, regs); err != nil {
				return nil, nil, err
			}
		}
		ptr, ok := node.PointerFrom(it.root)
		if !ok {
			return nil, nil, fmt.Errorf("%w: subschema detached from %s", ErrInvalidSchema, it.uri)
		}
		locs[node] = Location{BaseURI: it.uri, Pointer: ptr}
		if node.Type != ir.ObjectType {
			continue
		}
		if !hidden {
			if err := indexAnchors(node, it, regs[it.uri]); err != nil {
				return nil, nil, err
			}
		}
		for i, f := range node.Fields {
			for _, h := range r.vocabs.Handlers(f.String) {
				for _, sub := range h.Subschemas(node.Values[i]) {
					if sub == nil || seen[sub] {
						continue
					}
					seen[sub] = true
					queue = append(queue, scanItem{uri: it.uri, root: it.root, dialect: it.dialect, node: sub})
				}
			}
		}
	}
	if debug.Registry() {
		for _, uri := range slices.Sorted(maps.Keys(regs)) {
			reg := regs[uri]
			debug.Logf("registered %s anchors=%v dynamic=%v legacy=%v recursive=%v dialect=%q\n",
				uri, slices.Sorted(maps.Keys(reg.Anchors)), slices.Sorted(maps.Keys(reg.DynamicAnchors)),
				slices.Sorted(maps.Keys(reg.LegacyAnchors)), reg.RecursiveAnchor != nil, reg.Dialect)
		}
	}
	return regs, locs, nil
}

// rebase handles $id: a new base uri starts a new resource, a fragment
// declares a legacy anchor.
func (r *Registry) rebase(it *scanItem, regs map[string]*Registration) error {
	id := ir.Get(it.node, "$id")
	if id == nil {
		return nil
	}
	if id.Type != ir.StringType {
		return &SchemaError{Keyword: "$id", Location: it.uri, Msg: "must be a string"}
	}
	abs, err := ResolveURI(it.uri, id.String)
	if err != nil {
		return &SchemaError{Keyword: "$id", Location: it.uri, Msg: err.Error()}
	}
	base, frag, err := SplitFragment(abs)
	if err != nil {
		return &SchemaError{Keyword: "$id", Location: it.uri, Msg: err.Error()}
	}
	if base != it.uri {
		it.uri = base
		it.root = it.node
		if s, ok := ir.GetString(it.node, "$schema"); ok {
			it.dialect = s
		}
		regs[base] = newRegistration(base, it.node, it.dialect)
	}
	if frag == "" {
		return nil
	}
	if !ValidLegacyAnchor(frag) {
		return &SchemaError{Keyword: "$id", Location: it.uri, Msg: fmt.Sprintf("invalid anchor %q", frag)}
	}
	regs[it.uri].LegacyAnchors[frag] = it.node
	return nil
}

func indexAnchors(node *ir.Node, it scanItem, reg *Registration) error {
	for _, kw := range []string{"$anchor", "$dynamicAnchor"} {
		v := ir.Get(node, kw)
		if v == nil {
			continue
		}
		if v.Type != ir.StringType || !ValidAnchor(v.String) {
			return &SchemaError{Keyword: kw, Location: it.uri, Msg: fmt.Sprintf("invalid anchor %s", ir.MustJSON(v))}
		}
		reg.Anchors[v.String] = node
		if kw == "$dynamicAnchor" {
			reg.DynamicAnchors[v.String] = node
		}
	}
	if v := ir.Get(node, "$recursiveAnchor"); v != nil && v.Type == ir.BoolType && v.Bool && node == it.root {
		reg.RecursiveAnchor = node
	}
	return nil
}

// Lookup returns the registration for uri.
func (r *Registry) Lookup(uri string) (*Registration, bool) {
	for x := r; x != nil; x = x.parent {
		x.mu.RLock()
		reg, ok := x.regs[uri]
		x.mu.RUnlock()
		if ok {
			return reg, true
		}
	}
	return nil, false
}

// Get returns the root of the resource at baseURI when anchor is empty,
// and otherwise the node the anchor names. Legacy anchors are consulted
// only when allowLegacy is set.
func (r *Registry) Get(baseURI, anchor string, allowLegacy bool) (*ir.Node, error) {
	reg, ok := r.Lookup(baseURI)
	if !ok {
		return nil, &RefResolutionError{Kind: RefStatic, Ref: baseURI, Err: fmt.Errorf("no schema registered")}
	}
	if anchor == "" {
		return reg.Root, nil
	}
	if n := reg.Anchors[anchor]; n != nil {
		return n, nil
	}
	if allowLegacy {
		if n := reg.LegacyAnchors[anchor]; n != nil {
			return n, nil
		}
	}
	return nil, &RefResolutionError{Kind: RefAnchor, Ref: "#" + anchor, Base: baseURI, Err: fmt.Errorf("no such anchor")}
}

// Location returns the absolute location of a schema node. Nodes that were
// not indexed directly are located relative to their nearest indexed
// ancestor.
func (r *Registry) Location(node *ir.Node) (Location, bool) {
	if l, ok := r.indexed(node); ok {
		return l, true
	}
	for p := node.Parent; p != nil; p = p.Parent {
		l, ok := r.indexed(p)
		if !ok {
			continue
		}
		ptr, _ := node.PointerFrom(p)
		return l.Append(ptr...), true
	}
	return Location{}, false
}

func (r *Registry) indexed(node *ir.Node) (Location, bool) {
	for x := r; x != nil; x = x.parent {
		x.mu.RLock()
		l, ok := x.locs[node]
		x.mu.RUnlock()
		if ok {
			return l, true
		}
	}
	return Location{}, false
}

// Registrations returns the registered base uris, including those of parent
// registries, sorted.
func (r *Registry) Registrations() []string {
	set := map[string]bool{}
	for x := r; x != nil; x = x.parent {
		x.mu.RLock()
		for uri := range x.regs {
			set[uri] = true
		}
		x.mu.RUnlock()
	}
	return slices.Sorted(maps.Keys(set))
}

// Dialect resolves a meta-schema id against the vocabularies and the
// meta-schema documents in r.
func (r *Registry) Dialect(id string) (*Dialect, error) {
	return r.vocabs.Dialect(id, r)
}
