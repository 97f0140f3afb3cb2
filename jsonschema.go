package jsonschema

import (
	"fmt"
	"sync"

	"github.com/signadot/jsonschema/formats"
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/parse"
	"github.com/signadot/jsonschema/schema"
	"github.com/signadot/jsonschema/vocab"
)

// Validator evaluates instances against the schemas in its registry. It is
// safe for concurrent use once its schemas are added.
type Validator struct {
	cfg     config
	reg     *schema.Registry
	formats *schema.FormatRegistry
}

func New(opts ...Option) (*Validator, error) {
	cfg := config{defaultDialect: schema.DefaultDialect}
	for _, opt := range opts {
		opt(&cfg)
	}
	var reg *schema.Registry
	if cfg.parent != nil {
		reg = cfg.parent.Child()
	} else {
		reg = schema.NewRegistry(vocab.NewRegistry())
		if err := vocab.RegisterMetaSchemas(reg); err != nil {
			return nil, err
		}
	}
	reg.SetDefaultDialect(cfg.defaultDialect)
	fr := formats.Default()
	for name, f := range cfg.formats {
		fr.Register(name, f)
	}
	return &Validator{cfg: cfg, reg: reg, formats: fr}, nil
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default returns the process wide validator with default options.
func Default() *Validator {
	defaultOnce.Do(func() {
		v, err := New()
		if err != nil {
			panic(fmt.Sprintf("default validator: %v", err))
		}
		defaultV = v
	})
	return defaultV
}

func (v *Validator) Registry() *schema.Registry {
	return v.reg
}

func (v *Validator) Formats() *schema.FormatRegistry {
	return v.formats
}

// Child returns a validator with the same options whose schemas are
// private to it.
func (v *Validator) Child() *Validator {
	return &Validator{cfg: v.cfg, reg: v.reg.Child(), formats: v.formats}
}

// AddSchema registers doc and returns its base uri: its $id if absolute,
// otherwise a generated urn:uuid: uri.
func (v *Validator) AddSchema(doc *ir.Node) (string, error) {
	return v.reg.Add(doc)
}

// AddSchemaFile parses and registers the JSON or YAML schema at path.
func (v *Validator) AddSchemaFile(path string) (string, error) {
	doc, err := parse.ParseFile(path)
	if err != nil {
		return "", err
	}
	uri, err := v.reg.Add(doc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return uri, nil
}

// Validate evaluates instance against the registered schema at uri.
func (v *Validator) Validate(uri string, instance *ir.Node) (*schema.Result, error) {
	return v.reg.Evaluate(uri, instance, v.cfg.evalOpts(v.formats)...)
}

// ValidateSchema evaluates instance against doc, registering doc privately
// if it is not yet registered.
func (v *Validator) ValidateSchema(doc, instance *ir.Node) (*schema.Result, error) {
	return v.reg.EvaluateSchema(doc, instance, v.cfg.evalOpts(v.formats)...)
}

// ValidateJSON parses both documents as JSON and validates.
func (v *Validator) ValidateJSON(schemaJSON, instanceJSON []byte) (*schema.Result, error) {
	doc, err := parse.Parse(schemaJSON, parse.ParseJSON())
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	inst, err := parse.Parse(instanceJSON, parse.ParseJSON())
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	return v.ValidateSchema(doc, inst)
}

// MetaSchema returns the uri of the meta-schema doc declares, or of the
// default dialect.
func (v *Validator) MetaSchema(doc *ir.Node) string {
	if id, ok := ir.GetString(doc, "$schema"); ok {
		return id
	}
	return v.cfg.defaultDialect
}

// ValidateMetaSchema evaluates doc as an instance of its meta-schema.
func (v *Validator) ValidateMetaSchema(doc *ir.Node) (*schema.Result, error) {
	return v.Validate(v.MetaSchema(doc), doc)
}
