package jsonschema

import (
	"github.com/signadot/jsonschema/schema"
)

type config struct {
	defaultDialect     string
	formatAssertion    bool
	unknownAnnotations bool
	formats            map[string]schema.Format
	parent             *schema.Registry
}

type Option func(*config)

// WithDefaultDialect sets the dialect of schemas without a known $schema.
func WithDefaultDialect(id string) Option {
	return func(c *config) { c.defaultDialect = id }
}

// WithFormatAssertion makes "format" fail instances in every dialect.
func WithFormatAssertion(v bool) Option {
	return func(c *config) { c.formatAssertion = v }
}

func WithUnknownKeywordAnnotations(v bool) Option {
	return func(c *config) { c.unknownAnnotations = v }
}

// WithFormat adds or replaces a named format.
func WithFormat(name string, f schema.Format) Option {
	return func(c *config) {
		if c.formats == nil {
			c.formats = map[string]schema.Format{}
		}
		c.formats[name] = f
	}
}

// WithParent makes the validator's registry fall back to parent, which
// must already hold the meta-schemas.
func WithParent(parent *schema.Registry) Option {
	return func(c *config) { c.parent = parent }
}

func (c *config) evalOpts(fr *schema.FormatRegistry) []schema.EvalOption {
	return []schema.EvalOption{
		schema.WithDefaultDialect(c.defaultDialect),
		schema.WithFormatAssertion(c.formatAssertion),
		schema.WithUnknownKeywordAnnotations(c.unknownAnnotations),
		schema.WithFormats(fr),
	}
}
