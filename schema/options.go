package schema

type evalOpts struct {
	defaultDialect     string
	formatAssertion    bool
	formats            *FormatRegistry
	unknownAnnotations bool
}

type EvalOption func(*evalOpts)

func newEvalOpts(opts []EvalOption) *evalOpts {
	o := &evalOpts{defaultDialect: DefaultDialect}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDefaultDialect sets the dialect used for schemas whose $schema is
// absent or unknown.
func WithDefaultDialect(id string) EvalOption {
	return func(o *evalOpts) { o.defaultDialect = id }
}

// WithFormatAssertion makes "format" assert in every dialect.
func WithFormatAssertion(v bool) EvalOption {
	return func(o *evalOpts) { o.formatAssertion = v }
}

func WithFormats(r *FormatRegistry) EvalOption {
	return func(o *evalOpts) { o.formats = r }
}

// WithUnknownKeywordAnnotations records keywords without a handler as
// annotations carrying their value.
func WithUnknownKeywordAnnotations(v bool) EvalOption {
	return func(o *evalOpts) { o.unknownAnnotations = v }
}
