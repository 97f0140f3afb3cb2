package vocab

import (
	"github.com/signadot/jsonschema/keyword"
	"github.com/signadot/jsonschema/schema"
)

// Vocabulary ids.
const (
	Core2020             = "https://json-schema.org/draft/2020-12/vocab/core"
	Applicator2020       = "https://json-schema.org/draft/2020-12/vocab/applicator"
	Unevaluated2020      = "https://json-schema.org/draft/2020-12/vocab/unevaluated"
	Validation2020       = "https://json-schema.org/draft/2020-12/vocab/validation"
	MetaData2020         = "https://json-schema.org/draft/2020-12/vocab/meta-data"
	FormatAnnotation2020 = "https://json-schema.org/draft/2020-12/vocab/format-annotation"
	FormatAssertion2020  = "https://json-schema.org/draft/2020-12/vocab/format-assertion"
	Content2020          = "https://json-schema.org/draft/2020-12/vocab/content"

	Core2019       = "https://json-schema.org/draft/2019-09/vocab/core"
	Applicator2019 = "https://json-schema.org/draft/2019-09/vocab/applicator"
	Validation2019 = "https://json-schema.org/draft/2019-09/vocab/validation"
	MetaData2019   = "https://json-schema.org/draft/2019-09/vocab/meta-data"
	Format2019     = "https://json-schema.org/draft/2019-09/vocab/format"
	Content2019    = "https://json-schema.org/draft/2019-09/vocab/content"

	// Draft07 and Draft06 name the keyword sets of the drafts that predate
	// vocabularies.
	Draft07 = "urn:jsonschema:vocab:draft-07"
	Draft06 = "urn:jsonschema:vocab:draft-06"
)

func validation() []schema.Handler {
	return []schema.Handler{
		keyword.Type(),
		keyword.Enum(),
		keyword.Const(),
		keyword.MultipleOf(),
		keyword.Maximum(),
		keyword.ExclusiveMaximum(),
		keyword.Minimum(),
		keyword.ExclusiveMinimum(),
		keyword.MaxLength(),
		keyword.MinLength(),
		keyword.Pattern(),
		keyword.MaxItems(),
		keyword.MinItems(),
		keyword.UniqueItems(),
		keyword.MaxContains(),
		keyword.MinContains(),
		keyword.MaxProperties(),
		keyword.MinProperties(),
		keyword.Required(),
		keyword.DependentRequired(),
	}
}

func metaData() []schema.Handler {
	return []schema.Handler{
		keyword.Title(),
		keyword.Description(),
		keyword.Default(),
		keyword.Deprecated(),
		keyword.ReadOnly(),
		keyword.WriteOnly(),
		keyword.Examples(),
	}
}

func content() []schema.Handler {
	return []schema.Handler{
		keyword.ContentEncoding(),
		keyword.ContentMediaType(),
		keyword.ContentSchema(),
	}
}

// inPlace are the applicators shared by every dialect that apply
// subschemas to the instance itself.
func inPlace() []schema.Handler {
	return []schema.Handler{
		keyword.AllOf(),
		keyword.AnyOf(),
		keyword.OneOf(),
		keyword.Not(),
	}
}

func conditional() []schema.Handler {
	return []schema.Handler{keyword.If(), keyword.Then(), keyword.Else()}
}

func objectApplicators() []schema.Handler {
	return []schema.Handler{
		keyword.Properties(),
		keyword.PatternProperties(),
		keyword.AdditionalProperties(),
		keyword.PropertyNames(),
	}
}

func join(hs ...[]schema.Handler) []schema.Handler {
	var res []schema.Handler
	for _, h := range hs {
		res = append(res, h...)
	}
	return res
}

// Vocabularies returns the built in vocabularies.
func Vocabularies() []*schema.Vocabulary {
	return []*schema.Vocabulary{
		{
			ID:         Core2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/core",
			Handlers: []schema.Handler{
				keyword.ID(),
				keyword.Schema(),
				keyword.Ref(),
				keyword.Anchor(),
				keyword.DynamicRef(),
				keyword.DynamicAnchor(),
				keyword.Vocabulary(),
				keyword.Comment(),
				keyword.Defs(),
			},
		},
		{
			ID:         Applicator2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/applicator",
			Handlers: join(
				[]schema.Handler{keyword.PrefixItems(), keyword.Items(), keyword.Contains()},
				objectApplicators(),
				[]schema.Handler{keyword.DependentSchemas()},
				conditional(),
				inPlace(),
			),
		},
		{
			ID:         Unevaluated2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/unevaluated",
			Handlers:   []schema.Handler{keyword.UnevaluatedItems(), keyword.UnevaluatedProperties()},
		},
		{
			ID:         Validation2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/validation",
			Handlers:   validation(),
		},
		{
			ID:         MetaData2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/meta-data",
			Handlers:   metaData(),
		},
		{
			ID:         FormatAnnotation2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/format-annotation",
			Handlers:   []schema.Handler{keyword.Format()},
		},
		{
			ID:         FormatAssertion2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/format-assertion",
			Handlers:   []schema.Handler{keyword.FormatAssertion()},
		},
		{
			ID:         Content2020,
			MetaSchema: "https://json-schema.org/draft/2020-12/meta/content",
			Handlers:   content(),
		},
		{
			ID:         Core2019,
			MetaSchema: "https://json-schema.org/draft/2019-09/meta/core",
			Handlers: []schema.Handler{
				keyword.ID(),
				keyword.Schema(),
				keyword.Anchor(),
				keyword.Ref(),
				keyword.RecursiveRef(),
				keyword.RecursiveAnchor(),
				keyword.Vocabulary(),
				keyword.Comment(),
				keyword.Defs(),
			},
		},
		{
			ID:         Applicator2019,
			MetaSchema: "https://json-schema.org/draft/2019-09/meta/applicator",
			Handlers: join(
				[]schema.Handler{
					keyword.AdditionalItems(),
					keyword.LegacyUnevaluatedItems(),
					keyword.LegacyItems(),
					keyword.Contains(),
					keyword.UnevaluatedProperties(),
					keyword.DependentSchemas(),
				},
				objectApplicators(),
				conditional(),
				inPlace(),
			),
		},
		{
			ID:         Validation2019,
			MetaSchema: "https://json-schema.org/draft/2019-09/meta/validation",
			Handlers:   validation(),
		},
		{
			ID:         MetaData2019,
			MetaSchema: "https://json-schema.org/draft/2019-09/meta/meta-data",
			Handlers:   metaData(),
		},
		{
			ID:         Format2019,
			MetaSchema: "https://json-schema.org/draft/2019-09/meta/format",
			Handlers:   []schema.Handler{keyword.Format()},
		},
		{
			ID:         Content2019,
			MetaSchema: "https://json-schema.org/draft/2019-09/meta/content",
			Handlers:   content(),
		},
		{
			ID:         Draft07,
			MetaSchema: schema.Draft07,
			Handlers: join(
				draft06(),
				conditional(),
				[]schema.Handler{
					keyword.Comment(),
					keyword.ReadOnly(),
					keyword.WriteOnly(),
					keyword.ContentEncoding(),
					keyword.ContentMediaType(),
				},
			),
		},
		{
			ID:         Draft06,
			MetaSchema: schema.Draft06,
			Handlers:   draft06(),
		},
	}
}

func draft06() []schema.Handler {
	return join(
		[]schema.Handler{
			keyword.ID(),
			keyword.Schema(),
			keyword.Ref(),
			keyword.Definitions(),
			keyword.LegacyItems(),
			keyword.AdditionalItems(),
			keyword.Contains(),
			keyword.Dependencies(),
			keyword.Title(),
			keyword.Description(),
			keyword.Default(),
			keyword.Examples(),
			keyword.Format(),
			keyword.Type(),
			keyword.Enum(),
			keyword.Const(),
			keyword.MultipleOf(),
			keyword.Maximum(),
			keyword.ExclusiveMaximum(),
			keyword.Minimum(),
			keyword.ExclusiveMinimum(),
			keyword.MaxLength(),
			keyword.MinLength(),
			keyword.Pattern(),
			keyword.MaxItems(),
			keyword.MinItems(),
			keyword.UniqueItems(),
			keyword.MaxProperties(),
			keyword.MinProperties(),
			keyword.Required(),
		},
		objectApplicators(),
		inPlace(),
	)
}

// Dialects returns the well known dialects.
func Dialects() []*schema.DialectSpec {
	return []*schema.DialectSpec{
		{
			ID: schema.Draft2020,
			Vocabularies: []string{
				Core2020, Applicator2020, Unevaluated2020, Validation2020,
				MetaData2020, FormatAnnotation2020, Content2020,
			},
		},
		{
			ID: schema.Draft2019,
			Vocabularies: []string{
				Core2019, Applicator2019, Validation2019,
				MetaData2019, Format2019, Content2019,
			},
		},
		{
			ID:                   schema.Draft07,
			Vocabularies:         []string{Draft07},
			LegacyAnchors:        true,
			RefOverridesSiblings: true,
		},
		{
			ID:                   schema.Draft06,
			Vocabularies:         []string{Draft06},
			LegacyAnchors:        true,
			RefOverridesSiblings: true,
		},
	}
}

// NewRegistry returns a vocabulary registry holding the built in
// vocabularies and dialects.
func NewRegistry() *schema.VocabularyRegistry {
	reg := schema.NewVocabularyRegistry()
	for _, v := range Vocabularies() {
		if err := reg.RegisterVocabulary(v); err != nil {
			panic(err)
		}
	}
	for _, d := range Dialects() {
		if err := reg.RegisterDialect(d); err != nil {
			panic(err)
		}
	}
	return reg
}
