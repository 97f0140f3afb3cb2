// Package vocab provides the built in vocabularies and dialects and the
// official meta-schemas for draft-06, draft-07, 2019-09 and 2020-12.
//
// A registry ready to evaluate schemas of any of these dialects is
//
//	vocabs := vocab.NewRegistry()
//	reg := schema.NewRegistry(vocabs)
//	err := vocab.RegisterMetaSchemas(reg)
package vocab
