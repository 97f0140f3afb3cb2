// Package formats provides the "format" predicates named by JSON Schema
// and expression defined formats.
//
// Predicates accept every instance that is not a string. Register installs
// all of them:
//
//	reg := schema.NewFormatRegistry()
//	formats.Register(reg)
package formats
