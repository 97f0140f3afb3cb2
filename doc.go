// Package jsonschema validates JSON and YAML documents against JSON Schema
// draft-06, draft-07, 2019-09 and 2020-12.
//
// A Validator bundles a schema registry preloaded with the standard
// meta-schemas and the built in formats:
//
//	v := jsonschema.Default()
//	uri, err := v.AddSchema(doc)
//	res, err := v.Validate(uri, instance)
//	if !res.Valid { ... }
//
// The engine itself lives in package schema and keyword handlers in
// package keyword. Package vocab assembles them into dialects.
package jsonschema
