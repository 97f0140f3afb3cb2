// Package parse decodes JSON and YAML documents into ir.Node trees.
//
// Object field order is preserved and number literals are kept exactly as
// written, so schema keywords like multipleOf and const compare the values
// the author wrote rather than their float64 approximation.
//
// # Usage
//
//	node, err := parse.Parse(data)
//	node, err = parse.Parse(data, parse.ParseYAML())
//
// # Related Packages
//
//   - github.com/signadot/jsonschema/ir - The node representation
//   - github.com/signadot/jsonschema/format - Document formats
package parse
