// Package format names the document formats understood by parse and encode.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f = format.FromFilename("schema.json")
//
// # Related Packages
//
//   - github.com/signadot/jsonschema/parse - Parse text to IR
//   - github.com/signadot/jsonschema/encode - Encode IR to text
package format
