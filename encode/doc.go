// Package encode writes ir.Node trees as JSON or YAML text.
//
// # Usage
//
//	err := encode.Encode(node, os.Stdout)
//	err = encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//	err = encode.Encode(node, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// JSON output keeps number literals exactly. YAML output goes through
// github.com/goccy/go-yaml.
package encode
