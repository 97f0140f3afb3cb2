// Package keyword implements the JSON Schema keywords as schema.Handler
// values.
//
// Each keyword is a small stateless type exposed through a constructor
// returning the shared instance:
//
//	h := keyword.Properties()
//	h.Name() // "properties"
//
// Handlers are bundled into vocabularies by package vocab. Some keywords
// exist in two variants because their meaning changed between dialects:
// Items and LegacyItems, UnevaluatedItems and LegacyUnevaluatedItems, and
// Format and FormatAssertion.
package keyword
