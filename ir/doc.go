// Package ir provides the in-memory representation of JSON documents used by
// the schema engine.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field says which of the other
// fields carry the value:
//
//   - NullType: no value
//   - BoolType: Bool
//   - NumberType: Number holds the literal; Int64 and Float64 are set when
//     the literal fits
//   - StringType: String
//   - ArrayType: Values
//   - ObjectType: Fields[i] is the string key for Values[i]
//
// Each node keeps a link to its parent together with its index and field
// name, so the location of any node can be recovered with Pointer or
// PointerFrom. Object fields keep their document order.
//
// # Numbers
//
// JSON numbers are compared by exact value using math/big, so 1, 1.0 and
// 10e-1 are all equal and all integers.
//
// # Equality and Hashing
//
// Equal implements JSON value equality: object field order does not matter,
// numbers compare by value. Hash is consistent with Equal.
//
// # Pointers
//
// Pointer is an RFC 6901 JSON Pointer:
//
//	p, err := ir.ParsePointer("/definitions/a~1b")
//	node, err := p.Resolve(doc)
//
// # Thread Safety
//
// Nodes are not safe for concurrent mutation. The schema engine treats
// registered documents as immutable.
package ir
