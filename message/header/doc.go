// Package header provides low-level and high-level tooling for reading email
// message headers. If you need low-level access, you want to deal with the
// methods that work with field.Field objects. It is generally expected that
// devs will prefer the high-level methods on Header, which handle folding,
// case-insensitive naming, and parameterized field bodies.
//
// The provided Parse() method parses headers while preserving the original
// field bytes, so a parsed header renders back out byte-for-byte identical to
// the input. That property is the whole point of this module: signature
// verification dies on a single altered byte.
package header
