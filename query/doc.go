// Package query parses and renders the query component of a URI reference
// as an ordered multi-valued key/value mapping.
//
// A query string is split on a separator ("&" by default) into pairs, each pair
// is split on its first "=" into a key and a value. Keys and values are decoded
// by replacing "+" with a space and then decoding "%XX" triples; malformed
// triples are kept as is. A pair without "=" has an absent value, which is
// different from an empty one:
//
//	p := query.Parse("b=2&a=1&flag&a=", nil)
//	p.Values["a"] // [Some("1") Some("")]
//	p.Values["flag"] // [None()]
//
// Rendering emits keys in lexicographic order and the values of each key in
// their list order, so
//
//	query.Parse("b=2&a=1&a=3", nil).String() == "a=1&a=3&b=2"
//
// Spaces are rendered as "+". Bytes that would change the structure of the
// query on reparse ("%", "+", "#", separator bytes and "=" inside keys) are
// percent-encoded; everything else is written as is unless
// [RenderOptions.Escape] is set.
//
// [Params.Values] is a plain map and may be modified directly.
// Params are not safe for concurrent modification.
package query
