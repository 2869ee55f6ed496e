package grammar

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/uriref/internal/constraints"
)

// RFC 3986 Appendix A rules used to validate reference components.
var (
	alpha = abnf.Alt(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit  = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	hexdig = abnf.Alt(
		"HEXDIG",
		digit,
		abnf.Range("%x41-46", []byte{0x41}, []byte{0x46}),
		abnf.Range("%x61-66", []byte{0x61}, []byte{0x66}),
	)

	pctEncoded = abnf.Concat("pct-encoded", literal("%"), hexdig, hexdig)
	unreserved = abnf.Alt("unreserved", alpha, append([]abnf.Operator{digit}, literals("-._~")...)...)
	subDelims  = abnf.Alt("sub-delims", literal("!"), literals("$&'()*+,;=")...)
	pchar      = abnf.Alt("pchar", unreserved, pctEncoded, subDelims, literal(":"), literal("@"))

	scheme = abnf.Concat(
		"scheme",
		alpha,
		abnf.Repeat0Inf("*( ALPHA / DIGIT / \"+\" / \"-\" / \".\" )",
			abnf.Alt("scheme-char", alpha, append([]abnf.Operator{digit}, literals("+-.")...)...),
		),
	)
	authority = abnf.Repeat0Inf(
		"authority",
		abnf.Alt("authority-char", unreserved, append([]abnf.Operator{pctEncoded, subDelims}, literals(":@[]")...)...),
	)
	path     = abnf.Repeat0Inf("path", abnf.Alt("path-char", pchar, literal("/")))
	query    = abnf.Repeat0Inf("query", abnf.Alt("query-char", pchar, literal("/"), literal("?")))
	fragment = abnf.Repeat0Inf("fragment", abnf.Alt("fragment-char", pchar, literal("/"), literal("?")))
)

func literal(s string) abnf.Operator { return abnf.Literal(`"`+s+`"`, []byte(s)) }

func literals(chars string) []abnf.Operator {
	ops := make([]abnf.Operator, 0, len(chars))
	for i := range len(chars) {
		ops = append(ops, literal(chars[i:i+1]))
	}
	return ops
}

func matchAll(op abnf.Operator, s []byte) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(s, 0, ns); err != nil {
		return false
	}
	n := ns.Best()
	return n != nil && n.Len() == len(s)
}

// IsScheme reports whether s matches the scheme rule.
func IsScheme[T constraints.Byteseq](s T) bool {
	return len(s) > 0 && matchAll(scheme, []byte(s))
}

// IsAuthority reports whether s is made of characters allowed in an authority.
// The authority is not split into userinfo, host and port.
func IsAuthority[T constraints.Byteseq](s T) bool {
	return len(s) == 0 || matchAll(authority, []byte(s))
}

// IsPath reports whether s is made of path segments and slashes.
func IsPath[T constraints.Byteseq](s T) bool {
	return len(s) == 0 || matchAll(path, []byte(s))
}

// IsQuery reports whether s matches the query rule.
func IsQuery[T constraints.Byteseq](s T) bool {
	return len(s) == 0 || matchAll(query, []byte(s))
}

// IsFragment reports whether s matches the fragment rule.
func IsFragment[T constraints.Byteseq](s T) bool {
	return len(s) == 0 || matchAll(fragment, []byte(s))
}
