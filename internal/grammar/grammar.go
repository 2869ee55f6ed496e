// Package grammar implements RFC 3986 character classes, component rules and percent-encoding.
package grammar

//go:generate go tool errtrace -w .

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrMalformedInput  Error = "malformed input"
	ErrMalformedEscape Error = "malformed percent-encoding"
)

// IsAlpha checks ALPHA rule.
func IsAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

// IsDigit checks DIGIT rule.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsHexDigit checks HEXDIG rule (case-insensitive).
func IsHexDigit(c byte) bool {
	return IsDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// IsUnreserved checks unreserved rule.
func IsUnreserved(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

// IsGenDelim checks gen-delims rule.
func IsGenDelim(c byte) bool {
	switch c {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	}
	return false
}

// IsSubDelim checks sub-delims rule.
func IsSubDelim(c byte) bool {
	switch c {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	}
	return false
}

// IsPChar checks pchar rule, except the pct-encoded alternative.
func IsPChar(c byte) bool { return IsUnreserved(c) || IsSubDelim(c) || c == ':' || c == '@' }

// ShouldEscapePathChar reports whether c must be percent-encoded inside a path.
func ShouldEscapePathChar(c byte) bool { return !IsPChar(c) && c != '/' }

// ShouldEscapeQueryChar reports whether c must be percent-encoded inside a query or fragment.
func ShouldEscapeQueryChar(c byte) bool { return !IsPChar(c) && c != '/' && c != '?' }

// ShouldEscapeAuthorityChar reports whether c must be percent-encoded inside an authority.
func ShouldEscapeAuthorityChar(c byte) bool {
	return !IsUnreserved(c) && !IsSubDelim(c) && c != ':' && c != '@' && c != '[' && c != ']'
}
