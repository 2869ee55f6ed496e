package grammar

import (
	"bytes"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/errorutil"
)

// Unescape converts each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
// Malformed sequences are copied as is.
func Unescape[T constraints.Byteseq](s T) T {
	if bytes.IndexByte([]byte(s), '%') < 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isEscaped(s, i) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// CheckEscapes returns an [ErrMalformedEscape] error for the first '%'
// that is not followed by two hexadecimal digits.
func CheckEscapes[T constraints.Byteseq](s T) error {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if !isEscaped(s, i) {
			end := min(i+3, len(s))
			return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedEscape, "%q at offset %d", string(s[i:end]), i))
		}
		i += 2
	}
	return nil
}

// Escape replaces each byte matched by shouldEscape callback with the hex form "% HEXDIG HEXDIG".
// Already encoded triples are kept as is, so the function can be applied to raw URI components.
// Nil shouldEscape escapes everything except unreserved characters.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	return escape(s, shouldEscape, true)
}

// EscapeAll is like [Escape] but also encodes '%' of already encoded triples
// when shouldEscape reports it, so decoded text survives a later [Unescape] unchanged.
func EscapeAll[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	return escape(s, shouldEscape, false)
}

func escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool, keepEscaped bool) T {
	if len(s) == 0 {
		return s
	}
	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case keepEscaped && isEscaped(s, i):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func isEscaped[T constraints.Byteseq](s T, i int) bool {
	return s[i] == '%' && i+2 < len(s) && IsHexDigit(s[i+1]) && IsHexDigit(s[i+2])
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
