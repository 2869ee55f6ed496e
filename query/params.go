package query

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/ioutil"
	"github.com/ghettovoice/uriref/internal/types"
	"github.com/ghettovoice/uriref/internal/util"
)

// DefaultSep is the default pair separator.
const DefaultSep = "&"

// RenderOptions contains options for rendering query params.
type RenderOptions = types.RenderOptions

// Options configures parsing of query params.
type Options struct {
	// Sep is the separator between key/value pairs.
	// If empty, the [DefaultSep] is used.
	Sep string
}

func (o *Options) sep() string {
	if o == nil || o.Sep == "" {
		return DefaultSep
	}
	return o.Sep
}

// Params holds query parameters together with the separator used to render them.
type Params struct {
	// Sep is the separator between key/value pairs. Empty means [DefaultSep].
	Sep string
	// Values maps keys to their values.
	Values Values
}

// New returns empty params. Options are optional, see [Options].
func New(opts *Options) *Params {
	return &Params{
		Sep:    opts.sep(),
		Values: make(Values),
	}
}

// Parse parses a raw query string s (string or []byte).
// It never fails: empty pairs are skipped, malformed percent-encoding is kept as is.
// Options are optional, see [Options].
func Parse[T constraints.Byteseq](s T, opts *Options) *Params {
	p := New(opts)
	p.addPairs(string(s))
	return p
}

func (p *Params) addPairs(s string) {
	if s == "" {
		return
	}
	for pair := range strings.SplitSeq(s, p.sep()) {
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		val := None()
		if ok {
			val = Some(decode(v))
		}
		p.Values.Add(decode(k), val)
	}
}

func decode(s string) string {
	return grammar.Unescape(strings.ReplaceAll(s, "+", " "))
}

func (p *Params) sep() string {
	if p.Sep == "" {
		return DefaultSep
	}
	return p.Sep
}

// Get returns the first value of the key.
// The boolean result is false when the key is missing or has no values.
func (p *Params) Get(key string) (Value, bool) {
	if p == nil {
		return None(), false
	}
	return p.Values.First(key)
}

// Len returns the total number of key/value pairs.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	var n int
	for _, vs := range p.Values {
		n += len(vs)
	}
	return n
}

// RenderTo writes the params to the provided writer.
// Keys are written in lexicographic order, values of a key in their list order.
// Spaces are written as "+". Besides that "%", "+", "#", separator bytes and "=" inside keys
// are percent-encoded, so {"a": ["x+y"]} renders as "a=x%2By" and parses back to the same values.
// [RenderOptions.Escape] additionally encodes every byte not allowed in a query.
func (p *Params) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if p == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	sep := p.sep()
	full := opts != nil && opts.Escape
	var n int
	for _, k := range p.Values.Keys() {
		for _, v := range p.Values[k] {
			if n > 0 {
				cw.WriteString(sep)
			}
			n++
			cw.WriteString(encode(k, sep, true, full))
			if val, ok := v.Get(); ok {
				cw.Fprint("=", encode(val, sep, false, full))
			}
		}
	}
	return errtrace.Wrap2(cw.Result())
}

func encode(s, sep string, isKey, full bool) string {
	s = grammar.EscapeAll(s, func(c byte) bool {
		switch {
		case c == ' ':
			return false
		case c == '%', c == '+', c == '#', isKey && c == '=':
			return true
		case strings.IndexByte(sep, c) >= 0:
			return true
		case full:
			return grammar.ShouldEscapeQueryChar(c)
		}
		return false
	})
	return strings.ReplaceAll(s, " ", "+")
}

// Render returns the string representation of the params.
func (p *Params) Render(opts *RenderOptions) string {
	if p == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	p.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the params.
func (p *Params) String() string {
	if p == nil {
		return ""
	}
	return p.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the params.
func (p *Params) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			p.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, p.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
		return
	default:
		type hideMethods Params
		type Params hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Params)(p))
		return
	}
}

// Clone returns a deep copy of the params.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	return &Params{
		Sep:    p.Sep,
		Values: p.Values.Clone(),
	}
}

// Equal reports whether val holds the same separator and values.
func (p *Params) Equal(val any) bool {
	var other *Params
	switch v := val.(type) {
	case Params:
		other = &v
	case *Params:
		other = v
	default:
		return false
	}

	if p == other {
		return true
	} else if p == nil || other == nil {
		return false
	}
	return p.sep() == other.sep() && p.Values.Equal(other.Values)
}

// MarshalText implements [encoding.TextMarshaler].
func (p *Params) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The receiver's separator is kept and used to split the text.
func (p *Params) UnmarshalText(text []byte) error {
	*p = *Parse(text, &Options{Sep: p.Sep})
	return nil
}

// LogValue implements [slog.LogValuer].
func (p *Params) LogValue() slog.Value {
	if p == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, len(p.Values))
	for _, k := range p.Values.Keys() {
		vals := make([]string, 0, len(p.Values[k]))
		for _, v := range p.Values[k] {
			vals = append(vals, v.String())
		}
		attrs = append(attrs, slog.Any(k, vals))
	}
	return slog.GroupValue(attrs...)
}
