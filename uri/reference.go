package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/ioutil"
	"github.com/ghettovoice/uriref/internal/util"
	"github.com/ghettovoice/uriref/query"
)

// Reference represents a URI reference, either an absolute URI or a relative reference.
// Absent components are not rendered, present empty components render their delimiter only.
type Reference struct {
	Scheme    Component
	Authority Component
	Path      Component
	Query     Component
	Fragment  Component
}

// Parse parses a URI reference from the given input s (string or []byte).
// It never fails, the result may be checked with [Reference.Validate].
func Parse[T constraints.Byteseq](s T) *Reference {
	var ref Reference
	rest := string(s)

	if i := strings.IndexAny(rest, ":/?#"); i > 0 && rest[i] == ':' {
		ref.Scheme = component(rest[:i])
		rest = rest[i+1:]
	}
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		i := indexAnyOrLen(rest, "/?#")
		ref.Authority = component(rest[:i])
		rest = rest[i:]
	}

	i := indexAnyOrLen(rest, "?#")
	ref.Path = component(rest[:i])
	rest = rest[i:]

	if strings.HasPrefix(rest, "?") {
		rest = rest[1:]
		i := indexAnyOrLen(rest, "#")
		ref.Query = component(rest[:i])
		rest = rest[i:]
	}
	if strings.HasPrefix(rest, "#") {
		rest = rest[1:]
		// the fragment ends at the first line break
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[:i]
		}
		ref.Fragment = component(rest)
	}
	return &ref
}

func indexAnyOrLen(s, chars string) int {
	if i := strings.IndexAny(s, chars); i >= 0 {
		return i
	}
	return len(s)
}

// IsAbs reports whether the reference is an absolute URI, i.e. has a scheme.
func (r *Reference) IsAbs() bool {
	return r != nil && r.Scheme.IsSome()
}

// QueryParams parses the query component into [query.Params].
// An absent query yields empty params. Options are optional, see [query.Options].
func (r *Reference) QueryParams(opts *query.Options) *query.Params {
	if r == nil {
		return query.New(opts)
	}
	return query.Parse(r.Query.Or(""), opts)
}

// RenderTo writes the reference to the provided writer.
// Components are written as is unless [RenderOptions.Escape] is set,
// then characters not allowed in a component are percent-encoded.
func (r *Reference) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if r == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	esc := opts != nil && opts.Escape
	if v, ok := r.Scheme.Get(); ok {
		cw.Fprint(v, ":")
	}
	if v, ok := r.Authority.Get(); ok {
		cw.Fprint("//", escapeIf(esc, v, grammar.ShouldEscapeAuthorityChar))
	}
	if v, ok := r.Path.Get(); ok {
		cw.WriteString(escapeIf(esc, v, grammar.ShouldEscapePathChar))
	}
	if v, ok := r.Query.Get(); ok {
		cw.Fprint("?", escapeIf(esc, v, grammar.ShouldEscapeQueryChar))
	}
	if v, ok := r.Fragment.Get(); ok {
		cw.Fprint("#", escapeIf(esc, v, grammar.ShouldEscapeQueryChar))
	}
	return errtrace.Wrap2(cw.Result())
}

func escapeIf(esc bool, s string, shouldEscape func(c byte) bool) string {
	if !esc {
		return s
	}
	return grammar.Escape(s, shouldEscape)
}

// Render returns the string representation of the reference.
func (r *Reference) Render(opts *RenderOptions) string {
	if r == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	r.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the reference.
func (r *Reference) String() string {
	if r == nil {
		return ""
	}
	return r.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the reference.
func (r *Reference) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			r.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, r.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(r.String()))
		return
	default:
		type hideMethods Reference
		type Reference hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Reference)(r))
		return
	}
}

// Clone returns a copy of the reference.
func (r *Reference) Clone() *Reference {
	if r == nil {
		return nil
	}
	r2 := *r
	return &r2
}

// Equal compares this reference with another for equality.
// The scheme is compared case-insensitively, other components byte by byte.
// Presence of every component must match.
func (r *Reference) Equal(val any) bool {
	var other *Reference
	switch v := val.(type) {
	case Reference:
		other = &v
	case *Reference:
		other = v
	default:
		return false
	}

	if r == other {
		return true
	} else if r == nil || other == nil {
		return false
	}

	s1, ok1 := r.Scheme.Get()
	s2, ok2 := other.Scheme.Get()
	return ok1 == ok2 && util.EqFold(s1, s2) &&
		r.Authority.Equal(other.Authority) &&
		r.Path.Equal(other.Path) &&
		r.Query.Equal(other.Query) &&
		r.Fragment.Equal(other.Fragment)
}

// Validate checks the reference against the RFC 3986 grammar.
// All violations are reported at once, each one wraps [ErrMalformedInput] or [ErrMalformedEscape].
func (r *Reference) Validate() error {
	if r == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil reference"))
	}

	var errs []error
	if v, ok := r.Scheme.Get(); ok && !grammar.IsScheme(v) {
		errs = append(errs, errorutil.NewWrapperError(ErrMalformedInput, "scheme %q", v))
	}
	errs = append(errs,
		validateComponent("authority", r.Authority, grammar.IsAuthority[string]),
		validateComponent("path", r.Path, grammar.IsPath[string]),
		validateComponent("query", r.Query, grammar.IsQuery[string]),
		validateComponent("fragment", r.Fragment, grammar.IsFragment[string]),
	)

	path := r.Path.Or("")
	if r.Authority.IsSome() {
		if path != "" && path[0] != '/' {
			errs = append(errs, errorutil.NewWrapperError(ErrMalformedInput,
				"path %q must be empty or start with \"/\" when authority is present", path))
		}
	} else if strings.HasPrefix(path, "//") {
		errs = append(errs, errorutil.NewWrapperError(ErrMalformedInput,
			"path %q must not start with \"//\" when authority is absent", path))
	}
	if r.Scheme.IsNone() {
		if seg, _, _ := strings.Cut(path, "/"); strings.Contains(seg, ":") {
			errs = append(errs, errorutil.NewWrapperError(ErrMalformedInput,
				"first path segment %q of relative reference contains \":\"", seg))
		}
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid URI reference", errs...))
}

func validateComponent(name string, c Component, valid func(string) bool) error {
	v, ok := c.Get()
	if !ok {
		return nil
	}
	if err := grammar.CheckEscapes(v); err != nil {
		return errtrace.Wrap(fmt.Errorf("%s: %w", name, err))
	}
	if !valid(v) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedInput, "%s %q", name, v))
	}
	return nil
}

// IsValid checks whether the reference is syntactically valid.
func (r *Reference) IsValid() bool {
	return r.Validate() == nil
}

// MarshalText implements [encoding.TextMarshaler].
func (r *Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Reference) UnmarshalText(text []byte) error {
	*r = *Parse(text)
	return nil
}

// LogValue implements [slog.LogValuer].
func (r *Reference) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 5)
	for _, c := range []struct {
		key string
		val Component
	}{
		{"scheme", r.Scheme},
		{"authority", r.Authority},
		{"path", r.Path},
		{"query", r.Query},
		{"fragment", r.Fragment},
	} {
		if v, ok := c.val.Get(); ok {
			attrs = append(attrs, slog.String(c.key, v))
		}
	}
	return slog.GroupValue(attrs...)
}
