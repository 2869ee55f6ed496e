package uri

import (
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/log"
)

// ResolverOptions contains options for [Resolver].
type ResolverOptions struct {
	// Log is the logger used by the resolver.
	// If nil, the [log.Default] current at the time of each resolution is used.
	Log *slog.Logger
}

func (o *ResolverOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Default()
	}
	return o.Log
}

// Resolver resolves references against a fixed absolute base reference.
// It is safe for concurrent use.
type Resolver struct {
	base *Reference
	opts ResolverOptions
}

// NewResolver creates a new resolver bound to a copy of base.
// The base must be an absolute URI, otherwise [ErrNotAbsolute] is returned.
// Options are optional, see [ResolverOptions].
func NewResolver(base *Reference, opts *ResolverOptions) (*Resolver, error) {
	if base == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil base reference"))
	}
	if !base.IsAbs() {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNotAbsolute, "base %q", base.String()))
	}

	r := &Resolver{base: base.Clone()}
	if opts != nil {
		r.opts = *opts
	}
	return r, nil
}

// Base returns a copy of the base reference.
func (r *Resolver) Base() *Reference {
	return r.base.Clone()
}

// Resolve resolves ref against the base reference.
//
// See [Reference.Resolve].
func (r *Resolver) Resolve(ref *Reference) *Reference {
	target := ref.Resolve(r.base)
	r.opts.log().Debug("reference resolved", "base", r.base, "ref", ref, "target", target)
	return target
}

// ResolveString parses s and resolves it against the base reference.
func (r *Resolver) ResolveString(s string) *Reference {
	return r.Resolve(Parse(s))
}

// LogValue implements [slog.LogValuer].
func (r *Resolver) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}
	return slog.GroupValue(slog.Any("base", r.base))
}
