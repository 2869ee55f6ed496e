package uri

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/types"
)

// Component is a URI component value that is either present or absent.
type Component = types.Opt[string]

// Some returns a present component holding s. The s may be empty.
func Some(s string) Component { return types.Some(s) }

// None returns an absent component.
func None() Component { return types.None[string]() }

// RenderOptions contains options for rendering URI references.
type RenderOptions = types.RenderOptions

const (
	// ErrMalformedInput is returned by [Reference.Validate] for components that break the grammar.
	ErrMalformedInput = grammar.ErrMalformedInput
	// ErrMalformedEscape is returned by [Reference.Validate] for broken percent-encoding.
	ErrMalformedEscape = grammar.ErrMalformedEscape
	// ErrInvalidArgument is returned for nil or otherwise unusable arguments.
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	// ErrNotAbsolute is returned when an absolute reference is required but the scheme is absent.
	ErrNotAbsolute errorutil.Error = "reference is not absolute"
)

// URI is implemented by [Reference].
type URI interface {
	types.Renderer
	types.Cloneable[*Reference]
	types.ValidFlag
	types.Equalable
}

var _ URI = (*Reference)(nil)

// Resolve parses base and ref (string or []byte) and resolves ref against base.
//
// See [Reference.Resolve].
func Resolve[T constraints.Byteseq](base, ref T) *Reference {
	return Parse(ref).Resolve(Parse(base))
}

// Validate parses s (string or []byte) and validates the result.
//
// See [Reference.Validate].
func Validate[T constraints.Byteseq](s T) error {
	return errtrace.Wrap(Parse(s).Validate())
}

func component(s string) Component {
	if s == "" {
		return None()
	}
	return Some(s)
}
