package types

import (
	"fmt"
	"log/slog"
)

// Opt is a value that is either present or absent.
// The zero value is absent.
type Opt[T comparable] struct {
	val T
	ok  bool
}

// Some returns a present [Opt] holding v.
func Some[T comparable](v T) Opt[T] { return Opt[T]{val: v, ok: true} }

// None returns an absent [Opt].
func None[T comparable]() Opt[T] { return Opt[T]{} }

// Get returns the held value and whether it is present.
func (o Opt[T]) Get() (T, bool) { return o.val, o.ok }

// IsSome reports whether the value is present.
func (o Opt[T]) IsSome() bool { return o.ok }

// IsNone reports whether the value is absent.
func (o Opt[T]) IsNone() bool { return !o.ok }

// Or returns the held value if present, otherwise def.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.val
	}
	return def
}

// Equal reports whether both values are absent or both are present and equal.
func (o Opt[T]) Equal(other Opt[T]) bool {
	return o.ok == other.ok && o.val == other.val
}

// String returns the held value formatted with %v, or "<none>" when absent.
func (o Opt[T]) String() string {
	if !o.ok {
		return "<none>"
	}
	return fmt.Sprint(o.val)
}

// LogValue implements [slog.LogValuer].
func (o Opt[T]) LogValue() slog.Value {
	if !o.ok {
		return slog.Value{}
	}
	return slog.AnyValue(o.val)
}
