package query

import (
	"slices"

	"github.com/ghettovoice/uriref/internal/types"
)

// Value is a query parameter value, absent when the pair had no "=".
type Value = types.Opt[string]

// Some returns a present [Value].
func Some(v string) Value { return types.Some(v) }

// None returns an absent [Value].
func None() Value { return types.None[string]() }

// Values maps a key to the list of its values.
// Unlike [net/url.Values] an entry may hold absent values, and keys are case-sensitive.
type Values map[string][]Value

// Get returns values associated with the given key.
func (vals Values) Get(key string) []Value { return vals[key] }

// First returns the first value of the key and whether the key has any values.
func (vals Values) First(key string) (Value, bool) {
	v := vals[key]
	if len(v) == 0 {
		return None(), false
	}
	return v[0], true
}

// Add appends value to the list of the key.
func (vals Values) Add(key string, value Value) Values {
	vals[key] = append(vals[key], value)
	return vals
}

// Set sets the key to values. It replaces any existing values.
func (vals Values) Set(key string, values ...Value) Values {
	vals[key] = slices.Clone(values)
	return vals
}

// Del deletes the values associated with the key.
func (vals Values) Del(key string) Values {
	delete(vals, key)
	return vals
}

// Has checks whether a given key is in the map.
func (vals Values) Has(key string) bool {
	_, ok := vals[key]
	return ok
}

// Keys returns the keys in lexicographic order.
func (vals Values) Keys() []string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a deep copy of the map.
func (vals Values) Clone() Values {
	if vals == nil {
		return nil
	}
	vals2 := make(Values, len(vals))
	for k, vs := range vals {
		vals2[k] = slices.Clone(vs)
	}
	return vals2
}

// Equal reports whether both maps hold the same keys with the same value lists.
func (vals Values) Equal(other Values) bool {
	if len(vals) != len(other) {
		return false
	}
	for k, vs := range vals {
		ovs, ok := other[k]
		if !ok || !slices.EqualFunc(vs, ovs, Value.Equal) {
			return false
		}
	}
	return true
}
