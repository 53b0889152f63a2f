// Package opt provides a minimal optional-value type for fields where the
// zero value is meaningful data rather than absence, such as the source
// line of a failure record.
package opt

import "fmt"

// Maybe holds a value of type V, or nothing.
type Maybe[V any] struct {
	defined bool
	value   V
}

// Some returns a Maybe holding value.
func Some[V any](value V) Maybe[V] {
	return Maybe[V]{defined: true, value: value}
}

// None returns an empty Maybe.
func None[V any]() Maybe[V] { return Maybe[V]{} }

// IsDefined reports whether the Maybe holds a value.
func (m Maybe[V]) IsDefined() bool { return m.defined }

// Value returns the held value, or the zero value of V if none is held.
func (m Maybe[V]) Value() V { return m.value }

// OrElse returns the held value if any, and fallback otherwise.
func (m Maybe[V]) OrElse(fallback V) V {
	if m.defined {
		return m.value
	}
	return fallback
}

// String formats the held value with %v, or returns "[none]".
func (m Maybe[V]) String() string {
	if !m.defined {
		return "[none]"
	}
	return fmt.Sprintf("%v", m.value)
}
