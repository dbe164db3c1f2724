package seq

import (
	"fmt"

	"github.com/go-softwarelab/common/pkg/optional"
)

// Maybe is a value that may be absent. It holds the value itself, so a
// Maybe of a comparable type compares with ==, and two absent Maybes are
// equal. Zip uses it for the sides of its pairs.
type Maybe[T any] struct {
	Value   T
	Present bool
}

// Just returns a present Maybe holding v.
func Just[T any](v T) Maybe[T] {
	return Maybe[T]{Value: v, Present: true}
}

// Absent returns an empty Maybe.
func Absent[T any]() Maybe[T] {
	return Maybe[T]{}
}

func (m Maybe[T]) IsPresent() bool { return m.Present }

func (m Maybe[T]) IsEmpty() bool { return !m.Present }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.Value, m.Present }

// MustGet returns the value and panics if it is absent.
func (m Maybe[T]) MustGet() T {
	if !m.Present {
		panic("seq: MustGet on an absent value")
	}
	return m.Value
}

// OrElse returns the value, or fallback if it is absent.
func (m Maybe[T]) OrElse(fallback T) T {
	if !m.Present {
		return fallback
	}
	return m.Value
}

// Optional converts m to an optional.Value.
func (m Maybe[T]) Optional() optional.Value[T] {
	if !m.Present {
		return optional.Empty[T]()
	}
	return optional.Some(m.Value)
}

// String formats the value, or "absent".
func (m Maybe[T]) String() string {
	if !m.Present {
		return "absent"
	}
	return fmt.Sprint(m.Value)
}
