package seq

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-softwarelab/common/pkg/optional"

	"github.com/kbukum/seqkit/cursor"
	"github.com/kbukum/seqkit/errors"
)

// Map returns a sequence of f applied to each element. A failure of f
// surfaces from the cursor's Next at the failing element.
func Map[T, R any](s *Sequence[T], f func(T) (R, error)) *Sequence[R] {
	return lift(s,
		func() cursor.Cursor[R] {
			return cursor.New[R](&mapStepper[T, R]{source: s.Iterator(), fn: f})
		},
		func(v T, visit func(R) error) error {
			r, err := f(v)
			if err != nil {
				return errors.Iteration(err)
			}
			return visit(r)
		})
}

// Select returns the elements for which p holds.
func (s *Sequence[T]) Select(p func(T) (bool, error)) *Sequence[T] {
	return lift(s,
		func() cursor.Cursor[T] {
			return cursor.New[T](&selectStepper[T]{source: s.Iterator(), fn: p})
		},
		func(v T, visit func(T) error) error {
			keep, err := p(v)
			if err != nil {
				return errors.Iteration(err)
			}
			if !keep {
				return nil
			}
			return visit(v)
		})
}

// Filter is an alias of Select.
func (s *Sequence[T]) Filter(p func(T) (bool, error)) *Sequence[T] {
	return s.Select(p)
}

// Reject returns the elements for which p does not hold.
func (s *Sequence[T]) Reject(p func(T) (bool, error)) *Sequence[T] {
	return s.Select(func(v T) (bool, error) {
		match, err := p(v)
		return !match, err
	})
}

// Each calls proc for every element.
func (s *Sequence[T]) Each(proc func(T) error) error {
	_, err := Fold(s, struct{}{}, func(acc struct{}, v T) (struct{}, error) {
		return acc, proc(v)
	})
	return err
}

// Any reports whether p holds for at least one element. The whole sequence
// is drained, but p is no longer called once a match was found.
func (s *Sequence[T]) Any(p func(T) (bool, error)) (bool, error) {
	return Fold(s, false, func(found bool, v T) (bool, error) {
		if found {
			return true, nil
		}
		return p(v)
	})
}

// All reports whether p holds for every element; true for an empty
// sequence. The whole sequence is drained, but p is no longer called once a
// mismatch was found.
func (s *Sequence[T]) All(p func(T) (bool, error)) (bool, error) {
	return Fold(s, true, func(all bool, v T) (bool, error) {
		if !all {
			return false, nil
		}
		return p(v)
	})
}

// First returns the first element, or an empty value for an empty sequence.
// On a concurrent sequence the element returned is whichever was combined
// first.
func (s *Sequence[T]) First() (optional.Value[T], error) {
	return s.Reduce(func(first, _ T) (T, error) {
		return first, nil
	})
}

// FirstMatch returns the first element for which p holds.
func (s *Sequence[T]) FirstMatch(p func(T) (bool, error)) (optional.Value[T], error) {
	return s.Select(p).First()
}

// Dump appends every element to dst and returns the extended slice. The
// spare capacity of dst is never written.
func (s *Sequence[T]) Dump(dst []T) ([]T, error) {
	return Fold(s, slices.Clip(dst), func(acc []T, v T) ([]T, error) {
		return append(acc, v), nil
	})
}

// Join formats every element with fmt.Sprint and joins them with sep.
func (s *Sequence[T]) Join(sep string) (string, error) {
	var b strings.Builder
	_, err := Fold(s, 0, func(n int, v T) (int, error) {
		if n > 0 {
			b.WriteString(sep)
		}
		b.WriteString(fmt.Sprint(v))
		return n + 1, nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// --- Steppers ---

type mapStepper[T, R any] struct {
	source cursor.Cursor[T]
	fn     func(T) (R, error)
}

func (st *mapStepper[T, R]) TryAdvance() (bool, error) { return st.source.HasNext() }

func (st *mapStepper[T, R]) Current() (R, error) {
	v, err := st.source.Next()
	if err != nil {
		var zero R
		return zero, err
	}
	return st.fn(v)
}

func (st *mapStepper[T, R]) Close() error { return st.source.Close() }

type selectStepper[T any] struct {
	source  cursor.Cursor[T]
	fn      func(T) (bool, error)
	current T
}

func (st *selectStepper[T]) TryAdvance() (bool, error) {
	for {
		ok, err := st.source.HasNext()
		if err != nil || !ok {
			return false, err
		}
		v, err := st.source.Next()
		if err != nil {
			return false, err
		}
		keep, err := st.fn(v)
		if err != nil {
			return false, err
		}
		if keep {
			st.current = v
			return true, nil
		}
	}
}

func (st *selectStepper[T]) Current() (T, error) { return st.current, nil }

func (st *selectStepper[T]) Close() error { return st.source.Close() }
