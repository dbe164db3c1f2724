package seq

import "github.com/kbukum/seqkit/cursor"

// Zip pairs the elements of a and b position by position for as long as
// either side has elements. The side that ran out first is empty in the
// remaining pairs. Pairs of comparable elements compare with ==. The result
// is concurrent if a is.
func Zip[A, B any](a *Sequence[A], b *Sequence[B]) *Sequence[Pair[Maybe[A], Maybe[B]]] {
	return inherit(a, New(func() cursor.Cursor[Pair[Maybe[A], Maybe[B]]] {
		return cursor.New[Pair[Maybe[A], Maybe[B]]](&zipStepper[A, B]{
			first:  a.Iterator(),
			second: b.Iterator(),
		})
	}))
}

// WithIndex pairs every element with its position, counted from zero on
// each new cursor.
func WithIndex[T any](s *Sequence[T]) *Sequence[Pair[int, T]] {
	return inherit(s, New(func() cursor.Cursor[Pair[int, T]] {
		return cursor.New[Pair[int, T]](&indexStepper[T]{source: s.Iterator()})
	}))
}

// Equal reports whether a and b have the same length and equal elements at
// every position. Any failure while iterating yields false.
func Equal[T comparable](a, b *Sequence[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is Equal with a custom element comparison. A panic in eq yields
// false.
func EqualFunc[A, B any](a *Sequence[A], b *Sequence[B], eq func(A, B) bool) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	ok, err := Zip(a, b).All(func(p Pair[Maybe[A], Maybe[B]]) (bool, error) {
		if p.First.IsEmpty() || p.Second.IsEmpty() {
			return false, nil
		}
		return eq(p.First.MustGet(), p.Second.MustGet()), nil
	})
	return err == nil && ok
}

type zipStepper[A, B any] struct {
	first   cursor.Cursor[A]
	second  cursor.Cursor[B]
	current Pair[Maybe[A], Maybe[B]]
}

func (st *zipStepper[A, B]) TryAdvance() (bool, error) {
	hasA, err := st.first.HasNext()
	if err != nil {
		return false, err
	}
	hasB, err := st.second.HasNext()
	if err != nil {
		return false, err
	}
	if !hasA && !hasB {
		return false, nil
	}

	var next Pair[Maybe[A], Maybe[B]]
	if hasA {
		v, err := st.first.Next()
		if err != nil {
			return false, err
		}
		next.First = Just(v)
	}
	if hasB {
		v, err := st.second.Next()
		if err != nil {
			return false, err
		}
		next.Second = Just(v)
	}
	st.current = next
	return true, nil
}

func (st *zipStepper[A, B]) Current() (Pair[Maybe[A], Maybe[B]], error) {
	return st.current, nil
}

func (st *zipStepper[A, B]) Close() error {
	err := st.first.Close()
	if err2 := st.second.Close(); err == nil {
		err = err2
	}
	return err
}

type indexStepper[T any] struct {
	source cursor.Cursor[T]
	index  int
}

func (st *indexStepper[T]) TryAdvance() (bool, error) { return st.source.HasNext() }

func (st *indexStepper[T]) Current() (Pair[int, T], error) {
	i := st.index
	st.index++
	v, err := st.source.Next()
	if err != nil {
		return Pair[int, T]{}, err
	}
	return Pair[int, T]{First: i, Second: v}, nil
}

func (st *indexStepper[T]) Close() error { return st.source.Close() }
