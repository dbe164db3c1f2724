package seq

import (
	"context"

	"github.com/go-softwarelab/common/pkg/optional"

	"github.com/kbukum/seqkit/concurrent"
	"github.com/kbukum/seqkit/errors"
)

// Number is the constraint of Sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Fold calls combine(acc, element) for every element, threading the
// accumulator, and returns the final accumulator. Sequential folds visit
// elements in order; concurrent folds in an unspecified order.
func Fold[T, V any](s *Sequence[T], initial V, combine func(V, T) (V, error)) (V, error) {
	return FoldContext(context.Background(), s, initial, combine)
}

// FoldContext is Fold with cancellation. Once ctx is done no further
// element is pulled and ctx.Err() is returned with the accumulator so far.
// A failing combine is reported as an iteration error and leaves the
// accumulator as it was.
func FoldContext[T, V any](ctx context.Context, s *Sequence[T], initial V, combine func(V, T) (V, error)) (V, error) {
	if s.drive != nil {
		return concurrent.FoldDriver(ctx, s.drive, initial, combine)
	}

	c := s.Iterator()
	defer c.Close()

	acc := initial
	for {
		if err := ctx.Err(); err != nil {
			return acc, err
		}
		ok, err := c.HasNext()
		if err != nil {
			return acc, err
		}
		if !ok {
			return acc, nil
		}
		v, err := c.Next()
		if err != nil {
			return acc, err
		}
		next, err := combine(acc, v)
		if err != nil {
			return acc, errors.Iteration(err)
		}
		acc = next
	}
}

// Reduce folds the sequence seeded with its first element. It returns an
// empty value for an empty sequence.
func (s *Sequence[T]) Reduce(combine func(T, T) (T, error)) (optional.Value[T], error) {
	acc, err := Fold(s, optional.Empty[T](), func(acc optional.Value[T], v T) (optional.Value[T], error) {
		if acc.IsEmpty() {
			return optional.Some(v), nil
		}
		next, err := combine(acc.MustGet(), v)
		if err != nil {
			return acc, err
		}
		return optional.Some(next), nil
	})
	if err != nil {
		return optional.Empty[T](), err
	}
	return acc, nil
}

// Sum adds up the elements of s.
func Sum[T Number](s *Sequence[T]) (T, error) {
	return Fold(s, T(0), func(acc, v T) (T, error) {
		return acc + v, nil
	})
}
