package seq

import (
	"context"
	"iter"

	"github.com/kbukum/seqkit/concurrent"
	"github.com/kbukum/seqkit/cursor"
)

// Sequence is an immutable, lazily evaluated sequence of values.
// All iteration state lives in the cursors it creates.
type Sequence[T any] struct {
	iterator func() cursor.Cursor[T]

	// Set on concurrent sequences only.
	engine *concurrent.Engine
	err    error
	drive  concurrent.Driver[T]
}

// --- Constructors ---

// New creates a sequence from a cursor factory. factory must return a fresh
// cursor on every call.
func New[T any](factory func() cursor.Cursor[T]) *Sequence[T] {
	return &Sequence[T]{iterator: factory}
}

// FromStepper creates a sequence from a stepper factory.
func FromStepper[T any](factory func() cursor.Stepper[T]) *Sequence[T] {
	return New(func() cursor.Cursor[T] {
		return cursor.New(factory())
	})
}

// FromSlice creates a sequence over items. The slice is not copied.
func FromSlice[T any](items []T) *Sequence[T] {
	return New(func() cursor.Cursor[T] {
		return cursor.FromSlice(items)
	})
}

// Of creates a sequence over the given values.
func Of[T any](items ...T) *Sequence[T] {
	return FromSlice(items)
}

// FromSeq creates a sequence over a standard iterator. seq must be
// restartable for the sequence to be iterated more than once.
func FromSeq[T any](seq iter.Seq[T]) *Sequence[T] {
	return New(func() cursor.Cursor[T] {
		return cursor.FromSeq(seq)
	})
}

// Empty returns a sequence with no elements.
func Empty[T any]() *Sequence[T] {
	return FromSlice[T](nil)
}

// --- Access ---

// Iterator returns a fresh cursor over the sequence. The caller should Close
// it if it is not drained. Iterator always walks the sequence sequentially,
// even on a concurrent sequence.
func (s *Sequence[T]) Iterator() cursor.Cursor[T] {
	return s.iterator()
}

// Values returns a range-over-func view of the sequence. Iteration stops at
// the first error, which is yielded with a zero value.
func (s *Sequence[T]) Values() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		c := s.Iterator()
		defer c.Close()
		for v, err := range cursor.All(c) {
			if !yield(v, err) {
				return
			}
		}
	}
}

// --- Concurrency ---

// WithWorkers sets the number of workers of a concurrent sequence.
func WithWorkers(n int) concurrent.Option {
	return concurrent.WithWorkers(n)
}

// Concurrently returns a view of s whose folds run on a new engine built from
// opts. An invalid option is reported by the first fold.
func (s *Sequence[T]) Concurrently(opts ...concurrent.Option) *Sequence[T] {
	e, err := concurrent.New(opts...)
	return withEngine(s, e, err)
}

// ConcurrentlyWith returns a view of s whose folds run on e.
func (s *Sequence[T]) ConcurrentlyWith(e *concurrent.Engine) *Sequence[T] {
	return withEngine(s, e, nil)
}

// IsConcurrent reports whether folds over s run on a worker pool.
func (s *Sequence[T]) IsConcurrent() bool {
	return s.drive != nil
}

func withEngine[T any](s *Sequence[T], e *concurrent.Engine, err error) *Sequence[T] {
	out := &Sequence[T]{iterator: s.iterator, engine: e, err: err}
	out.drive = func(ctx context.Context, visit func(T) error) error {
		if err != nil {
			return err
		}
		return concurrent.Run(ctx, e, out.iterator(), visit)
	}
	return out
}

// inherit makes to concurrent on the engine of from, if from is concurrent.
func inherit[T, R any](from *Sequence[T], to *Sequence[R]) *Sequence[R] {
	if from.drive == nil {
		return to
	}
	return withEngine(to, from.engine, from.err)
}

// lift derives a concurrent sequence whose workers run adapt on each
// upstream element before handing results to visit.
func lift[T, R any](from *Sequence[T], iterator func() cursor.Cursor[R], adapt func(T, func(R) error) error) *Sequence[R] {
	out := &Sequence[R]{iterator: iterator}
	if from.drive == nil {
		return out
	}
	out.engine, out.err = from.engine, from.err
	out.drive = func(ctx context.Context, visit func(R) error) error {
		return from.drive(ctx, func(v T) error {
			return adapt(v, visit)
		})
	}
	return out
}
