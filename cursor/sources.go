package cursor

import (
	"iter"

	"github.com/kbukum/seqkit/errors"
)

// Funcs builds a Stepper from two closures.
func Funcs[T any](advance func() (bool, error), current func() (T, error)) Stepper[T] {
	return &funcStepper[T]{advance: advance, current: current}
}

type funcStepper[T any] struct {
	advance func() (bool, error)
	current func() (T, error)
}

func (s *funcStepper[T]) TryAdvance() (bool, error) { return s.advance() }
func (s *funcStepper[T]) Current() (T, error)       { return s.current() }

// FromSlice returns a cursor over items.
func FromSlice[T any](items []T) *Easy[T] {
	return New[T](&sliceStepper[T]{items: items, index: -1})
}

type sliceStepper[T any] struct {
	items []T
	index int
}

func (s *sliceStepper[T]) TryAdvance() (bool, error) {
	if s.index < len(s.items) {
		s.index++
	}
	return s.index < len(s.items), nil
}

func (s *sliceStepper[T]) Current() (T, error) {
	if s.index < 0 || s.index >= len(s.items) {
		panic("cursor: Current called without a successful TryAdvance")
	}
	return s.items[s.index], nil
}

// FromPull returns a cursor over a pull function that reports (value, ok, err),
// the shape of pipeline-style iterators. next is not called again once it
// reported exhaustion or an error.
func FromPull[T any](next func() (T, bool, error)) *Easy[T] {
	return New[T](&pullStepper[T]{next: next})
}

type pullStepper[T any] struct {
	next  func() (T, bool, error)
	value T
	valid bool
	stop  func()
}

func (s *pullStepper[T]) TryAdvance() (bool, error) {
	v, ok, err := s.next()
	if err != nil || !ok {
		var zero T
		s.value, s.valid = zero, false
		return false, err
	}
	s.value, s.valid = v, true
	return true, nil
}

func (s *pullStepper[T]) Current() (T, error) {
	if !s.valid {
		panic("cursor: Current called without a successful TryAdvance")
	}
	return s.value, nil
}

func (s *pullStepper[T]) Close() error {
	if s.stop != nil {
		s.stop()
	}
	return nil
}

// FromSeq returns a cursor over a standard Go iterator. Close stops the
// underlying iter.Pull coroutine; a fully drained cursor needs no Close.
func FromSeq[T any](seq iter.Seq[T]) *Easy[T] {
	next, stop := iter.Pull(seq)
	return New[T](&pullStepper[T]{
		next: func() (T, bool, error) {
			v, ok := next()
			return v, ok, nil
		},
		stop: stop,
	})
}

// All returns a range-over-func view of c. Iteration stops after the first
// error, which is yielded with a zero value. c is not closed.
func All[T any](c Cursor[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			ok, err := c.HasNext()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			v, err := c.Next()
			if err != nil {
				yield(v, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Drain pulls every remaining element of c and calls fn for each, stopping
// at the first error. Errors returned by fn are reported as iteration errors.
func Drain[T any](c Cursor[T], fn func(T) error) error {
	for v, err := range All(c) {
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return errors.Iteration(err)
		}
	}
	return nil
}
