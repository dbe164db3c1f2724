package cursor

import (
	"io"

	"github.com/kbukum/seqkit/errors"
)

// Stepper is the producer side of a cursor.
type Stepper[T any] interface {
	// TryAdvance moves to the next element and reports whether one exists.
	// It is called at most once per position.
	TryAdvance() (bool, error)
	// Current returns the element at the current position. It is only valid
	// after TryAdvance returned true.
	Current() (T, error)
}

// Cursor provides pull-based sequential access to a stream of values.
type Cursor[T any] interface {
	// HasNext reports whether Next will return an element.
	HasNext() (bool, error)
	// Next returns the next element, or errors.ErrExhausted.
	Next() (T, error)
	// Close releases any resources held by the cursor.
	Close() error
}

// Easy adapts a Stepper into a Cursor with move-once semantics.
type Easy[T any] struct {
	stepper Stepper[T]
	pending bool
	hasMore bool
	done    bool
}

// New wraps s in a Cursor.
func New[T any](s Stepper[T]) *Easy[T] {
	return &Easy[T]{stepper: s, pending: true}
}

// HasNext advances the stepper if that was not done since the last Next.
func (c *Easy[T]) HasNext() (bool, error) {
	if err := c.advance(); err != nil {
		return false, err
	}
	return c.hasMore, nil
}

// Next returns the element under the cursor and consumes the position.
func (c *Easy[T]) Next() (T, error) {
	var zero T
	if err := c.advance(); err != nil {
		return zero, err
	}
	if !c.hasMore {
		return zero, errors.ErrExhausted
	}
	c.pending = true
	v, err := c.stepper.Current()
	if err != nil {
		return zero, errors.Iteration(err)
	}
	return v, nil
}

// Close marks the cursor finished and closes the stepper if it is an io.Closer.
func (c *Easy[T]) Close() error {
	c.done = true
	c.hasMore = false
	c.pending = false
	if closer, ok := c.stepper.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// advance runs TryAdvance once per position. Exhaustion and advance
// failures are terminal.
func (c *Easy[T]) advance() error {
	if c.done || !c.pending {
		return nil
	}
	c.pending = false
	ok, err := c.stepper.TryAdvance()
	if err != nil {
		c.done = true
		c.hasMore = false
		return errors.Iteration(err)
	}
	c.hasMore = ok
	if !ok {
		c.done = true
	}
	return nil
}
