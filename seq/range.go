package seq

import (
	"fmt"

	"github.com/kbukum/seqkit/cursor"
	"github.com/kbukum/seqkit/errors"
)

// Count returns the integers 0 through n-1. It is empty for n <= 0.
func Count(n int) *Sequence[int] {
	if n <= 0 {
		return Empty[int]()
	}
	return rangeOf(0, n-1)
}

// Range returns the integers begin through end, both included. end ==
// begin-1 gives an empty range; a smaller end is a configuration error.
func Range(begin, end int) (*Sequence[int], error) {
	if end < begin && end != begin-1 {
		return nil, errors.InvalidBound("end", end,
			fmt.Sprintf("must be at least begin-1 (%d)", begin-1)).WithDetail("begin", begin)
	}
	return rangeOf(begin, end), nil
}

// MustRange is like Range but panics on invalid bounds.
func MustRange(begin, end int) *Sequence[int] {
	s, err := Range(begin, end)
	if err != nil {
		panic(err)
	}
	return s
}

func rangeOf(begin, end int) *Sequence[int] {
	return FromStepper(func() cursor.Stepper[int] {
		return &rangeStepper{begin: begin, end: end}
	})
}

// rangeStepper stops at end without incrementing past it, so a range
// ending at math.MaxInt does not wrap.
type rangeStepper struct {
	begin, end int
	current    int
	started    bool
	done       bool
}

func (st *rangeStepper) TryAdvance() (bool, error) {
	if st.done {
		return false, nil
	}
	if !st.started {
		st.started = true
		st.current = st.begin
	} else if st.current >= st.end {
		st.done = true
		return false, nil
	} else {
		st.current++
	}
	if st.current > st.end {
		st.done = true
		return false, nil
	}
	return true, nil
}

func (st *rangeStepper) Current() (int, error) {
	if !st.started || st.done {
		panic("seq: range Current called without a successful TryAdvance")
	}
	return st.current, nil
}
