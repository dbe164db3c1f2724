package cursor

import (
	stderrors "errors"
	"slices"
	"testing"

	"github.com/kbukum/seqkit/errors"
)

// countingStepper yields 1000+i for i in [1, limit) and counts advances.
type countingStepper struct {
	count    int
	limit    int
	advances int
}

func (s *countingStepper) TryAdvance() (bool, error) {
	s.advances++
	s.count++
	return s.count < s.limit, nil
}

func (s *countingStepper) Current() (int, error) { return 1000 + s.count, nil }

func TestEasy_Empty(t *testing.T) {
	c := New[int](Funcs(
		func() (bool, error) { return false, nil },
		func() (int, error) { return 0, nil },
	))
	for i := 0; i < 3; i++ {
		ok, err := c.HasNext()
		if err != nil || ok {
			t.Fatalf("HasNext #%d: ok=%v err=%v", i, ok, err)
		}
	}
	if _, err := c.Next(); !errors.IsExhausted(err) {
		t.Errorf("expected exhausted, got %v", err)
	}
}

func TestEasy_Simple(t *testing.T) {
	s := &countingStepper{limit: 3}
	c := New[int](s)

	for i := 0; i < 3; i++ {
		if ok, _ := c.HasNext(); !ok {
			t.Fatal("expected HasNext=true")
		}
	}
	if v, err := c.Next(); err != nil || v != 1001 {
		t.Fatalf("first Next: v=%d err=%v", v, err)
	}
	for i := 0; i < 3; i++ {
		if ok, _ := c.HasNext(); !ok {
			t.Fatal("expected HasNext=true")
		}
	}
	if v, err := c.Next(); err != nil || v != 1002 {
		t.Fatalf("second Next: v=%d err=%v", v, err)
	}
	if ok, _ := c.HasNext(); ok {
		t.Error("expected HasNext=false")
	}
	if ok, _ := c.HasNext(); ok {
		t.Error("expected HasNext=false")
	}
	if s.advances != 3 {
		t.Errorf("advances = %d, want 3", s.advances)
	}
}

func TestEasy_NextWithoutHasNext(t *testing.T) {
	s := &countingStepper{limit: 4}
	c := New[int](s)
	var got []int
	for {
		v, err := c.Next()
		if errors.IsExhausted(err) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1001, 1002, 1003}) {
		t.Errorf("got %v", got)
	}
	if s.advances != 4 {
		t.Errorf("advances = %d, want 4", s.advances)
	}
	// Exhausted cursors never advance the producer again.
	_, _ = c.HasNext()
	_, _ = c.Next()
	if s.advances != 4 {
		t.Errorf("advances after exhaustion = %d, want 4", s.advances)
	}
}

func TestEasy_AdvanceErrorIsTerminal(t *testing.T) {
	boom := stderrors.New("disk gone")
	calls := 0
	c := New[int](Funcs(
		func() (bool, error) {
			calls++
			if calls == 2 {
				return false, boom
			}
			return true, nil
		},
		func() (int, error) { return calls, nil },
	))

	if v, err := c.Next(); err != nil || v != 1 {
		t.Fatalf("first Next: v=%d err=%v", v, err)
	}
	_, err := c.HasNext()
	if !errors.IsIteration(err) || !stderrors.Is(err, boom) {
		t.Fatalf("expected iteration error wrapping cause, got %v", err)
	}
	ok, err := c.HasNext()
	if ok || err != nil {
		t.Errorf("expected finished cursor, got ok=%v err=%v", ok, err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestEasy_CurrentError(t *testing.T) {
	boom := stderrors.New("decode failed")
	n := 0
	c := New[int](Funcs(
		func() (bool, error) { n++; return n <= 2, nil },
		func() (int, error) {
			if n == 1 {
				return 0, boom
			}
			return n, nil
		},
	))
	if _, err := c.Next(); !errors.IsIteration(err) {
		t.Fatalf("expected iteration error, got %v", err)
	}
	// The failed position is consumed; iteration continues.
	if v, err := c.Next(); err != nil || v != 2 {
		t.Errorf("second Next: v=%d err=%v", v, err)
	}
}

type closingStepper struct {
	countingStepper
	closed bool
}

func (s *closingStepper) Close() error {
	s.closed = true
	return nil
}

func TestEasy_Close(t *testing.T) {
	s := &closingStepper{countingStepper: countingStepper{limit: 10}}
	c := New[int](s)
	if _, err := c.Next(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !s.closed {
		t.Error("expected stepper to be closed")
	}
	if ok, _ := c.HasNext(); ok {
		t.Error("expected closed cursor to report no elements")
	}
}

func TestFromSlice(t *testing.T) {
	c := FromSlice([]string{"plop", "onk"})
	var got []string
	err := Drain[string](c, func(s string) error {
		got = append(got, s)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"plop", "onk"}) {
		t.Errorf("got %v", got)
	}
}

func TestFromSlice_CurrentBeforeAdvancePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s := &sliceStepper[int]{items: []int{1}, index: -1}
	_, _ = s.Current()
}

func TestFromPull(t *testing.T) {
	items := []int{1, 2, 3}
	i := 0
	c := FromPull(func() (int, bool, error) {
		if i >= len(items) {
			return 0, false, nil
		}
		i++
		return items[i-1], true, nil
	})
	var got []int
	for v, err := range All[int](c) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if !slices.Equal(got, items) {
		t.Errorf("got %v", got)
	}
}

func TestFromPull_Error(t *testing.T) {
	boom := stderrors.New("read failed")
	c := FromPull(func() (int, bool, error) { return 0, false, boom })
	_, err := c.HasNext()
	if !stderrors.Is(err, boom) || !errors.IsIteration(err) {
		t.Errorf("expected iteration error wrapping cause, got %v", err)
	}
}

func TestFromSeq(t *testing.T) {
	c := FromSeq(slices.Values([]int{4, 5, 6}))
	defer c.Close()
	var got []int
	if err := Drain[int](c, func(v int) error { got = append(got, v); return nil }); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{4, 5, 6}) {
		t.Errorf("got %v", got)
	}
}

func TestFromSeq_CloseStopsProducer(t *testing.T) {
	stopped := false
	seq := func(yield func(int) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
	c := FromSeq(seq)
	if v, err := c.Next(); err != nil || v != 0 {
		t.Fatalf("Next: v=%d err=%v", v, err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !stopped {
		t.Error("expected producer to be stopped by Close")
	}
}

func TestDrain_CallbackError(t *testing.T) {
	boom := stderrors.New("sink failed")
	err := Drain[int](FromSlice([]int{1, 2}), func(int) error { return boom })
	if !errors.IsIteration(err) || !stderrors.Is(err, boom) {
		t.Errorf("expected iteration error, got %v", err)
	}
}

func TestAll_StopsEarly(t *testing.T) {
	s := &countingStepper{limit: 100}
	c := New[int](s)
	for v, err := range All[int](c) {
		if err != nil {
			t.Fatal(err)
		}
		if v == 1002 {
			break
		}
	}
	if s.advances != 2 {
		t.Errorf("advances = %d, want 2", s.advances)
	}
}
