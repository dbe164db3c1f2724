package seq

import (
	stderrors "errors"
	"os"
	"runtime"
	"slices"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/seqkit/concurrent"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

func TestMain(m *testing.M) {
	logger.SetGlobalLogger(logger.Nop())
	os.Exit(m.Run())
}

func workerCounts() []int {
	return []int{1, 2, runtime.GOMAXPROCS(0)}
}

func TestConcurrent_SumMatchesSequential(t *testing.T) {
	want, err := Sum(Count(10000))
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range workerCounts() {
		t.Run(strconv.Itoa(w), func(t *testing.T) {
			s := Count(10000).Concurrently(WithWorkers(w))
			for run := 0; run < 10; run++ {
				got, err := Sum(s)
				if err != nil {
					t.Fatal(err)
				}
				if got != want {
					t.Fatalf("run %d: sum = %d, want %d", run, got, want)
				}
			}
		})
	}
}

func TestConcurrent_DumpHasEveryElementOnce(t *testing.T) {
	for _, w := range workerCounts() {
		t.Run(strconv.Itoa(w), func(t *testing.T) {
			got := mustDump(t, MustRange(1, 500).Concurrently(WithWorkers(w)))
			slices.Sort(got)
			if !slices.Equal(got, mustDump(t, MustRange(1, 500))) {
				t.Errorf("concurrent dump differs from sequential dump")
			}
		})
	}
}

func TestConcurrent_IsConcurrentPropagates(t *testing.T) {
	plain := Count(5)
	conc := plain.Concurrently(WithWorkers(2))
	double := func(v int) (int, error) { return v * 2, nil }

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"plain", plain.IsConcurrent(), false},
		{"concurrent", conc.IsConcurrent(), true},
		{"Map", Map(conc, double).IsConcurrent(), true},
		{"Map on plain", Map(plain, double).IsConcurrent(), false},
		{"Select", conc.Select(even).IsConcurrent(), true},
		{"Reject", conc.Reject(even).IsConcurrent(), true},
		{"Zip", Zip(conc, plain).IsConcurrent(), true},
		{"Zip with concurrent second", Zip(plain, conc).IsConcurrent(), false},
		{"WithIndex", WithIndex(conc).IsConcurrent(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("IsConcurrent = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestConcurrent_MapAndSelect(t *testing.T) {
	s := Count(200).Concurrently(WithWorkers(4))
	squares := Map(s.Select(even), func(v int) (int, error) { return v * v, nil })

	got := mustDump(t, squares)
	slices.Sort(got)
	want := mustDump(t, Map(Count(200).Select(even), func(v int) (int, error) { return v * v, nil }))
	if !slices.Equal(got, want) {
		t.Errorf("concurrent Map/Select differs from sequential")
	}
}

func TestConcurrent_MapRunsInParallel(t *testing.T) {
	var inFlight, peak atomic.Int32
	slow := func(v int) (int, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return v, nil
	}

	total, err := Sum(Map(Count(40).Concurrently(WithWorkers(4)), slow))
	if err != nil {
		t.Fatal(err)
	}
	if total != 780 {
		t.Errorf("sum = %d, want 780", total)
	}
	if peak.Load() < 2 {
		t.Errorf("peak parallel map calls = %d, want at least 2", peak.Load())
	}
}

func TestConcurrent_WithIndexKeepsPositions(t *testing.T) {
	words := Map(Count(300), func(v int) (string, error) { return "w" + strconv.Itoa(v), nil })
	pairs := mustDump(t, WithIndex(words.Concurrently(WithWorkers(4))))
	if len(pairs) != 300 {
		t.Fatalf("len = %d", len(pairs))
	}
	seen := make(map[int]bool, len(pairs))
	for _, p := range pairs {
		if p.Second != "w"+strconv.Itoa(p.First) {
			t.Fatalf("pair %v has the wrong index", p)
		}
		seen[p.First] = true
	}
	if len(seen) != 300 {
		t.Errorf("distinct indexes = %d, want 300", len(seen))
	}
}

func TestConcurrent_ZipLength(t *testing.T) {
	pairs := mustDump(t, Zip(Count(100).Concurrently(WithWorkers(3)), Count(40)))
	if len(pairs) != 100 {
		t.Fatalf("len = %d, want 100", len(pairs))
	}
	padded := 0
	for _, p := range pairs {
		if p.Second.IsEmpty() {
			padded++
		} else if p.First.MustGet() != p.Second.MustGet() {
			t.Fatalf("misaligned pair %v", p)
		}
	}
	if padded != 60 {
		t.Errorf("padded pairs = %d, want 60", padded)
	}
}

func TestConcurrent_Predicates(t *testing.T) {
	s := Count(1000).Concurrently(WithWorkers(4))

	found, err := s.Any(func(v int) (bool, error) { return v == 777, nil })
	if err != nil || !found {
		t.Errorf("Any = %v, %v", found, err)
	}
	all, err := s.All(func(v int) (bool, error) { return v < 1000, nil })
	if err != nil || !all {
		t.Errorf("All = %v, %v", all, err)
	}
	all, err = s.All(func(v int) (bool, error) { return v != 500, nil })
	if err != nil || all {
		t.Errorf("All = %v, %v; want false", all, err)
	}

	var visited atomic.Int64
	if err := s.Each(func(int) error { visited.Add(1); return nil }); err != nil {
		t.Fatal(err)
	}
	if visited.Load() != 1000 {
		t.Errorf("Each visited %d elements", visited.Load())
	}

	largest, err := s.Reduce(func(a, b int) (int, error) { return max(a, b), nil })
	if err != nil || largest.MustGet() != 999 {
		t.Errorf("Reduce = %v, %v", largest, err)
	}

	first, err := s.First()
	if err != nil || !first.IsPresent() {
		t.Errorf("First = %v, %v", first, err)
	}

	text, err := Of("x", "x", "x").Concurrently(WithWorkers(2)).Join("+")
	if err != nil || text != "x+x+x" {
		t.Errorf("Join = %q, %v", text, err)
	}
}

func TestConcurrent_Errors(t *testing.T) {
	boom := stderrors.New("boom")

	t.Run("map failure", func(t *testing.T) {
		s := Map(Count(100).Concurrently(WithWorkers(4)), func(v int) (int, error) {
			if v == 42 {
				return 0, boom
			}
			return v, nil
		})
		_, err := Sum(s)
		if !errors.IsIteration(err) || !stderrors.Is(err, boom) {
			t.Errorf("expected iteration error wrapping boom, got %v", err)
		}
	})

	t.Run("invalid engine option", func(t *testing.T) {
		s := Count(3).Concurrently(WithWorkers(-1))
		if !s.IsConcurrent() {
			t.Fatal("sequence should still be concurrent")
		}
		_, err := s.Dump(nil)
		if !errors.IsConfiguration(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
		_, err = Sum(Map(s, func(v int) (int, error) { return v, nil }))
		if !errors.IsConfiguration(err) {
			t.Errorf("derived sequence: expected configuration error, got %v", err)
		}
	})

	t.Run("nil engine", func(t *testing.T) {
		_, err := Count(3).ConcurrentlyWith(nil).Dump(nil)
		if !errors.IsConfiguration(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})
}

func TestConcurrent_SharedEngine(t *testing.T) {
	e, err := concurrent.New(concurrent.WithWorkers(3))
	if err != nil {
		t.Fatal(err)
	}
	a, err := Sum(Count(100).ConcurrentlyWith(e))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Sum(MustRange(1, 100).ConcurrentlyWith(e))
	if err != nil {
		t.Fatal(err)
	}
	if a != 4950 || b != 5050 {
		t.Errorf("sums = %d, %d", a, b)
	}
}

func TestConcurrent_IteratorIsSequential(t *testing.T) {
	s := Count(5).Concurrently(WithWorkers(4))
	var got []int
	for v, err := range s.Values() {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("Values = %v", got)
	}
}
