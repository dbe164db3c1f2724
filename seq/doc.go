// Package seq provides lazy, reusable sequences and the combinators built
// on them.
//
// A Sequence is a factory of cursors: nothing runs until a terminal
// operation pulls values, and every terminal call starts a fresh cursor, so
// the same Sequence can be iterated any number of times. All terminal
// operations are folds.
//
//	odd := seq.MustRange(1, 9).Reject(func(v int) (bool, error) { return v%2 == 0, nil })
//	text, err := odd.Join(",") // "1,3,5,7,9"
//
// Operations that keep the element type are methods; operations that change
// it are functions, since Go methods cannot introduce type parameters:
//
//	squares := seq.Map(seq.Count(10), func(v int) (int, error) { return v * v, nil })
//	total, err := seq.Fold(seq.Count(10), 0, func(acc, v int) (int, error) {
//	    return acc + v, nil
//	})
//
// # Concurrent folds
//
// Concurrently returns a view of the sequence whose folds run on a worker
// pool. Map and Select applied after Concurrently run their functions on
// the workers; anything applied before it runs under the shared cursor's
// lock. Element order is unspecified for concurrent folds.
//
//	names, err := seq.Map(seq.Count(1000).Concurrently(seq.WithWorkers(16)), slowLookup).
//	    Dump(nil)
package seq
