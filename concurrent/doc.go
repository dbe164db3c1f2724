// Package concurrent fans a single fold out across a pool of worker
// goroutines that share one synchronized cursor.
//
// Every element is handed to exactly one worker. Elements are combined in
// an unspecified order, so combine functions must be associative and
// commutative. The accumulator is guarded by a single mutex held across each
// read, combine and store; a failed combine leaves it untouched.
//
// # Configuration
//
//	concurrent:
//	  workers: 8          # 0 means runtime.GOMAXPROCS(0)
//	  wait_timeout: 30s   # 0 waits forever
//
// # Usage
//
//	engine, err := concurrent.New(concurrent.WithWorkers(8))
//	sum, err := concurrent.Fold(ctx, engine, c, 0, func(acc, v int) (int, error) {
//	    return acc + v, nil
//	})
package concurrent
