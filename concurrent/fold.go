package concurrent

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/seqkit/cursor"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
)

// Run pulls every element of c with the engine's workers and calls visit for
// each one, from several goroutines at once. It returns the first error; the
// other workers stop pulling once an error occurred or ctx is done. Panics in
// visit are reported as iteration errors. c is closed once all workers have
// stopped.
func Run[T any](ctx context.Context, e *Engine, c cursor.Cursor[T], visit func(T) error) error {
	if e == nil {
		return errors.Configuration("concurrent: nil engine")
	}
	shared := cursor.Synchronized(c)
	workers := e.cfg.Workers
	runID := uuid.NewString()

	ctx, span := observability.StartSpan(ctx, observability.SpanConcurrentFold, trace.WithAttributes(
		attribute.String(observability.AttrRunID, runID),
		attribute.Int(observability.AttrWorkers, workers),
	))
	defer span.End()

	log := e.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldRunID, runID,
		logger.FieldWorkers, workers,
	))
	log.Debug("concurrent fold started")
	start := time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	var elements atomic.Int64
	for range workers {
		g.Go(func() error {
			if e.metrics != nil {
				e.metrics.WorkerStarted(ctx)
				defer e.metrics.WorkerStopped(ctx)
			}
			return work(gctx, shared, visit, &elements)
		})
	}

	done := make(chan error, 1)
	go func() {
		err := g.Wait()
		_ = shared.Close()
		done <- err
	}()

	err := e.wait(done, cancel)
	if err == nil {
		err = ctx.Err()
	}

	e.finish(ctx, log, err, elements.Load(), time.Since(start))
	return err
}

// wait blocks until the workers are done or the wait timeout elapses. On
// timeout the workers are told to stop but are not waited for.
func (e *Engine) wait(done <-chan error, cancel context.CancelFunc) error {
	if e.cfg.WaitTimeout <= 0 {
		return <-done
	}
	timer := time.NewTimer(e.cfg.WaitTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		cancel()
		return errors.Timeout("concurrent fold").WithDetail("wait_timeout", e.cfg.WaitTimeout.String())
	}
}

func (e *Engine) finish(ctx context.Context, log *logger.Logger, err error, elements int64, elapsed time.Duration) {
	observability.SetSpanAttribute(ctx, observability.AttrElements, elements)
	fields := logger.MergeWithDuration(logger.Fields(logger.FieldElements, elements), elapsed)

	status := observability.StatusOK
	switch {
	case err == nil:
		log.Debug("concurrent fold finished", fields)
	case errors.IsTimeout(err):
		status = observability.StatusTimeout
		log.Warn("concurrent fold timed out", fields)
	default:
		status = observability.StatusError
		log.WithError(err).Warn("concurrent fold failed", fields)
	}
	if err != nil {
		observability.SetSpanError(ctx, err)
	}

	if e.metrics == nil {
		return
	}
	e.metrics.RecordFold(ctx, observability.ModeConcurrent, status, elements, elapsed)
	if err != nil {
		code := string(errors.CodeOf(err))
		if code == "" {
			code = "CANCELED"
		}
		e.metrics.RecordError(ctx, observability.ModeConcurrent, code)
	}
}

// work is the loop of one worker.
func work[T any](ctx context.Context, shared *cursor.SyncCursor[T], visit func(T) error, elements *atomic.Int64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Iteration(fmt.Errorf("panic in fold worker: %v", r))
		}
	}()
	for {
		if ctx.Err() != nil {
			return nil
		}
		v, ok, err := shared.TryNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		elements.Add(1)
		if err := visit(v); err != nil {
			return errors.Iteration(err)
		}
	}
}

// Driver feeds elements to visit, possibly from several goroutines at once,
// and returns the first error.
type Driver[T any] func(ctx context.Context, visit func(T) error) error

// Drive returns a Driver that runs c on e.
func Drive[T any](e *Engine, c cursor.Cursor[T]) Driver[T] {
	return func(ctx context.Context, visit func(T) error) error {
		return Run(ctx, e, c, visit)
	}
}

// Fold combines every element of c into initial using the engine's workers.
func Fold[T, V any](ctx context.Context, e *Engine, c cursor.Cursor[T], initial V, combine func(V, T) (V, error)) (V, error) {
	return FoldDriver(ctx, Drive(e, c), initial, combine)
}

// FoldDriver combines every element fed by d into initial. The accumulator
// mutex is held across each read, combine and store, and the result of a
// failed combine is discarded. On error the accumulator as of the failure is
// returned with it, except after a wait timeout, where workers may still be
// running and the zero value is returned.
func FoldDriver[T, V any](ctx context.Context, d Driver[T], initial V, combine func(V, T) (V, error)) (V, error) {
	var mu sync.Mutex
	acc := initial
	err := d(ctx, func(v T) error {
		mu.Lock()
		defer mu.Unlock()
		next, err := combine(acc, v)
		if err != nil {
			return err
		}
		acc = next
		return nil
	})
	if errors.IsTimeout(err) {
		var zero V
		return zero, err
	}
	mu.Lock()
	defer mu.Unlock()
	return acc, err
}

// Dump appends every element of c to dst using the engine's workers. The
// order of the appended elements is unspecified. Appends never write into
// dst's spare capacity, so workers left running by a wait timeout cannot
// touch the caller's array.
func Dump[T any](ctx context.Context, e *Engine, c cursor.Cursor[T], dst []T) ([]T, error) {
	return Fold(ctx, e, c, slices.Clip(dst), func(acc []T, v T) ([]T, error) {
		return append(acc, v), nil
	})
}
