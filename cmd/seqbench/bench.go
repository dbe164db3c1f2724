package main

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqkit/concurrent"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/seq"
)

var digitWords = [...]string{"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

// spell writes n digit by digit: 105 gives "One Zero Five".
func spell(n int) string {
	digits := strconv.Itoa(n)
	words := make([]string, 0, len(digits))
	for _, d := range digits {
		if d == '-' {
			words = append(words, "Minus")
			continue
		}
		words = append(words, digitWords[d-'0'])
	}
	return strings.Join(words, " ")
}

// slowSpell is spell behind a fixed pause, standing in for I/O.
func slowSpell(delay time.Duration) func(int) (string, error) {
	return func(n int) (string, error) {
		if delay > 0 {
			time.Sleep(delay)
		}
		return spell(n), nil
	}
}

// Result is the outcome of one timed dump.
type Result struct {
	Round    int
	Mode     string
	Workers  int
	Elements int
	Duration time.Duration
	Err      error
}

// Bench times sequential and concurrent dumps of the same workload.
type Bench struct {
	cfg     BenchConfig
	engine  *concurrent.Engine
	metrics *observability.FoldMetrics
	log     *logger.Logger
}

func newBench(cfg *Config, metrics *observability.FoldMetrics, log *logger.Logger) (*Bench, error) {
	opts := []concurrent.Option{
		concurrent.WithConfig(cfg.Concurrent),
		concurrent.WithLogger(log.WithComponent("seqkit.concurrent")),
	}
	if metrics != nil {
		opts = append(opts, concurrent.WithMetrics(metrics))
	}
	engine, err := concurrent.New(opts...)
	if err != nil {
		return nil, err
	}
	return &Bench{cfg: cfg.Bench, engine: engine, metrics: metrics, log: log}, nil
}

// Run runs every round and returns the results in order. A round whose two
// dumps disagree fails the run.
func (b *Bench) Run(ctx context.Context) ([]Result, error) {
	ctx, span := observability.StartSpan(ctx, "seqbench.run", trace.WithAttributes(
		attribute.Int("bench.count", b.cfg.Count),
		attribute.Int("bench.rounds", b.cfg.Rounds),
	))
	defer span.End()

	spellIt := slowSpell(b.cfg.Delay)
	sequential := seq.Map(seq.Count(b.cfg.Count), spellIt)
	// Map after ConcurrentlyWith so the pause runs on the workers.
	parallel := seq.Map(seq.Count(b.cfg.Count).ConcurrentlyWith(b.engine), spellIt)

	results := make([]Result, 0, 2*b.cfg.Rounds)
	for round := 1; round <= b.cfg.Rounds; round++ {
		seqWords, seqResult := b.dump(ctx, round, observability.ModeSequential, 1, sequential)
		parWords, parResult := b.dump(ctx, round, observability.ModeConcurrent, b.engine.Workers(), parallel)
		results = append(results, seqResult, parResult)

		if err := firstErr(seqResult.Err, parResult.Err); err != nil {
			observability.SetSpanError(ctx, err)
			return results, err
		}
		if !sameWords(seqWords, parWords) {
			err := errors.New(errors.CodeIteration, "concurrent dump differs from sequential dump").
				WithDetail("round", round)
			observability.SetSpanError(ctx, err)
			return results, err
		}
		b.log.Info("round finished", logger.Fields(
			"round", round,
			"sequential", seqResult.Duration.String(),
			"concurrent", parResult.Duration.String(),
		))
	}
	return results, nil
}

func (b *Bench) dump(ctx context.Context, round int, mode string, workers int, s *seq.Sequence[string]) ([]string, Result) {
	start := time.Now()
	words, err := seq.FoldContext(ctx, s, make([]string, 0, b.cfg.Count), func(acc []string, w string) ([]string, error) {
		return append(acc, w), nil
	})
	res := Result{
		Round:    round,
		Mode:     mode,
		Workers:  workers,
		Elements: len(words),
		Duration: time.Since(start),
		Err:      err,
	}

	// Concurrent folds are recorded by the engine itself.
	if b.metrics != nil && mode == observability.ModeSequential {
		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
			b.metrics.RecordError(ctx, mode, string(errors.CodeOf(err)))
		}
		b.metrics.RecordFold(ctx, mode, status, int64(res.Elements), res.Duration)
	}
	return words, res
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
