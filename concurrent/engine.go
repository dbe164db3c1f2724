package concurrent

import (
	"time"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
)

// Engine holds the settings and instrumentation shared by concurrent folds.
// An Engine is immutable and safe for use by several folds at once.
type Engine struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.FoldMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of workers. Zero selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(e *Engine) { e.cfg.Workers = n }
}

// WithWaitTimeout bounds how long a fold waits for its workers. A fold that
// times out returns while its workers may still be running, so they can keep
// calling the fold's callbacks.
func WithWaitTimeout(d time.Duration) Option {
	return func(e *Engine) { e.cfg.WaitTimeout = d }
}

// WithConfig replaces the whole worker configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the logger used for fold lifecycle events.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics enables fold metrics.
func WithMetrics(m *observability.FoldMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New builds an Engine. Invalid settings yield a configuration error.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg.ApplyDefaults()
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.log == nil {
		e.log = logger.Get("seqkit.concurrent")
	}
	return e, nil
}

// Workers returns the size of the worker pool.
func (e *Engine) Workers() int { return e.cfg.Workers }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }
