package main

import (
	"context"
	stderrors "errors"

	"github.com/kbukum/seqkit/observability"
)

// setupTelemetry starts the exporters enabled in cfg. The returned shutdown
// flushes them; metrics is nil unless metric export is on.
func setupTelemetry(ctx context.Context, cfg TelemetryConfig) (shutdown func(context.Context) error, metrics *observability.FoldMetrics, err error) {
	var shutdowns []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return stderrors.Join(errs...)
	}

	if cfg.Tracing {
		tp, err := observability.InitTracer(ctx, &cfg.Tracer)
		if err != nil {
			return shutdown, nil, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if cfg.Metrics {
		mp, err := observability.InitMeter(ctx, &cfg.Meter)
		if err != nil {
			return shutdown, nil, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)

		metrics, err = observability.NewFoldMetrics(observability.Meter(serviceName))
		if err != nil {
			return shutdown, nil, err
		}
	}
	return shutdown, metrics, nil
}
