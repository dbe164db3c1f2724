// Package observability provides OpenTelemetry tracing and metrics for
// seqkit folds.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("seqbench"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanConcurrentFold)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("seqbench"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewFoldMetrics(observability.Meter("seqbench"))
//	metrics.RecordFold(ctx, observability.ModeConcurrent, observability.StatusOK, 1000, elapsed)
package observability
