package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqkit/logger"
)

// MeterConfig configures periodic OTLP/HTTP metric export.
type MeterConfig struct {
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Environment    string        `mapstructure:"environment"`
	Endpoint       string        `mapstructure:"endpoint"`
	Insecure       bool          `mapstructure:"insecure"`
	Interval       time.Duration `mapstructure:"interval"` // zero keeps the SDK default
}

// DefaultMeterConfig exports to a local collector every 15s.
func DefaultMeterConfig(serviceName string) *MeterConfig {
	return &MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a periodic OTLP meter provider as the otel global.
// The caller shuts the provider down, which flushes pending points.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter for %s: %w", config.Endpoint, err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(config.ServiceName, config.ServiceVersion, config.Environment)),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Fold modes.
const (
	ModeSequential = "sequential"
	ModeConcurrent = "concurrent"
)

// Fold outcomes.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

// Instrument names.
const (
	MetricFoldTotal     = "seqkit.fold.total"
	MetricFoldDuration  = "seqkit.fold.duration"
	MetricFoldElements  = "seqkit.fold.elements"
	MetricFoldErrors    = "seqkit.fold.errors"
	MetricWorkersActive = "seqkit.fold.workers.active"
)

// FoldMetrics holds the metric instruments recorded by folds.
type FoldMetrics struct {
	foldTotal     metric.Int64Counter
	foldDuration  metric.Float64Histogram
	foldElements  metric.Int64Counter
	foldErrors    metric.Int64Counter
	workersActive metric.Int64UpDownCounter
}

// NewFoldMetrics creates fold instruments on the given meter.
func NewFoldMetrics(meter metric.Meter) (*FoldMetrics, error) {
	foldTotal, err := meter.Int64Counter(MetricFoldTotal,
		metric.WithDescription("Total number of completed folds"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFoldTotal, err)
	}

	foldDuration, err := meter.Float64Histogram(MetricFoldDuration,
		metric.WithDescription("Duration of folds in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFoldDuration, err)
	}

	foldElements, err := meter.Int64Counter(MetricFoldElements,
		metric.WithDescription("Number of elements combined by folds"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFoldElements, err)
	}

	foldErrors, err := meter.Int64Counter(MetricFoldErrors,
		metric.WithDescription("Fold failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFoldErrors, err)
	}

	workersActive, err := meter.Int64UpDownCounter(MetricWorkersActive,
		metric.WithDescription("Number of currently running fold workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricWorkersActive, err)
	}

	return &FoldMetrics{
		foldTotal:     foldTotal,
		foldDuration:  foldDuration,
		foldElements:  foldElements,
		foldErrors:    foldErrors,
		workersActive: workersActive,
	}, nil
}

// WorkerStarted increments the active worker count.
func (m *FoldMetrics) WorkerStarted(ctx context.Context) {
	m.workersActive.Add(ctx, 1)
}

// WorkerStopped decrements the active worker count.
func (m *FoldMetrics) WorkerStopped(ctx context.Context) {
	m.workersActive.Add(ctx, -1)
}

// RecordFold records a finished fold.
func (m *FoldMetrics) RecordFold(ctx context.Context, mode, status string, elements int64, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrMode, mode),
		attribute.String(AttrStatus, status),
	)
	m.foldTotal.Add(ctx, 1, attrs)
	m.foldElements.Add(ctx, elements, metric.WithAttributes(attribute.String(AttrMode, mode)))
	m.foldDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String(AttrMode, mode)))
}

// RecordError records a fold failure by error code.
func (m *FoldMetrics) RecordError(ctx context.Context, mode, code string) {
	m.foldErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrMode, mode),
		attribute.String(AttrCode, code),
	))
}
