package main

import (
	"time"

	"github.com/kbukum/seqkit/concurrent"
	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/validation"
	"github.com/kbukum/seqkit/version"
)

const serviceName = "seqbench"

// Config is the layout of cmd/seqbench/config.yml.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Concurrent concurrent.Config `yaml:"concurrent" mapstructure:"concurrent"`
	Bench      BenchConfig       `yaml:"bench" mapstructure:"bench"`
	Telemetry  TelemetryConfig   `yaml:"telemetry" mapstructure:"telemetry"`
}

// BenchConfig sizes the workload.
type BenchConfig struct {
	// Count is the number of integers spelled per round.
	Count int `yaml:"count" mapstructure:"count" validate:"gte=1"`
	// Delay is slept before spelling each integer.
	Delay  time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	Rounds int      `yaml:"rounds" mapstructure:"rounds" validate:"gte=1,lte=100"`
}

// TelemetryConfig switches OTLP export on.
type TelemetryConfig struct {
	Tracing bool                       `yaml:"tracing" mapstructure:"tracing"`
	Metrics bool                       `yaml:"metrics" mapstructure:"metrics"`
	Tracer  observability.TracerConfig `yaml:"tracer" mapstructure:"tracer"`
	Meter   observability.MeterConfig  `yaml:"meter" mapstructure:"meter"`
}

var defaults = map[string]any{
	"name":                         serviceName,
	"bench.count":                  1000,
	"bench.delay":                  "1ms",
	"bench.rounds":                 1,
	"telemetry.tracer.endpoint":    "localhost:4318",
	"telemetry.tracer.insecure":    true,
	"telemetry.tracer.sample_rate": 1.0,
	"telemetry.meter.endpoint":     "localhost:4318",
	"telemetry.meter.insecure":     true,
	"telemetry.meter.interval":     "15s",
}

// loadConfig reads config.yml, .env and SEQBENCH_* variables on top of the
// built-in defaults.
func loadConfig(opts ...config.LoaderOption) (*Config, error) {
	opts = append([]config.LoaderOption{
		config.WithEnvPrefix("SEQBENCH"),
		config.WithDefaults(defaults),
	}, opts...)

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Concurrent.ApplyDefaults()

	for _, svc := range []struct{ name, version, env *string }{
		{&c.Telemetry.Tracer.ServiceName, &c.Telemetry.Tracer.ServiceVersion, &c.Telemetry.Tracer.Environment},
		{&c.Telemetry.Meter.ServiceName, &c.Telemetry.Meter.ServiceVersion, &c.Telemetry.Meter.Environment},
	} {
		if *svc.name == "" {
			*svc.name = c.Name
		}
		if *svc.version == "" {
			*svc.version = c.Version
		}
		if *svc.env == "" {
			*svc.env = c.Environment
		}
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Concurrent.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Bench); err != nil {
		return err
	}

	v := validation.New()
	rate := c.Telemetry.Tracer.SampleRate
	v.Custom(rate >= 0 && rate <= 1, "telemetry.tracer.sample_rate", "must be between 0 and 1")
	if c.Telemetry.Tracing {
		v.Custom(c.Telemetry.Tracer.Endpoint != "", "telemetry.tracer.endpoint", "is required when tracing is enabled")
	}
	if c.Telemetry.Metrics {
		v.Custom(c.Telemetry.Meter.Endpoint != "", "telemetry.meter.endpoint", "is required when metrics are enabled")
	}
	return v.Validate()
}
