package logger

import (
	"slices"

	"github.com/kbukum/seqkit/errors"
)

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	validFormats = []string{"json", "console", "pretty"}
	validOutputs = []string{"stdout", "stderr"}
)

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Level) {
		return errors.Configuration("logging.level is not a known level").
			WithDetails(map[string]any{"value": c.Level, "allowed": validLevels})
	}
	if !slices.Contains(validFormats, c.Format) {
		return errors.Configuration("logging.format is not a known format").
			WithDetails(map[string]any{"value": c.Format, "allowed": validFormats})
	}
	if !slices.Contains(validOutputs, c.Output) {
		return errors.Configuration("logging.output must be stdout or stderr").
			WithDetail("value", c.Output)
	}
	return nil
}
