package concurrent

import (
	"runtime"
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/validation"
)

// MaxWorkers bounds the size of a worker pool.
const MaxWorkers = 4096

// Config configures the worker pool of an Engine.
type Config struct {
	// Workers is the number of goroutines pulling from the shared cursor.
	// Zero selects runtime.GOMAXPROCS(0).
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0,lte=4096"`
	// WaitTimeout bounds how long a fold waits for its workers. Zero waits
	// until they finish.
	WaitTimeout time.Duration `yaml:"wait_timeout" mapstructure:"wait_timeout" validate:"gte=0"`
}

// DefaultConfig returns a Config sized to the current GOMAXPROCS.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
}

// Validate reports invalid settings as a configuration error.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// FileConfig is the layout of a seqkit config.yml.
type FileConfig struct {
	Concurrent Config        `yaml:"concurrent" mapstructure:"concurrent"`
	Logging    logger.Config `yaml:"logging" mapstructure:"logging"`
}

// LoadConfig reads the concurrent and logging sections from config.yml,
// .env and SEQKIT_* environment variables, applies defaults and validates
// the result. Later options override the SEQKIT prefix.
func LoadConfig(opts ...config.LoaderOption) (*FileConfig, error) {
	opts = append([]config.LoaderOption{config.WithEnvPrefix("SEQKIT")}, opts...)

	var fc FileConfig
	if err := config.LoadConfig("seqkit", &fc, opts...); err != nil {
		return nil, err
	}

	fc.Concurrent.ApplyDefaults()
	fc.Logging.ApplyDefaults()
	if err := fc.Concurrent.Validate(); err != nil {
		return nil, err
	}
	if err := fc.Logging.Validate(); err != nil {
		return nil, err
	}
	return &fc, nil
}
