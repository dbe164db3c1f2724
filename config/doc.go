// Package config loads configuration for seqkit programs.
//
// It uses Viper to read a config.yml file, then overlays environment
// variables (optionally restricted to a prefix) and an optional .env file,
// and unmarshals the result into a caller-provided struct.
//
// # Usage
//
//	var cfg struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Concurrent concurrent.Config `mapstructure:"concurrent"`
//	}
//	err := config.LoadConfig("seqbench", &cfg, config.WithEnvPrefix("SEQBENCH"))
//
// With the SEQBENCH prefix, SEQBENCH_CONCURRENT_WORKERS=8 overrides
// concurrent.workers.
package config
