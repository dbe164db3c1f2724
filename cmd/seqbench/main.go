// Command seqbench times a sequential and a concurrent dump of the same slow
// sequence: every integer below bench.count is spelled out digit by digit
// after a short pause.
//
// Settings come from cmd/seqbench/config.yml, an optional .env file and
// SEQBENCH_* environment variables, e.g. SEQBENCH_CONCURRENT_WORKERS=64.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/version"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	envFile := flag.String("env", "", "path to a .env file")
	workers := flag.Int("workers", 0, "override concurrent.workers")
	count := flag.Int("count", 0, "override bench.count")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get())
		return
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	if err := run(opts, *workers, *count); err != nil {
		fmt.Fprintf(os.Stderr, "seqbench: %v\n", err)
		os.Exit(1)
	}
}

func run(opts []config.LoaderOption, workers, count int) error {
	cfg, err := loadConfig(opts...)
	if err != nil {
		return err
	}
	if workers > 0 {
		cfg.Concurrent.Workers = workers
	}
	if count > 0 {
		cfg.Bench.Count = count
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(&cfg.Logging)
	log := logger.Get(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, metrics, err := setupTelemetry(ctx, cfg.Telemetry)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			log.WithError(err).Warn("telemetry shutdown failed")
		}
	}()
	if err != nil {
		return err
	}

	bench, err := newBench(cfg, metrics, log)
	if err != nil {
		return err
	}
	log.Info("starting", logger.Fields(
		"version", cfg.Version,
		logger.FieldWorkers, bench.engine.Workers(),
		"count", cfg.Bench.Count,
		"delay", cfg.Bench.Delay.String(),
	))

	results, err := bench.Run(ctx)
	newReport(cfg.Name, cfg.Version, cfg.Bench.Count, results).Display(os.Stdout)
	return err
}
