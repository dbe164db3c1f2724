package concurrent

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want GOMAXPROCS", cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
concurrent:
  workers: 12
  wait_timeout: 5s
logging:
  level: debug
  format: json
`)
	fc, err := LoadConfig(config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if fc.Concurrent.Workers != 12 || fc.Concurrent.WaitTimeout != 5*time.Second {
		t.Errorf("unexpected concurrent config %+v", fc.Concurrent)
	}
	if fc.Logging.Level != "debug" || fc.Logging.Output != "stdout" {
		t.Errorf("unexpected logging config %+v", fc.Logging)
	}

	e, err := New(WithConfig(fc.Concurrent))
	if err != nil {
		t.Fatal(err)
	}
	if e.Workers() != 12 {
		t.Errorf("engine workers = %d, want 12", e.Workers())
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	path := writeConfig(t, "concurrent:\n  workers: 12\n")
	t.Setenv("SEQKIT_CONCURRENT_WORKERS", "3")

	fc, err := LoadConfig(config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if fc.Concurrent.Workers != 3 {
		t.Errorf("Workers = %d, want 3", fc.Concurrent.Workers)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	fc, err := LoadConfig(config.WithConfigFile(filepath.Join(t.TempDir(), "missing.yml")))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if fc.Concurrent.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers = %d, want GOMAXPROCS", fc.Concurrent.Workers)
	}
	if fc.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", fc.Logging.Level)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative workers", "concurrent:\n  workers: -3\n"},
		{"bad logging level", "logging:\n  level: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(config.WithConfigFile(writeConfig(t, tt.content)))
			if !errors.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}
