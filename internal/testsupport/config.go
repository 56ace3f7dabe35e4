package testsupport

import (
	"path/filepath"
	"testing"

	"mangareel/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogPath = filepath.Join(base, "manga_list.json")
	cfg.Paths.LedgerPath = filepath.Join(base, "used.json")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.AssetsDir = filepath.Join(base, "assets")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

// WithBatchSize overrides the batch size on the test config.
func WithBatchSize(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Video.BatchSize = n
	}
}

// WithEmail fills in SMTP settings on the test config.
func WithEmail(host string, port int, from, to string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Email.Host = host
		cfg.Email.Port = port
		cfg.Email.From = from
		cfg.Email.To = to
		cfg.Email.Username = from
		cfg.Email.Password = "secret"
	}
}
