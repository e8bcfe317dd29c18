package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"movielog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test:
// an existing empty vault, a state dir, and a settings file path. Pacing is
// disabled so tests never wait on the limiter.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.OMDb.APIKey = "test"
	cfgVal.OMDb.RequestsPerSecond = 0
	cfgVal.Paths.VaultDir = filepath.Join(base, "vault")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.SettingsPath = filepath.Join(base, "config", "settings.toml")
	if err := os.MkdirAll(cfgVal.Paths.VaultDir, 0o755); err != nil {
		t.Fatalf("mkdir vault: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the OMDb API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = key
	}
}

// WithOMDbURL points the config at a fake OMDb server.
func WithOMDbURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.BaseURL = url
	}
}

// WithoutVault clears the vault directory so tests exercise the unconfigured path.
func WithoutVault() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.VaultDir = ""
	}
}

// WithOnConflict sets the vault conflict policy.
func WithOnConflict(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Vault.OnConflict = policy
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
