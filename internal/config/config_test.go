package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"movielog/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("MOVIELOG_VAULT", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "movielog")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	wantSettings := filepath.Join(tempHome, ".config", "movielog", "settings.toml")
	if cfg.Paths.SettingsPath != wantSettings {
		t.Fatalf("unexpected settings path: got %q want %q", cfg.Paths.SettingsPath, wantSettings)
	}
	if cfg.Paths.VaultDir != "" {
		t.Fatalf("expected no vault by default, got %q", cfg.Paths.VaultDir)
	}
	if cfg.OMDb.BaseURL != config.Default().OMDb.BaseURL {
		t.Fatalf("unexpected OMDb base url: %q", cfg.OMDb.BaseURL)
	}
	if cfg.Vault.OnConflict != config.ConflictAsk {
		t.Fatalf("expected ask conflict policy, got %q", cfg.Vault.OnConflict)
	}
	if cfg.Note.DateLayout != "1/2/2006" || cfg.Note.AppName != "MovieLoggerApp" {
		t.Fatalf("unexpected note defaults: %+v", cfg.Note)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.HistoryPath() != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.HistoryPath())
	}
	if cfg.LogPath() != "" {
		t.Fatalf("expected file logging off by default, got %q", cfg.LogPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.StateDir); err != nil || !info.IsDir() {
		t.Fatalf("expected state dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "movielog.toml")
	t.Setenv("OMDB_API_KEY", "")

	type payload struct {
		Paths struct {
			VaultDir string `toml:"vault_dir"`
		} `toml:"paths"`
		OMDb struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
			Plot    string `toml:"plot"`
		} `toml:"omdb"`
		Vault struct {
			OnConflict string `toml:"on_conflict"`
		} `toml:"vault"`
		Logging struct {
			Dir string `toml:"dir"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.VaultDir = filepath.Join(tempDir, "vault")
	custom.OMDb.APIKey = "abc123"
	custom.OMDb.BaseURL = "https://example.com/omdb/"
	custom.OMDb.Plot = "FULL"
	custom.Vault.OnConflict = " Copy "
	custom.Logging.Dir = filepath.Join(tempDir, "logs")
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.OMDb.APIKey != "abc123" {
		t.Fatalf("expected OMDb key from file, got %q", cfg.OMDb.APIKey)
	}
	if cfg.OMDb.BaseURL != "https://example.com/omdb/" {
		t.Fatalf("expected OMDb base url override, got %q", cfg.OMDb.BaseURL)
	}
	if cfg.OMDb.Plot != "full" {
		t.Fatalf("expected normalized plot, got %q", cfg.OMDb.Plot)
	}
	if cfg.Vault.OnConflict != config.ConflictCopy {
		t.Fatalf("expected normalized conflict policy, got %q", cfg.Vault.OnConflict)
	}
	if cfg.Paths.VaultDir != custom.Paths.VaultDir {
		t.Fatalf("unexpected vault dir: %q", cfg.Paths.VaultDir)
	}
	if cfg.LogPath() != filepath.Join(tempDir, "logs", "movielog.log") {
		t.Fatalf("unexpected log path: %q", cfg.LogPath())
	}
}

func TestEnvOverridesConfigFileAPIKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "movielog.toml")
	if err := os.WriteFile(configPath, []byte("[omdb]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OMDB_API_KEY", "env-key")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.OMDb.APIKey != "env-key" {
		t.Errorf("expected OMDb key from env, got %q", cfg.OMDb.APIKey)
	}
}

func TestVaultEnvFillsEmptyVaultDir(t *testing.T) {
	vaultDir := t.TempDir()
	t.Setenv("MOVIELOG_VAULT", vaultDir)
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.VaultDir != vaultDir {
		t.Fatalf("expected vault dir from env, got %q", cfg.Paths.VaultDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[omdb]") {
		t.Fatalf("sample config missing omdb section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Vault.OnConflict != config.ConflictAsk {
		t.Fatalf("expected sample conflict policy ask, got %q", cfg.Vault.OnConflict)
	}

	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("MOVIELOG_VAULT", "")
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"relative base url", func(c *config.Config) { c.OMDb.BaseURL = "omdbapi.com" }},
		{"bad plot", func(c *config.Config) { c.OMDb.Plot = "medium" }},
		{"zero timeout", func(c *config.Config) { c.OMDb.TimeoutSeconds = 0 }},
		{"negative rate", func(c *config.Config) { c.OMDb.RequestsPerSecond = -1 }},
		{"zero burst", func(c *config.Config) { c.OMDb.Burst = 0 }},
		{"multi-line app name", func(c *config.Config) { c.Note.AppName = "a\nb" }},
		{"unknown conflict policy", func(c *config.Config) { c.Vault.OnConflict = "merge" }},
		{"unknown log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
