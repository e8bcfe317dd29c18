package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOMDb()
	c.normalizeNote()
	c.normalizeVault()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.VaultDir) == "" {
		if value, ok := os.LookupEnv(envVaultDir); ok {
			c.Paths.VaultDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.VaultDir, err = expandPath(strings.TrimSpace(c.Paths.VaultDir)); err != nil {
		return fmt.Errorf("paths.vault_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SettingsPath) == "" {
		c.Paths.SettingsPath = defaultSettingsPath
	}
	if c.Paths.SettingsPath, err = expandPath(c.Paths.SettingsPath); err != nil {
		return fmt.Errorf("paths.settings_path: %w", err)
	}
	return nil
}

// normalizeOMDb prefers the environment key over the file, matching how the
// key is resolved at fetch time.
func (c *Config) normalizeOMDb() {
	if value, ok := os.LookupEnv(envOMDbAPIKey); ok && strings.TrimSpace(value) != "" {
		c.OMDb.APIKey = value
	}
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	c.OMDb.Plot = strings.ToLower(strings.TrimSpace(c.OMDb.Plot))
	if c.OMDb.Plot == "" {
		c.OMDb.Plot = defaultOMDbPlot
	}
	if c.OMDb.TimeoutSeconds <= 0 {
		c.OMDb.TimeoutSeconds = defaultOMDbTimeout
	}
	if c.OMDb.Burst <= 0 {
		c.OMDb.Burst = defaultOMDbBurst
	}
}

func (c *Config) normalizeNote() {
	c.Note.AppName = strings.TrimSpace(c.Note.AppName)
	if c.Note.AppName == "" {
		c.Note.AppName = defaultAppName
	}
	c.Note.DateLayout = strings.TrimSpace(c.Note.DateLayout)
	if c.Note.DateLayout == "" {
		c.Note.DateLayout = defaultDateLayout
	}
	c.Note.DefaultMediaType = strings.TrimSpace(c.Note.DefaultMediaType)
}

func (c *Config) normalizeVault() {
	c.Vault.OnConflict = strings.ToLower(strings.TrimSpace(c.Vault.OnConflict))
	if c.Vault.OnConflict == "" {
		c.Vault.OnConflict = defaultOnConflict
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
