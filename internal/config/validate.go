package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. A missing API key or vault is
// not an error here; both may still come from the settings store.
func (c *Config) Validate() error {
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateNote(); err != nil {
		return err
	}
	if err := c.validateVault(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOMDb() error {
	parsed, err := url.Parse(c.OMDb.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("omdb.base_url must be an absolute URL, got %q", c.OMDb.BaseURL)
	}
	switch c.OMDb.Plot {
	case "short", "full":
	default:
		return fmt.Errorf("omdb.plot must be short or full, got %q", c.OMDb.Plot)
	}
	if c.OMDb.TimeoutSeconds <= 0 {
		return errors.New("omdb.timeout_seconds must be positive")
	}
	if c.OMDb.RequestsPerSecond < 0 {
		return errors.New("omdb.requests_per_second must not be negative")
	}
	if c.OMDb.Burst <= 0 {
		return errors.New("omdb.burst must be positive")
	}
	return nil
}

func (c *Config) validateNote() error {
	if strings.ContainsAny(c.Note.AppName, "\r\n") {
		return errors.New("note.app_name must be a single line")
	}
	if strings.ContainsAny(c.Note.DateLayout, "\r\n") {
		return errors.New("note.date_layout must be a single line")
	}
	return nil
}

func (c *Config) validateVault() error {
	switch c.Vault.OnConflict {
	case ConflictAsk, ConflictOverwrite, ConflictCopy, ConflictCancel:
		return nil
	default:
		return fmt.Errorf("vault.on_conflict must be one of ask, overwrite, copy, cancel; got %q", c.Vault.OnConflict)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
