package preflight

import (
	"context"

	"movielog/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Targets are the resolved locations to check. The vault path and API key
// may come from the settings store, so callers resolve them first and pass
// any error reading that store as SettingsErr.
type Targets struct {
	VaultDir    string
	APIKey      string
	SettingsErr error
}

// RunAll executes every applicable check for cfg.
func RunAll(ctx context.Context, cfg *config.Config, targets Targets) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if targets.SettingsErr != nil {
		results = append(results, Result{Name: "Settings file", Detail: targets.SettingsErr.Error()})
	}

	if targets.VaultDir == "" {
		results = append(results, Result{Name: "Vault directory", Detail: "not configured"})
	} else {
		results = append(results, CheckDirectoryAccess("Vault directory", targets.VaultDir))
	}

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	results = append(results, CheckOMDb(ctx, cfg.OMDb.BaseURL, targets.APIKey))

	return results
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
