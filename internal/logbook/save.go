package logbook

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"movielog/internal/config"
	"movielog/internal/history"
	"movielog/internal/logging"
	"movielog/internal/note"
	"movielog/internal/services"
	"movielog/internal/settings"
	"movielog/internal/vault"
)

// SaveOptions tunes a single Save call.
type SaveOptions struct {
	// OnConflict overrides the configured policy when set.
	OnConflict string
	DryRun     bool
}

// VaultDir resolves the vault directory: config file or MOVIELOG_VAULT
// first, then the settings store.
func (s *Service) VaultDir() (dir, source string, err error) {
	if dir = strings.TrimSpace(s.cfg.Paths.VaultDir); dir != "" {
		return dir, SourceConfig, nil
	}
	return s.lookupSetting(settings.KeyVaultPath)
}

func (s *Service) openVault() (*vault.Vault, Result, error) {
	dir, _, err := s.VaultDir()
	if err != nil {
		return nil, failure(fmt.Sprintf("Could not read settings: %v", err)), err
	}
	v, err := vault.Open(dir)
	if err != nil {
		res := failure(fmt.Sprintf("Vault unavailable: %v", err))
		if errors.Is(err, vault.ErrNotConfigured) {
			res = failure(MsgVaultNotConfigured)
		}
		return nil, res, services.Wrap(services.ErrConfiguration, component, "vault", "", err)
	}
	return v, Result{}, nil
}

// Save renders rec and writes it into the vault. When the file name is taken
// the conflict policy decides between overwriting, writing a numbered copy,
// and canceling. A canceled save returns an unsuccessful Result and a nil
// error.
func (s *Service) Save(ctx context.Context, rec note.MovieRecord, opts SaveOptions) (Result, error) {
	logger := logging.WithContext(ctx, s.logger)

	v, res, err := s.openVault()
	if err != nil {
		return res, err
	}

	content := s.renderer.Render(rec)
	fileName := note.FileName(rec)
	target := v.Path(fileName)

	if opts.DryRun {
		dry := Result{Success: true, Message: "Dry run: would save to: " + target, Path: target, Content: content}
		if v.Exists(fileName) {
			dry.Message += " (file exists)"
		}
		return dry, nil
	}

	res, err = s.write(ctx, v, fileName, []byte(content), opts)
	if err != nil {
		logging.ErrorWithContext(logger, "note write failed", "note_write_failed",
			logging.String(logging.FieldTitle, rec.Label()),
			logging.String(logging.FieldPath, target),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
		)
		return res, err
	}
	res.Content = content
	if !res.Success {
		logger.Info("note save canceled",
			logging.String(logging.FieldEventType, "note_save_canceled"),
			logging.String(logging.FieldTitle, rec.Label()),
		)
		return res, nil
	}

	logger.Info("note saved",
		logging.String(logging.FieldEventType, "note_saved"),
		logging.String(logging.FieldTitle, rec.Label()),
		logging.String(logging.FieldPath, res.Path),
		logging.String("action", string(res.Action)),
	)
	s.recordHistory(ctx, rec, v, res)
	return res, nil
}

func (s *Service) write(ctx context.Context, v *vault.Vault, fileName string, data []byte, opts SaveOptions) (Result, error) {
	err := v.Write(fileName, data, vault.WriteExclusive)
	if err == nil {
		path := v.Path(fileName)
		return Result{Success: true, Message: "Successfully logged movie to: " + path, Path: path, Action: history.ActionCreated}, nil
	}
	if !errors.Is(err, vault.ErrExists) {
		return failure(fmt.Sprintf("Error saving file: %v", err)), services.Wrap(services.ErrTransient, component, "save", "write note", err)
	}

	decision, err := s.decide(ctx, Conflict{FileName: fileName, Path: v.Path(fileName)}, opts.OnConflict)
	if err != nil {
		return failure(MsgSaveCanceled), services.Wrap(services.ErrCanceled, component, "save", "conflict prompt", err)
	}

	switch decision {
	case DecisionOverwrite:
		if err := v.Write(fileName, data, vault.WriteOverwrite); err != nil {
			return failure(fmt.Sprintf("Error saving file: %v", err)), services.Wrap(services.ErrTransient, component, "save", "overwrite note", err)
		}
		path := v.Path(fileName)
		return Result{Success: true, Message: "Overwrote existing file: " + path, Path: path, Action: history.ActionOverwritten}, nil
	case DecisionCopy:
		name, err := v.CreateExclusive(fileName, data)
		if err != nil {
			return failure(fmt.Sprintf("Error saving file: %v", err)), services.Wrap(services.ErrTransient, component, "save", "write copy", err)
		}
		path := v.Path(name)
		return Result{Success: true, Message: "Saved as: " + path, Path: path, Action: history.ActionCopied}, nil
	default:
		return failure(MsgSaveCanceled), nil
	}
}

func (s *Service) decide(ctx context.Context, conflict Conflict, override string) (Decision, error) {
	policy := strings.ToLower(strings.TrimSpace(override))
	if policy == "" {
		policy = s.cfg.Vault.OnConflict
	}
	if decision, fixed := decisionForPolicy(policy); fixed {
		return decision, nil
	}
	if s.prompter == nil {
		logging.WarnWithContext(s.logger, "no interactive prompt available; canceling save", "conflict_prompt_unavailable",
			logging.String(logging.FieldPath, conflict.Path),
			logging.String(logging.FieldErrorHint, "pass --on-conflict overwrite or copy"),
			logging.String(logging.FieldImpact, "note not written"),
		)
		return DecisionCancel, nil
	}
	return s.prompter.ResolveConflict(ctx, conflict)
}

func (s *Service) recordHistory(ctx context.Context, rec note.MovieRecord, v *vault.Vault, res Result) {
	if s.history == nil {
		return
	}
	_, err := s.history.Record(ctx, history.Entry{
		Title:    rec.Title,
		Year:     rec.Year,
		IMDbID:   rec.IMDbID,
		FileName: filepath.Base(res.Path),
		VaultDir: v.Dir(),
		Action:   res.Action,
	})
	if err != nil {
		logging.WarnWithContext(s.logger, "history append failed", "history_append_failed",
			logging.String(logging.FieldPath, res.Path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "note saved but missing from history"),
		)
	}
}

// SetVaultPath validates dir and stores it as the vault location.
func (s *Service) SetVaultPath(dir string) (Result, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(dir))
	if err != nil {
		return failure(fmt.Sprintf("Invalid vault path: %v", err)), services.Wrap(services.ErrValidation, component, "vault", "expand path", err)
	}
	v, err := vault.Open(expanded)
	if err != nil {
		if errors.Is(err, vault.ErrNotConfigured) {
			return failure("No path provided"), services.Wrap(services.ErrValidation, component, "vault", "", err)
		}
		return failure(fmt.Sprintf("Invalid vault path: %v", err)), services.Wrap(services.ErrValidation, component, "vault", "", err)
	}
	if err := s.store.Set(settings.KeyVaultPath, v.Dir()); err != nil {
		return failure(fmt.Sprintf("Could not save vault path: %v", err)), services.Wrap(services.ErrTransient, component, "vault", "persist", err)
	}
	msg := "Vault path set to: " + v.Dir()
	if dir, source, _ := s.VaultDir(); source == SourceConfig && dir != v.Dir() {
		msg += fmt.Sprintf(" (note: the config file or MOVIELOG_VAULT still selects %s)", dir)
	}
	return Result{Success: true, Message: msg, Path: v.Dir()}, nil
}

// VaultStatus reports whether a vault path is configured.
type VaultStatus struct {
	Configured bool   `json:"configured"`
	Path       string `json:"path"`
	Source     string `json:"source,omitempty"`
	// Ready is true when Path exists and is a directory.
	Ready bool `json:"ready"`
}

// VaultStatus reports the configured vault path.
func (s *Service) VaultStatus() (VaultStatus, error) {
	dir, source, err := s.VaultDir()
	if err != nil {
		return VaultStatus{}, err
	}
	status := VaultStatus{Configured: dir != "", Path: dir, Source: source}
	if status.Configured {
		_, err := vault.Open(dir)
		status.Ready = err == nil
	}
	return status, nil
}

// SetAPIKey stores the OMDb API key in the settings store.
func (s *Service) SetAPIKey(key string) (Result, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return failure(MsgNoKeyProvided), services.Wrap(services.ErrValidation, component, "key", MsgNoKeyProvided, nil)
	}
	if err := s.store.Set(settings.KeyOMDbAPIKey, key); err != nil {
		return failure(fmt.Sprintf("Could not save key: %v", err)), services.Wrap(services.ErrTransient, component, "key", "persist", err)
	}
	msg := "OMDb API key saved."
	if _, source, _ := s.APIKey(); source == SourceConfig {
		msg += " The config file or OMDB_API_KEY still takes precedence."
	}
	return Result{Success: true, Message: msg}, nil
}

// ListNotes returns the notes currently in the vault.
func (s *Service) ListNotes() ([]vault.Entry, error) {
	v, _, err := s.openVault()
	if err != nil {
		return nil, err
	}
	return v.List()
}
