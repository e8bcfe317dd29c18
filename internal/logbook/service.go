package logbook

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"movielog/internal/config"
	"movielog/internal/history"
	"movielog/internal/logging"
	"movielog/internal/note"
	"movielog/internal/omdb"
	"movielog/internal/services"
	"movielog/internal/settings"
)

const component = "logbook"

// Messages shown to the user. They mirror the wording of the desktop app
// movielog replaces so existing habits carry over.
const (
	MsgVaultNotConfigured = "Vault path not configured."
	MsgKeyNotConfigured   = "OMDb API key not configured."
	MsgSaveCanceled       = "Save canceled by user."
	MsgNoKeyProvided      = "No key provided"
	MsgNoTitleProvided    = "No title provided"
)

// Result is the user-facing outcome of an operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Path is the note written (or that would be written, for dry runs).
	Path    string         `json:"path,omitempty"`
	Action  history.Action `json:"action,omitempty"`
	Content string         `json:"-"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// CatalogFactory builds a catalog client for the resolved API key. Keys are
// resolved per call so a key stored mid-session takes effect immediately.
type CatalogFactory func(apiKey string) (omdb.Fetcher, error)

// Recorder appends saved notes to the history log.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Service wires the movielog workflows together.
type Service struct {
	cfg      *config.Config
	store    settings.Store
	catalog  CatalogFactory
	renderer *note.Renderer
	prompter Prompter
	history  Recorder
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCatalog overrides how catalog clients are built.
func WithCatalog(factory CatalogFactory) Option {
	return func(s *Service) {
		if factory != nil {
			s.catalog = factory
		}
	}
}

// WithPrompter sets the prompter consulted by the ask conflict policy.
func WithPrompter(p Prompter) Option {
	return func(s *Service) { s.prompter = p }
}

// WithHistory enables history recording.
func WithHistory(r Recorder) Option {
	return func(s *Service) { s.history = r }
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, component)
		}
	}
}

// WithClock overrides the clock used for the attribution date.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.renderer = note.NewRenderer(s.cfg.Note.AppName, s.cfg.Note.DateLayout, clock)
	}
}

// New constructs a Service. cfg must be loaded and validated; store holds
// the persisted vault path and API key.
func New(cfg *config.Config, store settings.Store, opts ...Option) *Service {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	s := &Service{
		cfg:      cfg,
		store:    store,
		renderer: note.NewRenderer(cfg.Note.AppName, cfg.Note.DateLayout, nil),
		logger:   logging.NewComponentLogger(nil, component),
	}
	s.catalog = s.defaultCatalog
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) defaultCatalog(apiKey string) (omdb.Fetcher, error) {
	return omdb.New(apiKey, s.cfg.OMDb.BaseURL,
		omdb.WithPlot(s.cfg.OMDb.Plot),
		omdb.WithTimeout(time.Duration(s.cfg.OMDb.TimeoutSeconds)*time.Second),
		omdb.WithLimiter(omdb.NewLimiter(s.cfg.OMDb.RequestsPerSecond, s.cfg.OMDb.Burst)),
	)
}

// Renderer exposes the note renderer so previews match saved output.
func (s *Service) Renderer() *note.Renderer { return s.renderer }

// Setting sources reported by VaultStatus and APIKeySource.
const (
	SourceConfig   = "config"
	SourceSettings = "settings"
)

// APIKey resolves the OMDb key: environment and config file first (already
// merged into cfg at load time), then the settings store.
func (s *Service) APIKey() (key, source string, err error) {
	if key = strings.TrimSpace(s.cfg.OMDb.APIKey); key != "" {
		return key, SourceConfig, nil
	}
	return s.lookupSetting(settings.KeyOMDbAPIKey)
}

// lookupSetting reads key from the settings store, classifying a corrupt or
// unreadable file as a configuration error.
func (s *Service) lookupSetting(key string) (value, source string, err error) {
	value, err = settings.Lookup(s.store, key)
	if err != nil {
		return "", "", services.Wrap(services.ErrConfiguration, component, "settings", "read "+key, err)
	}
	if value == "" {
		return "", "", nil
	}
	return value, SourceSettings, nil
}

func (s *Service) client() (omdb.Fetcher, error) {
	key, _, err := s.APIKey()
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "omdb", MsgKeyNotConfigured, nil)
	}
	client, err := s.catalog(key)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "omdb", "build client", err)
	}
	return client, nil
}

// Fetch looks up title in the catalog and returns the record without user
// fields.
func (s *Service) Fetch(ctx context.Context, title string) (note.MovieRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return note.MovieRecord{}, services.Wrap(services.ErrValidation, component, "fetch", MsgNoTitleProvided, nil)
	}
	logger := logging.WithContext(ctx, s.logger)

	client, err := s.client()
	if err != nil {
		return note.MovieRecord{}, err
	}
	movie, err := client.Title(ctx, title)
	if err != nil {
		err = classifyCatalogError("fetch", err)
		logging.WarnWithContext(logger, "omdb lookup failed", "omdb_lookup_failed",
			logging.String(logging.FieldTitle, title),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
			logging.String(logging.FieldImpact, "no note can be written for this title"),
		)
		return note.MovieRecord{}, err
	}
	rec := movie.Record()
	logger.Debug("omdb lookup succeeded",
		logging.String(logging.FieldEventType, "omdb_lookup"),
		logging.String(logging.FieldTitle, rec.Label()),
		logging.String("imdb_id", rec.IMDbID),
	)
	return rec, nil
}

// FetchByID looks up an IMDb identifier.
func (s *Service) FetchByID(ctx context.Context, imdbID string) (note.MovieRecord, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return note.MovieRecord{}, services.Wrap(services.ErrValidation, component, "fetch", "no IMDb ID provided", nil)
	}
	client, err := s.client()
	if err != nil {
		return note.MovieRecord{}, err
	}
	movie, err := client.ByID(ctx, imdbID)
	if err != nil {
		return note.MovieRecord{}, classifyCatalogError("fetch", err)
	}
	return movie.Record(), nil
}

// Search lists catalog matches for query.
func (s *Service) Search(ctx context.Context, query string, opts omdb.SearchOptions) (*omdb.SearchPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, services.Wrap(services.ErrValidation, component, "search", "no query provided", nil)
	}
	client, err := s.client()
	if err != nil {
		return nil, err
	}
	page, err := client.Search(ctx, query, opts)
	if err != nil {
		return nil, classifyCatalogError("search", err)
	}
	return page, nil
}

func classifyCatalogError(operation string, err error) error {
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		return services.Wrap(services.ErrNotFound, component, operation, "", err)
	case errors.Is(err, omdb.ErrUnauthorized):
		return services.Wrap(services.ErrConfiguration, component, operation, "", err)
	case errors.Is(err, omdb.ErrEmptyQuery):
		return services.Wrap(services.ErrValidation, component, operation, "", err)
	case errors.Is(err, context.Canceled):
		return services.Wrap(services.ErrCanceled, component, operation, "", err)
	default:
		return services.Wrap(services.ErrExternal, component, operation, "", err)
	}
}

// Prepare applies user metadata and the configured default media type.
func (s *Service) Prepare(rec note.MovieRecord, meta note.UserMetadata) note.MovieRecord {
	if strings.TrimSpace(meta.MediaType) == "" {
		meta.MediaType = s.cfg.Note.DefaultMediaType
	}
	return rec.WithUserMetadata(meta)
}
