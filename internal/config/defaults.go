package config

const (
	defaultConfigPath     = "~/.config/movielog/config.toml"
	defaultStateDir       = "~/.local/share/movielog"
	defaultSettingsPath   = "~/.config/movielog/settings.toml"
	defaultOMDbBaseURL    = "https://www.omdbapi.com/"
	defaultOMDbPlot       = "short"
	defaultOMDbTimeout    = 10
	defaultOMDbRPS        = 1.0
	defaultOMDbBurst      = 2
	defaultAppName        = "MovieLoggerApp"
	defaultDateLayout     = "1/2/2006"
	defaultMediaType      = "Movie"
	defaultOnConflict     = ConflictAsk
	defaultHistoryEnabled = true
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	envOMDbAPIKey         = "OMDB_API_KEY"
	envVaultDir           = "MOVIELOG_VAULT"
)

// Conflict policies for vault.on_conflict.
const (
	ConflictAsk       = "ask"
	ConflictOverwrite = "overwrite"
	ConflictCopy      = "copy"
	ConflictCancel    = "cancel"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:     defaultStateDir,
			SettingsPath: defaultSettingsPath,
		},
		OMDb: OMDb{
			BaseURL:           defaultOMDbBaseURL,
			Plot:              defaultOMDbPlot,
			TimeoutSeconds:    defaultOMDbTimeout,
			RequestsPerSecond: defaultOMDbRPS,
			Burst:             defaultOMDbBurst,
		},
		Note: Note{
			AppName:          defaultAppName,
			DateLayout:       defaultDateLayout,
			DefaultMediaType: defaultMediaType,
		},
		Vault: Vault{
			OnConflict: defaultOnConflict,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
