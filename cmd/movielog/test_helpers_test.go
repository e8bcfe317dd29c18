package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"movielog/internal/config"
	"movielog/internal/omdb"
	"movielog/internal/testsupport"
)

var (
	heatMovie = omdb.Movie{
		Title:      "Heat",
		Year:       "1995",
		Rated:      "R",
		Runtime:    "170 min",
		Genre:      "Action, Crime, Drama",
		Director:   "Michael Mann",
		Actors:     "Al Pacino, Robert De Niro, Val Kilmer",
		Plot:       "A group of high-end professional thieves start to feel the heat from the LAPD.",
		Poster:     "https://example.com/heat.jpg",
		IMDbRating: "8.3",
		IMDbID:     "tt0113277",
		Type:       "movie",
	}
	alienMovie = omdb.Movie{
		Title:   "Alien",
		Year:    "1979",
		Rated:   "R",
		Runtime: "117 min",
		Genre:   "Horror, Sci-Fi",
		Actors:  "Sigourney Weaver, Tom Skerritt, John Hurt",
		Plot:    "The crew of a commercial spacecraft encounters a deadly lifeform.",
		Poster:  "N/A",
		IMDbID:  "tt0078748",
		Type:    "movie",
	}
	fastMovie = omdb.Movie{
		Title:   "Fast & Furious",
		Year:    "2009",
		Genre:   "Action, Crime, Thriller",
		Plot:    "Brian O'Conner and Dom Toretto <reunite> in Los Angeles.",
		Poster:  "N/A",
		IMDbID:  "tt1013752",
		Type:    "movie",
	}
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	vaultDir   string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("MOVIELOG_VAULT", "")

	server := testsupport.NewOMDbServer(t, "test", heatMovie, alienMovie, fastMovie)
	opts = append([]testsupport.ConfigOption{testsupport.WithOMDbURL(server.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)

	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(base, "movielog.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		vaultDir:   cfg.Paths.VaultDir,
		baseDir:    base,
	}
}

// run executes the CLI against the env's config file. stdin feeds the
// conflict prompt.
func (e *cliTestEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, append([]string{"--config", e.configPath}, args...), stdin)
}

func runCLI(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
