package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Action describes how a note reached the vault.
type Action string

const (
	ActionCreated     Action = "created"
	ActionOverwritten Action = "overwritten"
	ActionCopied      Action = "copied"
)

// savedAtLayout is fixed width so saved_at sorts as text in time order.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultRecentLimit bounds Recent when the caller passes a non-positive limit.
const DefaultRecentLimit = 20

var ErrInvalidEntry = errors.New("history: entry requires title, file name, and vault dir")

// Entry is one saved note.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Year     string    `json:"year,omitempty"`
	IMDbID   string    `json:"imdb_id,omitempty"`
	FileName string    `json:"file_name"`
	VaultDir string    `json:"vault_dir"`
	Action   Action    `json:"action"`
	SavedAt  time.Time `json:"saved_at"`
}

// Path returns the full path of the note as written.
func (e Entry) Path() string {
	return filepath.Join(e.VaultDir, e.FileName)
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the history database and applies migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("history: database path required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an entry, assigning its ID and timestamp when unset.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	entry.Title = strings.TrimSpace(entry.Title)
	if entry.Title == "" || entry.FileName == "" || entry.VaultDir == "" {
		return Entry{}, ErrInvalidEntry
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Action == "" {
		entry.Action = ActionCreated
	}
	if entry.SavedAt.IsZero() {
		entry.SavedAt = s.now()
	}
	entry.SavedAt = entry.SavedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_notes (id, title, year, imdb_id, file_name, vault_dir, action, saved_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Title,
		entry.Year,
		entry.IMDbID,
		entry.FileName,
		entry.VaultDir,
		string(entry.Action),
		entry.SavedAt.Format(savedAtLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, year, imdb_id, file_name, vault_dir, action, saved_at
         FROM saved_notes ORDER BY saved_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Count returns the number of recorded entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM saved_notes").Scan(&count); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry   Entry
		action  string
		savedAt string
	)
	if err := row.Scan(&entry.ID, &entry.Title, &entry.Year, &entry.IMDbID, &entry.FileName, &entry.VaultDir, &action, &savedAt); err != nil {
		return Entry{}, fmt.Errorf("scan history entry: %w", err)
	}
	entry.Action = Action(action)
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
	}
	entry.SavedAt = ts
	return entry, nil
}
