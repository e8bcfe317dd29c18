package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAssignsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	entry, err := store.Record(context.Background(), Entry{
		Title:    " Heat ",
		Year:     "1995",
		IMDbID:   "tt0113277",
		FileName: "Heat (1995).md",
		VaultDir: "/vault",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if _, err := uuid.Parse(entry.ID); err != nil {
		t.Fatalf("expected uuid id, got %q: %v", entry.ID, err)
	}
	if entry.Action != ActionCreated {
		t.Fatalf("expected default action created, got %q", entry.Action)
	}
	if !entry.SavedAt.Equal(fixed) || entry.Title != "Heat" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Path() != filepath.Join("/vault", "Heat (1995).md") {
		t.Fatalf("unexpected path %q", entry.Path())
	}
}

func TestRecordRejectsIncompleteEntry(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Record(context.Background(), Entry{Title: "Heat"}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	titles := []string{"Alien", "Aliens", "Alien 3"}
	for i, title := range titles {
		_, err := store.Record(ctx, Entry{
			Title:    title,
			FileName: title + ".md",
			VaultDir: "/vault",
			Action:   ActionCopied,
			SavedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Record %s: %v", title, err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Alien 3" || entries[1].Title != "Aliens" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if entries[0].Action != ActionCopied {
		t.Fatalf("expected action to round trip, got %q", entries[0].Action)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != len(titles) {
		t.Fatalf("Count = %d, want %d", count, len(titles))
	}
}

func TestRecentOrdersWithinOneSecond(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	older := time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC)
	newer := older.Add(500 * time.Millisecond)
	for _, e := range []struct {
		title string
		at    time.Time
	}{{"Older", older}, {"Newer", newer}} {
		if _, err := store.Record(ctx, Entry{Title: e.title, FileName: e.title + ".md", VaultDir: "/vault", SavedAt: e.at}); err != nil {
			t.Fatalf("Record %s: %v", e.title, err)
		}
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "Newer" || entries[1].Title != "Older" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if !entries[0].SavedAt.Equal(newer) {
		t.Fatalf("SavedAt = %v, want %v", entries[0].SavedAt, newer)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	first, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Record(context.Background(), Entry{Title: "Heat", FileName: "Heat.md", VaultDir: "/v"}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	count, err := second.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected entry to persist, got count %d", count)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
