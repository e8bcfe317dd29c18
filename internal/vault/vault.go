package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"movielog/internal/note"
)

var (
	// ErrNotConfigured is returned when no vault path has been chosen.
	ErrNotConfigured = errors.New("vault path not configured")
	// ErrNotDirectory is returned when the vault path is not a directory.
	ErrNotDirectory = errors.New("vault path is not a directory")
	// ErrExists is returned by exclusive writes when the target is taken.
	ErrExists = os.ErrExist
)

// createRetries bounds CreateExclusive's resolve-and-create attempts.
const createRetries = 5

// WriteMode selects how Write treats an existing file.
type WriteMode int

const (
	// WriteExclusive fails with ErrExists when the file already exists.
	WriteExclusive WriteMode = iota
	// WriteOverwrite atomically replaces any existing file.
	WriteOverwrite
)

// Vault is a directory of notes.
type Vault struct {
	dir string
}

// Open validates dir and returns a Vault rooted at its absolute path.
func Open(dir string) (*Vault, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, ErrNotConfigured
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("inspect vault %q: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return &Vault{dir: abs}, nil
}

// Dir returns the vault's absolute directory.
func (v *Vault) Dir() string { return v.dir }

// Path joins name onto the vault directory.
func (v *Vault) Path(name string) string {
	return filepath.Join(v.dir, name)
}

// Exists reports whether name is taken in the vault.
func (v *Vault) Exists(name string) bool {
	return exists(v.dir, name)
}

// ResolveUnique returns a free name derived from name.
func (v *Vault) ResolveUnique(name string) string {
	return ResolveUnique(v.dir, name)
}

// Write stores data under name using mode.
func (v *Vault) Write(name string, data []byte, mode WriteMode) error {
	if err := checkName(name); err != nil {
		return err
	}
	switch mode {
	case WriteOverwrite:
		return writeFileAtomic(v.dir, name, data, 0o644)
	case WriteExclusive:
		return createExclusive(v.Path(name), data, 0o644)
	default:
		return fmt.Errorf("unknown write mode %d", mode)
	}
}

// CreateExclusive writes data under the first free name derived from name,
// creating the file with O_EXCL so concurrent writers never clobber each
// other. It returns the name actually used.
func (v *Vault) CreateExclusive(name string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	var lastErr error
	for attempt := 0; attempt < createRetries; attempt++ {
		candidate, err := ResolveUniqueStrict(v.dir, name)
		if err != nil {
			return "", err
		}
		err = createExclusive(v.Path(candidate), data, 0o644)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("create %q: lost %d races for a free name: %w", name, createRetries, lastErr)
}

// Entry describes a note found in the vault.
type Entry struct {
	Name        string
	ModTime     time.Time
	FrontMatter note.FrontMatter
	Err         error
}

// List returns the Markdown notes in the vault sorted by name. Notes whose
// front matter cannot be parsed are still listed with Err set.
func (v *Vault) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(v.dir)
	if err != nil {
		return nil, fmt.Errorf("read vault %q: %w", v.dir, err)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.EqualFold(filepath.Ext(de.Name()), note.Extension) {
			continue
		}
		entry := Entry{Name: de.Name()}
		if info, err := de.Info(); err == nil {
			entry.ModTime = info.ModTime()
		}
		data, err := os.ReadFile(v.Path(de.Name()))
		if err != nil {
			entry.Err = err
		} else {
			entry.FrontMatter, entry.Err = note.ParseFrontMatter(string(data))
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("invalid note file name %q", name)
	}
	return nil
}

func createExclusive(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// writeFileAtomic writes through a hidden temp file in dir and renames it over
// the target.
func writeFileAtomic(dir, name string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := writeAll(tmp, data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, name))
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
