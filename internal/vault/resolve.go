package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxCandidates bounds the number of numbered candidates ResolveUnique tries.
const MaxCandidates = 10000

// ErrCandidateLimit is returned by ResolveUniqueStrict when every candidate up to
// MaxCandidates is taken.
var ErrCandidateLimit = errors.New("unique name search exhausted")

// ResolveUnique returns filename if it is free in dir, otherwise the first free
// "<stem> (N)<ext>" candidate. filename is used as given; sanitize it first.
//
// After MaxCandidates candidates the last one is returned even if it still
// collides. Use ResolveUniqueStrict to get an error instead.
func ResolveUnique(dir, filename string) string {
	name, _ := resolveUnique(dir, filename, MaxCandidates)
	return name
}

// ResolveUniqueStrict is ResolveUnique but fails with ErrCandidateLimit when no
// free candidate was found within MaxCandidates attempts.
func ResolveUniqueStrict(dir, filename string) (string, error) {
	name, ok := resolveUnique(dir, filename, MaxCandidates)
	if !ok {
		return name, fmt.Errorf("%w: %q after %d candidates", ErrCandidateLimit, filename, MaxCandidates)
	}
	return name, nil
}

func resolveUnique(dir, filename string, limit int) (string, bool) {
	if !exists(dir, filename) {
		return filename, true
	}
	stem, ext := splitName(filename)
	candidate := filename
	for n := 1; n <= limit; n++ {
		candidate = numbered(stem, ext, n)
		if !exists(dir, candidate) {
			return candidate, true
		}
	}
	return candidate, false
}

// splitName splits name at its last dot. A name without a dot has no
// extension.
func splitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

func numbered(stem, ext string, n int) string {
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}

// exists treats any stat failure other than "not exist" as taken so a
// permission problem never leads to an overwrite.
func exists(dir, name string) bool {
	_, err := os.Lstat(filepath.Join(dir, name))
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrNotExist)
}
