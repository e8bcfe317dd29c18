package textutil

import (
	"strings"
	"unicode"
)

// FallbackFileName is returned when a name sanitizes to nothing.
const FallbackFileName = "untitled"

// reservedFileNameChars are rejected by Windows and most sync clients.
const reservedFileNameChars = `<>:"/\|?*`

// SanitizeFileName maps arbitrary text to a filesystem-safe file name.
//
// Reserved characters (< > : " / \ | ? *) and ASCII control characters are
// removed, surrounding whitespace is trimmed, and dots or spaces are stripped
// from both ends until none remain. Empty input, or input that becomes empty,
// yields FallbackFileName. The result is stable under repeated application.
func SanitizeFileName(name string) string {
	if name == "" {
		return FallbackFileName
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(reservedFileNameChars, r) {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())
	out = strings.TrimRightFunc(out, isEdgeTrim)
	out = strings.TrimLeftFunc(out, isEdgeTrim)
	if out == "" {
		return FallbackFileName
	}
	return out
}

// SanitizeFileNamePtr is SanitizeFileName for optional values; nil yields
// FallbackFileName.
func SanitizeFileNamePtr(name *string) string {
	if name == nil {
		return FallbackFileName
	}
	return SanitizeFileName(*name)
}

// isEdgeTrim reports runes that may not start or end a file name. Unicode
// whitespace is included so a dot never shields a space from trimming.
func isEdgeTrim(r rune) bool {
	return r == '.' || r == ' ' || unicode.IsSpace(r)
}
