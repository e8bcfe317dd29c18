// Package textutil provides text helpers for turning free-form catalog text
// into names that are safe to use on disk.
//
// SanitizeFileName is the entry point for note file names: it removes
// characters that are reserved on common filesystems, strips ASCII control
// characters, and refuses names that would be hidden or rejected by Windows
// (leading or trailing dots and spaces). It never fails; when nothing usable
// remains the fallback name "untitled" is returned.
package textutil
