// Package note turns movie records into Markdown notes for a personal vault.
//
// A note is a YAML front matter block (one JSON-quoted value per key plus a
// tag list), an optional poster embed, a summary section, and an attribution
// line stamped with the local date. Rendering is pure: the clock is injected
// through Renderer so tests can pin the attribution date.
//
// FileName derives the on-disk name "<title> (<year>).md" and passes it
// through textutil.SanitizeFileName. ParseFrontMatter reads the header of an
// existing note back into a FrontMatter value.
package note
