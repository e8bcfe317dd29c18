package note

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"movielog/internal/textutil"
)

const (
	// DefaultAppName appears in the attribution line.
	DefaultAppName = "MovieLoggerApp"
	// DefaultDateLayout mirrors an en-US short date (10/17/2026).
	DefaultDateLayout = "1/2/2006"
	// Extension is the file extension used for notes.
	Extension = ".md"
)

// Clock returns the current time.
type Clock func() time.Time

// Renderer renders MovieRecords into note documents.
type Renderer struct {
	AppName    string
	DateLayout string
	Clock      Clock
}

// NewRenderer builds a Renderer, falling back to defaults for empty values.
func NewRenderer(appName, dateLayout string, clock Clock) *Renderer {
	r := &Renderer{
		AppName:    strings.TrimSpace(appName),
		DateLayout: strings.TrimSpace(dateLayout),
		Clock:      clock,
	}
	if r.AppName == "" {
		r.AppName = DefaultAppName
	}
	if r.DateLayout == "" {
		r.DateLayout = DefaultDateLayout
	}
	if r.Clock == nil {
		r.Clock = time.Now
	}
	return r
}

// Render renders rec using the renderer's clock.
func (r *Renderer) Render(rec MovieRecord) string {
	if r == nil {
		r = NewRenderer("", "", nil)
	}
	return render(rec, r.AppName, r.Clock().Local().Format(r.DateLayout))
}

// Serialize renders rec with default settings and the supplied time.
func Serialize(rec MovieRecord, now time.Time) string {
	return render(rec, DefaultAppName, now.Format(DefaultDateLayout))
}

// FileName derives the sanitized note file name "<title> (<year>).md".
func FileName(rec MovieRecord) string {
	return textutil.SanitizeFileName(rec.Title + " (" + rec.Year + ")" + Extension)
}

func render(rec MovieRecord, appName, date string) string {
	var b strings.Builder
	b.Grow(512 + len(rec.Plot))

	b.WriteString("---\n")
	writeField(&b, "title", rec.Title)
	writeField(&b, "year", rec.Year)
	writeField(&b, "mpaa_rating", rec.Rated)
	writeField(&b, "runtime", rec.Runtime)
	writeField(&b, "genre", rec.Genre)
	writeField(&b, "main_stars", rec.Actors)
	writeField(&b, "your_rating", rec.UserRating)
	writeField(&b, "media_type", rec.MediaType)
	// An empty tag list leaves a blank line under "tags:" and a missing
	// poster leaves an empty line between the header and the summary, so
	// notes stay byte-compatible with those the desktop app wrote.
	b.WriteString("tags:\n")
	for i, tag := range rec.Tags {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  - ")
		b.WriteString(quote(tag))
	}
	b.WriteString("\n---\n\n")

	if rec.HasPoster() {
		b.WriteString("![Poster Image](")
		b.WriteString(strings.TrimSpace(rec.Poster))
		b.WriteString(")")
	}
	b.WriteString("\n\n## Summary\n")
	b.WriteString(rec.Plot)
	b.WriteString("\n\n---\n")
	b.WriteString("*Logged via ")
	b.WriteString(appName)
	b.WriteString(" on ")
	b.WriteString(date)
	b.WriteString("*\n")
	return b.String()
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(quote(value))
	b.WriteByte('\n')
}

// quote JSON-encodes value as a string literal without HTML escaping.
func quote(value string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
