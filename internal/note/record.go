package note

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PosterNotAvailable is the catalog sentinel for a missing poster.
const PosterNotAvailable = "N/A"

// MovieRecord is the transient value rendered into a note. Catalog fields are
// copied from the metadata service; UserRating, MediaType, and Tags come from
// the person logging the movie.
type MovieRecord struct {
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Rated      string   `json:"rated"`
	Runtime    string   `json:"runtime"`
	Genre      string   `json:"genre"`
	Actors     string   `json:"actors"`
	Director   string   `json:"director,omitempty"`
	Plot       string   `json:"plot"`
	Poster     string   `json:"poster"`
	IMDbID     string   `json:"imdb_id,omitempty"`
	IMDbRating string   `json:"imdb_rating,omitempty"`
	UserRating string   `json:"user_rating,omitempty"`
	MediaType  string   `json:"media_type,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// HasPoster reports whether the record carries a usable poster reference.
func (r MovieRecord) HasPoster() bool {
	poster := strings.TrimSpace(r.Poster)
	return poster != "" && poster != PosterNotAvailable
}

// Label returns "Title (Year)" for display, omitting an empty year.
func (r MovieRecord) Label() string {
	title := strings.TrimSpace(r.Title)
	year := strings.TrimSpace(r.Year)
	if year == "" {
		return title
	}
	return title + " (" + year + ")"
}

// UserMetadata holds the fields supplied at log time.
type UserMetadata struct {
	Rating    string
	MediaType string
	Tags      []string
}

// WithUserMetadata returns a copy of r carrying normalized user fields.
func (r MovieRecord) WithUserMetadata(meta UserMetadata) MovieRecord {
	r.UserRating = strings.TrimSpace(meta.Rating)
	r.MediaType = NormalizeMediaType(meta.MediaType)
	r.Tags = NormalizeTags(meta.Tags)
	return r
}

// NormalizeMediaType collapses whitespace in a media type tag. Input typed
// entirely in lower case is title-cased ("tv series" -> "Tv Series"); any
// other casing is the user's choice and is kept ("TV Series", "Blu-ray").
func NormalizeMediaType(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" || value != strings.ToLower(value) {
		return value
	}
	return cases.Title(language.Und).String(value)
}

// NormalizeTags trims tags, drops empties, and removes case-insensitive
// duplicates while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
