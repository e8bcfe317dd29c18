package note

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoFrontMatter is returned when a document does not open with a "---" block.
var ErrNoFrontMatter = errors.New("note has no front matter")

// FrontMatter is the header of a rendered note.
type FrontMatter struct {
	Title      string   `yaml:"title"`
	Year       string   `yaml:"year"`
	Rated      string   `yaml:"mpaa_rating"`
	Runtime    string   `yaml:"runtime"`
	Genre      string   `yaml:"genre"`
	Actors     string   `yaml:"main_stars"`
	UserRating string   `yaml:"your_rating"`
	MediaType  string   `yaml:"media_type"`
	Tags       []string `yaml:"tags"`
}

// ParseFrontMatter decodes the front matter block at the top of document.
func ParseFrontMatter(document string) (FrontMatter, error) {
	fm, _, err := Split(document)
	return fm, err
}

// Split decodes the front matter and returns it along with the Markdown body
// that follows the closing delimiter.
func Split(document string) (FrontMatter, string, error) {
	header, body, err := splitDocument(document)
	if err != nil {
		return FrontMatter{}, "", err
	}
	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return FrontMatter{}, "", fmt.Errorf("decode front matter: %w", err)
	}
	return fm, body, nil
}

func splitDocument(document string) (string, string, error) {
	document = strings.TrimPrefix(document, "\ufeff")
	document = strings.ReplaceAll(document, "\r\n", "\n")
	if !strings.HasPrefix(document, "---\n") {
		return "", "", ErrNoFrontMatter
	}
	rest := document[len("---\n"):]
	if rest == "---" {
		return "", "", nil
	}
	if strings.HasPrefix(rest, "---\n") {
		return "", rest[len("---\n"):], nil
	}
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		if !strings.HasSuffix(rest, "\n---") {
			return "", "", fmt.Errorf("%w: missing closing delimiter", ErrNoFrontMatter)
		}
		return rest[:len(rest)-len("\n---")], "", nil
	}
	return rest[:end], rest[end+len("\n---\n"):], nil
}
