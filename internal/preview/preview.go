// Package preview renders movie notes to sanitized HTML.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"movielog/internal/note"
)

// Renderer converts note Markdown into HTML safe to open in a browser.
type Renderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// New builds a renderer with GitHub-flavoured Markdown and a UGC sanitizing
// policy. Raw HTML inside a note is passed through goldmark and then cleaned
// by the policy.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("src", "alt", "title").OnElements("img")
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("table", "dl")

	return &Renderer{markdown: md, policy: policy}
}

// Markdown converts arbitrary Markdown to sanitized HTML.
func (r *Renderer) Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Note renders a serialized note. The front matter becomes a heading and a
// metadata table above the note body.
func (r *Renderer) Note(document string) (string, error) {
	fm, body, err := note.Split(document)
	if err != nil {
		return "", err
	}
	return r.Markdown(metadataMarkdown(fm) + body)
}

func metadataMarkdown(fm note.FrontMatter) string {
	var b strings.Builder
	heading := strings.TrimSpace(fm.Title)
	if heading == "" {
		heading = "Untitled"
	}
	if year := strings.TrimSpace(fm.Year); year != "" {
		heading += " (" + year + ")"
	}
	b.WriteString("# ")
	b.WriteString(escapeInline(heading))
	b.WriteString("\n\n| Field | Value |\n| --- | --- |\n")

	rows := []struct{ label, value string }{
		{"Rated", fm.Rated},
		{"Runtime", fm.Runtime},
		{"Genre", fm.Genre},
		{"Starring", fm.Actors},
		{"Your rating", fm.UserRating},
		{"Type", fm.MediaType},
		{"Tags", strings.Join(fm.Tags, ", ")},
	}
	for _, row := range rows {
		if strings.TrimSpace(row.value) == "" {
			continue
		}
		b.WriteString("| ")
		b.WriteString(row.label)
		b.WriteString(" | ")
		b.WriteString(escapeInline(row.value))
		b.WriteString(" |\n")
	}
	b.WriteString("\n")
	return b.String()
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`[`, `\[`,
	`<`, `&lt;`,
	"\n", " ",
)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

// PlainText strips all markup from rendered HTML, for terminal previews.
func PlainText(htmlText string) string {
	return strings.TrimSpace(bluemonday.StripTagsPolicy().Sanitize(htmlText))
}
