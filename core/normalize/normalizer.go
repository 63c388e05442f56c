// Package normalize implements the Normalizer interface.
// It converts HTML into Markdown, which serves as the canonical
// intermediate format for the document renderers, and flattens the stray
// markup sites leave inside JSON-LD text fields.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}

// Inline converts a JSON-LD text value, which may carry entities or inline
// tags such as "Stir &amp; <b>serve</b>", into single-line Markdown.
// Values without markup are returned trimmed.
func (n *MarkdownNormalizer) Inline(text string) string {
	text = strings.TrimSpace(text)
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	markdown, err := n.Normalize(text)
	if err != nil {
		return text
	}
	return strings.Join(strings.Fields(markdown), " ")
}
