// Package render — PDF renderer.
// Converts the Markdown recipe card into a printable PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs and both list kinds.
// Images are not embedded; the card carries the image URL as text.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
	"github.com/jung-kurt/gofpdf"
)

var (
	italicRegex     = regexp.MustCompile(`(?:^|\s)[*_]([^*_]+)[*_](?:\s|$)`)
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
	inlineLinkRegex = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// PDFRenderer renders a recipe card as a PDF document.
type PDFRenderer struct {
	markdown *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer that lays out the card produced by
// the Markdown renderer.
func NewPDFRenderer(normalizer core.Normalizer) *PDFRenderer {
	return &PDFRenderer{markdown: NewMarkdownRenderer(normalizer)}
}

// Render converts the recipe into PDF bytes.
func (r *PDFRenderer) Render(rec *recipe.Recipe, meta core.PageMetadata) ([]byte, error) {
	md, err := r.markdown.markdown(rec, meta)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title(rec, meta), true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; translate so accented ingredient names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)

		// Skip empty lines (add spacing instead).
		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "# "))), level)
			continue
		}

		// Bullets get a dot; numbered steps and paragraphs print as-is.
		pdf.SetFont("Helvetica", "", 10)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			trimmed = "• " + trimmed[2:]
		}
		pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 14, 3: 12}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRegex.ReplaceAllString(text, " $1 ")
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	text = inlineLinkRegex.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, `\`, "")
	return strings.TrimSpace(text)
}
