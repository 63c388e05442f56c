// Package render provides output renderers for the RecipePipe pipeline.
// This file implements the Markdown renderer: the recipe is laid out as an
// HTML card and normalized to Markdown, the canonical document format.
package render

import (
	"fmt"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
)

// MarkdownRenderer writes a recipe as a Markdown document.
type MarkdownRenderer struct {
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(normalizer core.Normalizer) *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalizer}
}

// Render returns the recipe card as Markdown bytes.
func (r *MarkdownRenderer) Render(rec *recipe.Recipe, meta core.PageMetadata) ([]byte, error) {
	md, err := r.markdown(rec, meta)
	if err != nil {
		return nil, err
	}
	return []byte(md), nil
}

func (r *MarkdownRenderer) markdown(rec *recipe.Recipe, meta core.PageMetadata) (string, error) {
	md, err := r.normalizer.Normalize(recipeCard(rec, meta))
	if err != nil {
		return "", fmt.Errorf("normalizing recipe card: %w", err)
	}
	return md + "\n", nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
