// Package core defines the pipeline interfaces for RecipePipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"iter"

	"github.com/gaurav-prasanna/recipepipe/core/recipe"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	HTML        string
}

// Page is a parsed HTML page reduced to what the pipeline needs.
type Page struct {
	Title string
	Lang  string
	// Blocks yields the raw text of each JSON-LD script in document order.
	Blocks iter.Seq[string]
}

// PageMetadata describes the page a recipe came from.
type PageMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Locator finds the JSON-LD blocks of an HTML page.
type Locator interface {
	Locate(html string) (Page, error)
}

// Parser picks the first valid recipe out of a page's JSON-LD blocks.
type Parser interface {
	Extract(blocks iter.Seq[string]) recipe.Extraction
}

// Normalizer converts an HTML fragment into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts a recipe (and page metadata) into a final output format.
type Renderer interface {
	Render(r *recipe.Recipe, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
