// Package pipeline wires the loader, locator and parser into one pass:
// fetch → locate → extract. Rendering and writing stay with the caller.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Extraction recipe.Extraction
	Meta       core.PageMetadata
}

// Pipeline composes the stages. Fields are exported so tests can swap
// stages out.
type Pipeline struct {
	Fetcher core.Fetcher
	Locator core.Locator
	Parser  core.Parser
	Logger  *slog.Logger

	now func() time.Time
}

// New creates a Pipeline. A nil logger means slog.Default.
func New(fetcher core.Fetcher, locator core.Locator, parser core.Parser, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		Fetcher: fetcher,
		Locator: locator,
		Parser:  parser,
		Logger:  logger,
		now:     time.Now,
	}
}

// Run fetches rawURL and extracts the first valid recipe. Transport
// failures are returned as errors; a page without a recipe is a successful
// run whose Extraction reports !Found().
func (p *Pipeline) Run(ctx context.Context, rawURL string) (Result, error) {
	p.Logger.Debug("fetching page", "url", rawURL)
	fetched, err := p.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("fetch: %w", err)
	}

	page, err := p.Locator.Locate(fetched.HTML)
	if err != nil {
		return Result{}, fmt.Errorf("locate: %w", err)
	}

	extraction := p.Parser.Extract(page.Blocks)
	meta := p.metadata(fetched, page)

	if extraction.Found() {
		p.Logger.Info("recipe found",
			"url", meta.URL,
			"block", extraction.Block,
			"blocks", extraction.Blocks,
			"name", recipe.Deref(extraction.Recipe.Name),
		)
	} else {
		p.Logger.Info("no recipe found", "url", meta.URL, "blocks", extraction.Blocks, "warnings", len(extraction.Warnings))
	}

	return Result{Extraction: extraction, Meta: meta}, nil
}

// metadata describes the page from the final (post-redirect) URL.
func (p *Pipeline) metadata(fetched *core.FetchResult, page core.Page) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       fetched.URL,
		Title:     page.Title,
		Language:  page.Lang,
		FetchedAt: p.now().UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(fetched.URL); err == nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}
	return meta
}
