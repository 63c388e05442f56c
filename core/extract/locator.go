// Package extract implements the Locator interface.
// It finds every JSON-LD block on a page:
//  1. Parse the HTML into a document tree
//  2. Select script[type="application/ld+json"] elements in document order
//  3. Hand back each element's inner text untouched
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/recipepipe/core"
)

// ldJSONSelector matches JSON-LD script tags. MustCompile panics on a bad
// literal, which can only be a programming error.
var ldJSONSelector = cascadia.MustCompile(`script[type="application/ld+json"]`)

// HTMLLocator finds JSON-LD blocks in HTML pages.
type HTMLLocator struct{}

// New creates an HTMLLocator.
func New() *HTMLLocator {
	return &HTMLLocator{}
}

// Locate parses html and returns the page title and a lazy sequence of the
// raw text of each JSON-LD script, in document order. A page without
// JSON-LD yields an empty sequence.
func (l *HTMLLocator) Locate(html string) (core.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return core.Page{}, fmt.Errorf("parsing HTML: %w", err)
	}

	scripts := doc.FindMatcher(ldJSONSelector)
	return core.Page{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Lang:  doc.Find("html").AttrOr("lang", ""),
		Blocks: func(yield func(string) bool) {
			scripts.EachWithBreak(func(_ int, s *goquery.Selection) bool {
				return yield(s.Text())
			})
		},
	}, nil
}
