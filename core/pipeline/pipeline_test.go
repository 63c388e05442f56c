package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/recipepipe/core/extract"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
)

const recipePage = `<!DOCTYPE html>
<html lang="en-US">
<head>
<title> Birria Ramen </title>
<script type="application/ld+json">{"@context":"https://schema.org","@type":"BreadcrumbList"}</script>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":["Recipe"],"name":"Beef Birria Ramen","recipeYield":["6","6 servings"]}
</script>
</head>
<body><h1>Birria</h1></body>
</html>`

const plainPage = `<html><head><title>About</title></head><body>nothing here</body></html>`

func newTestPipeline(logs io.Writer) *Pipeline {
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := New(
		fetch.New(fetch.Options{Timeout: 5 * time.Second}),
		extract.New(),
		recipe.NewParser(recipe.WithLogger(logger)),
		logger,
	)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunFindsRecipe(t *testing.T) {
	srv := serve(t, recipePage)
	var logs bytes.Buffer

	result, err := newTestPipeline(&logs).Run(context.Background(), srv.URL+"/birria")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ex := result.Extraction
	if !ex.Found() {
		t.Fatalf("expected a recipe, got %+v", ex)
	}
	if ex.Block != 2 || ex.Blocks != 3 {
		t.Fatalf("expected block 2 of 3, got %d of %d", ex.Block, ex.Blocks)
	}
	if len(ex.Warnings) != 1 || ex.Warnings[0].Index != 1 || !errors.Is(ex.Warnings[0], recipe.ErrSyntax) {
		t.Fatalf("expected one syntax warning for block 1, got %v", ex.Warnings)
	}
	if got := recipe.Deref(ex.Recipe.Name); got != "Beef Birria Ramen" {
		t.Fatalf("unexpected name %q", got)
	}

	meta := result.Meta
	if meta.Title != "Birria Ramen" || meta.Language != "en-US" {
		t.Fatalf("unexpected page metadata: %+v", meta)
	}
	if meta.Path != "/birria" || !strings.HasPrefix(meta.Domain, "127.0.0.1:") {
		t.Fatalf("unexpected URL metadata: %+v", meta)
	}
	if meta.FetchedAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected fetched_at %q", meta.FetchedAt)
	}
	if !strings.Contains(logs.String(), "recipe found") {
		t.Fatalf("expected info log, got %q", logs.String())
	}
}

func TestRunWithoutRecipeIsNotAnError(t *testing.T) {
	srv := serve(t, plainPage)

	result, err := newTestPipeline(io.Discard).Run(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Extraction.Found() || result.Extraction.Block != -1 || result.Extraction.Blocks != 0 {
		t.Fatalf("expected absence, got %+v", result.Extraction)
	}
	if result.Meta.Title != "About" {
		t.Fatalf("unexpected title %q", result.Meta.Title)
	}
}

func TestRunReturnsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := newTestPipeline(io.Discard).Run(context.Background(), srv.URL)
	var fetchErr *fetch.Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *fetch.Error, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusGone {
		t.Fatalf("unexpected status %d", fetchErr.StatusCode)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	srv := serve(t, recipePage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestPipeline(io.Discard).Run(ctx, srv.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
