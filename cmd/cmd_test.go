package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/recipepipe/core/config"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
)

const soupPage = `<html lang="en"><head><title>Soup</title>
<script type="application/ld+json">
[{"@context":"https://schema.org","@type":"WebPage"},
 {"@context":"https://schema.org","@type":"Recipe","name":"Tomato Soup",
  "recipeIngredient":["4 tomatoes","1 onion"],
  "recipeInstructions":[{"@type":"HowToStep","text":"Simmer."}],
  "recipeYield":4}]
</script></head><body></body></html>`

const emptyPage = `<html><head><title>Nothing</title></head><body></body></html>`

func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, key := range []string{config.EnvUserAgent, config.EnvTimeout, config.EnvLogLevel, config.EnvRepair} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func servePage(t *testing.T, body string, seenUA *string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seenUA != nil {
			*seenUA = r.Header.Get("User-Agent")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestExtractWritesJSONToStdout(t *testing.T) {
	setupCLI(t)
	var ua string
	base := servePage(t, soupPage, &ua)

	stdout, _, err := runCLI(t, "extract", base+"/soup", "--log_level", "error")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if got["name"] != "Tomato Soup" || got["recipeYield"] != float64(4) {
		t.Fatalf("unexpected recipe: %v", got)
	}
	if ua != fetch.DefaultUserAgent {
		t.Fatalf("expected default user agent, got %q", ua)
	}
}

func TestExtractWritesFileToOutputDir(t *testing.T) {
	setupCLI(t)
	base := servePage(t, soupPage, nil)
	dir := t.TempDir()

	stdout, _, err := runCLI(t, "extract", base+"/soup", "--markdown", "--output_dir", dir, "--user_agent", "TestAgent/1.0")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(stdout, "Written:") {
		t.Fatalf("expected written notice, got %q", stdout)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*_soup.md"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one markdown file, got %v (%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "# Tomato Soup") {
		t.Fatalf("unexpected markdown:\n%s", data)
	}
}

func TestExtractUserAgentFlag(t *testing.T) {
	setupCLI(t)
	var ua string
	base := servePage(t, soupPage, &ua)

	if _, _, err := runCLI(t, "extract", base, "--text", "--user_agent", "TestAgent/1.0"); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if ua != "TestAgent/1.0" {
		t.Fatalf("expected flag user agent, got %q", ua)
	}
}

func TestExtractWithoutRecipeSucceeds(t *testing.T) {
	setupCLI(t)
	base := servePage(t, emptyPage, nil)

	stdout, stderr, err := runCLI(t, "extract", base, "--log_level", "error")
	if err != nil {
		t.Fatalf("expected success without a recipe, got %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected empty stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "no recipe found") {
		t.Fatalf("expected notice on stderr, got %q", stderr)
	}
}

func TestExtractFetchFailureIsError(t *testing.T) {
	setupCLI(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, _, err := runCLI(t, "extract", srv.URL, "--log_level", "error")
	var fetchErr *fetch.Error
	if !errors.As(err, &fetchErr) || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 *fetch.Error, got %v", err)
	}
}

func TestExtractRejectsBadInput(t *testing.T) {
	setupCLI(t)
	cases := [][]string{
		{"extract", "example.com/soup"},
		{"extract", "https://example.com/soup", "--json", "--pdf"},
		{"extract"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestConfigInit(t *testing.T) {
	setupCLI(t)
	target := filepath.Join(t.TempDir(), "recipepipe.toml")

	stdout, _, err := runCLI(t, "config", "init", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, "Wrote sample configuration") {
		t.Fatalf("unexpected output %q", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "config", "init", target); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if _, _, err := runCLI(t, "config", "init", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	// The written sample must be loadable through --config.
	base := servePage(t, soupPage, nil)
	if _, _, err := runCLI(t, "--config", target, "extract", base, "--log_level", "error"); err != nil {
		t.Fatalf("extract with sample config: %v", err)
	}
}

func TestConfigFileSelectsFormat(t *testing.T) {
	setupCLI(t)
	if err := os.WriteFile("recipepipe.toml", []byte("[output]\nformat = \"text\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	base := servePage(t, soupPage, nil)

	stdout, _, err := runCLI(t, "extract", base, "--log_level", "error")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(stdout, "Ingredients") || strings.HasPrefix(strings.TrimSpace(stdout), "{") {
		t.Fatalf("expected text output, got:\n%s", stdout)
	}
}
