// Package output handles file naming and writing for RecipePipe outputs.
// Without an output directory the rendered recipe goes to stdout; with one,
// the filename is derived from the page URL (e.g. example_com_soup.json).
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Stdout is the path reported when output went to the stream.
const Stdout = "-"

// Writer writes rendered output to a stream or to disk.
type Writer struct {
	OutputDir string
	Stream    io.Writer
}

// New creates a Writer. An empty outputDir writes to stream.
func New(outputDir string, stream io.Writer) (*Writer, error) {
	if outputDir != "" {
		// Ensure the output directory exists.
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir, Stream: stream}, nil
}

// Write stores data for the page at rawURL and returns where it went.
func (w *Writer) Write(rawURL string, data []byte, ext string) (string, error) {
	if w.OutputDir == "" {
		if _, err := w.Stream.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return Stdout, nil
	}

	path := filepath.Join(w.OutputDir, filenameFromURL(rawURL)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/recipes/soup → example_com_recipes_soup
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
