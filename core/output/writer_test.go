package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFilenameFromURL(t *testing.T) {
	cases := map[string]string{
		"https://www.allrecipes.com/beef-birria-ramen-recipe-8749389": "www_allrecipes_com_beef_birria_ramen_recipe_8749389",
		"https://example.com/":                                       "example_com",
		"https://example.com/a/b.html":                               "example_com_a_b_html",
	}
	for input, want := range cases {
		if got := filenameFromURL(input); got != want {
			t.Fatalf("filenameFromURL(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestWriteToStream(t *testing.T) {
	var buf bytes.Buffer
	w, err := New("", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, err := w.Write("https://example.com/soup", []byte("{}\n"), ".json")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != Stdout || buf.String() != "{}\n" {
		t.Fatalf("unexpected stream write: path=%q data=%q", path, buf.String())
	}
}

func TestWriteToDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, err := w.Write("https://example.com/soup", []byte("# Soup\n"), ".md")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, "example_com_soup.md") {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "# Soup\n" {
		t.Fatalf("unexpected contents %q", data)
	}
}
