package pageurl

import (
	"errors"
	"testing"
)

func TestNormalizeAcceptsPages(t *testing.T) {
	cases := map[string]string{
		"https://www.allrecipes.com/beef-birria-ramen-recipe-8749389": "https://www.allrecipes.com/beef-birria-ramen-recipe-8749389",
		"  http://example.com/soup#ingredients ":                      "http://example.com/soup",
		"https://example.com/recipes/soup.html?print=1":               "https://example.com/recipes/soup.html?print=1",
	}
	for input, want := range cases {
		got, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeRejects(t *testing.T) {
	for _, input := range []string{
		"example.com/soup",
		"/soup",
		"ftp://example.com/soup",
		"://bad",
	} {
		if _, err := Normalize(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestNormalizeRejectsStaticAssets(t *testing.T) {
	_, err := Normalize("https://example.com/images/soup.JPG")
	if !errors.Is(err, ErrStaticAsset) {
		t.Fatalf("expected ErrStaticAsset, got %v", err)
	}
}
