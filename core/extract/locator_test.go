package extract

import (
	"slices"
	"testing"
)

const page = `<!doctype html>
<html lang="en">
<head>
  <title> Birria Ramen | Example </title>
  <script type="application/ld+json">{"@type":"BreadcrumbList"}</script>
  <script type="text/javascript">var x = 1;</script>
  <script>{"@type":"Recipe"}</script>
</head>
<body>
  <script type="application/ld+json">
    {"@context":"https://schema.org","@type":"Recipe","description":"a &amp; b <b>c</b>"}
  </script>
  <script type="application/ld+json; charset=utf-8">{"@type":"Ignored"}</script>
</body>
</html>`

func TestLocateYieldsJSONLDInDocumentOrder(t *testing.T) {
	got, err := New().Locate(page)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}

	blocks := slices.Collect(got.Blocks)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %q", len(blocks), blocks)
	}
	if blocks[0] != `{"@type":"BreadcrumbList"}` {
		t.Fatalf("unexpected first block: %q", blocks[0])
	}
	want := "\n    {\"@context\":\"https://schema.org\",\"@type\":\"Recipe\",\"description\":\"a &amp; b <b>c</b>\"}\n  "
	if blocks[1] != want {
		t.Fatalf("script text must be verbatim:\n got %q\nwant %q", blocks[1], want)
	}
	if got.Title != "Birria Ramen | Example" {
		t.Fatalf("unexpected title: %q", got.Title)
	}
	if got.Lang != "en" {
		t.Fatalf("unexpected lang: %q", got.Lang)
	}
}

func TestLocateWithoutJSONLD(t *testing.T) {
	got, err := New().Locate(`<html><body><p>No structured data.</p></body></html>`)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if blocks := slices.Collect(got.Blocks); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %q", blocks)
	}
}

func TestLocateBlocksAreLazy(t *testing.T) {
	got, err := New().Locate(page)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	seen := 0
	for range got.Blocks {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("expected to stop after one block, saw %d", seen)
	}
}
