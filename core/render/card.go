package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
)

// fact is one labelled summary line of a recipe card.
type fact struct {
	Label string
	Value string
}

// facts returns the short recipe attributes that are present, in display
// order.
func facts(r *recipe.Recipe) []fact {
	var out []fact
	if v := recipe.Deref(r.CookTime); v != "" {
		out = append(out, fact{"Cook time", v})
	}
	if r.Yield != nil {
		if v := r.Yield.String(); v != "" {
			out = append(out, fact{"Yield", v})
		}
	}
	if v := recipe.Deref(r.DatePublished); v != "" {
		out = append(out, fact{"Published", v})
	}
	if r.Image != nil {
		if v := r.Image.Href(); v != "" {
			out = append(out, fact{"Image", v})
		}
	}
	return out
}

// title picks the heading for a recipe: its name, else the page title.
func title(r *recipe.Recipe, meta core.PageMetadata) string {
	if name := recipe.Deref(r.Name); name != "" {
		return name
	}
	if meta.Title != "" {
		return meta.Title
	}
	return "Untitled recipe"
}

// recipeCard lays a recipe out as an HTML fragment; the Markdown
// normalizer turns it into the canonical document form.
func recipeCard(r *recipe.Recipe, meta core.PageMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h1>%s</h1>\n", fragment(title(r, meta)))
	if d := recipe.Deref(r.Description); d != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", fragment(d))
	}

	if fs := facts(r); len(fs) > 0 {
		b.WriteString("<ul>\n")
		for _, f := range fs {
			fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>\n", f.Label, fragment(f.Value))
		}
		b.WriteString("</ul>\n")
	}

	if len(r.Ingredients) > 0 {
		b.WriteString("<h2>Ingredients</h2>\n<ul>\n")
		for _, ing := range r.Ingredients {
			fmt.Fprintf(&b, "<li>%s</li>\n", fragment(ing))
		}
		b.WriteString("</ul>\n")
	}

	if len(r.Instructions) > 0 {
		b.WriteString("<h2>Instructions</h2>\n<ol>\n")
		for _, step := range r.Instructions {
			fmt.Fprintf(&b, "<li>%s</li>\n", fragment(step.Text))
		}
		b.WriteString("</ol>\n")
	}

	if meta.URL != "" {
		fmt.Fprintf(&b, "<p><em>Source: %s</em></p>\n", html.EscapeString(meta.URL))
	}
	return b.String()
}

// fragment prepares a JSON-LD text value for embedding in the card. Plain
// text is escaped. Values carrying markup are re-serialized through the
// HTML parser so unbalanced tags cannot leak into the surrounding card.
func fragment(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return html.EscapeString(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return html.EscapeString(s)
	}
	out, err := doc.Find("body").Html()
	if err != nil {
		return html.EscapeString(s)
	}
	return strings.TrimSpace(out)
}
