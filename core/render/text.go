// Package render — text renderer.
// Pretty-prints a recipe for the terminal as a set of go-pretty tables.
package render

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const textColumnWidth = 72

// Inliner flattens markup inside JSON-LD text values to one line.
type Inliner interface {
	Inline(text string) string
}

// TextRenderer writes a human-readable recipe summary.
type TextRenderer struct {
	inliner Inliner
}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer(inliner Inliner) *TextRenderer {
	return &TextRenderer{inliner: inliner}
}

// Render lays the recipe out as a title, a facts table and numbered
// ingredient and instruction tables.
func (r *TextRenderer) Render(rec *recipe.Recipe, meta core.PageMetadata) ([]byte, error) {
	var b strings.Builder
	b.WriteString(r.inliner.Inline(title(rec, meta)))
	b.WriteString("\n")
	if d := recipe.Deref(rec.Description); d != "" {
		b.WriteString(text.WrapSoft(r.inliner.Inline(d), textColumnWidth))
		b.WriteString("\n")
	}

	rows := [][]string{}
	for _, f := range facts(rec) {
		rows = append(rows, []string{f.Label, f.Value})
	}
	if meta.URL != "" {
		rows = append(rows, []string{"Source", meta.URL})
	}
	writeTable(&b, "", nil, rows)

	if len(rec.Ingredients) > 0 {
		rows = rows[:0]
		for i, ing := range rec.Ingredients {
			rows = append(rows, []string{strconv.Itoa(i + 1), r.inliner.Inline(ing)})
		}
		writeTable(&b, "Ingredients", []string{"#", "Ingredient"}, rows)
	}

	if len(rec.Instructions) > 0 {
		rows = rows[:0]
		for i, step := range rec.Instructions {
			rows = append(rows, []string{strconv.Itoa(i + 1), r.inliner.Inline(step.Text)})
		}
		writeTable(&b, "Instructions", []string{"Step", "Text"}, rows)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// writeTable renders a two-column table; the first column is right
// aligned when it holds step numbers and the second wraps at
// textColumnWidth.
func writeTable(b *strings.Builder, title string, header []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}
	if len(header) > 0 {
		tw.AppendHeader(table.Row{header[0], header[1]})
	}
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	firstAlign := text.AlignLeft
	if len(header) > 0 {
		firstAlign = text.AlignRight
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: firstAlign, AlignHeader: text.AlignLeft},
		{Number: 2, WidthMax: textColumnWidth},
	})
	b.WriteString("\n")
	b.WriteString(tw.Render())
	b.WriteString("\n")
}
