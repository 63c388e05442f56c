// Package cmd — extract command.
// This is the main command that orchestrates the pipeline:
// fetch → locate → parse → render → write.
//
// It handles flag validation, renderer selection and the exit status for
// pages without a recipe.
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/core"
	"github.com/gaurav-prasanna/recipepipe/core/config"
	"github.com/gaurav-prasanna/recipepipe/core/extract"
	"github.com/gaurav-prasanna/recipepipe/core/fetch"
	"github.com/gaurav-prasanna/recipepipe/core/normalize"
	"github.com/gaurav-prasanna/recipepipe/core/output"
	"github.com/gaurav-prasanna/recipepipe/core/pageurl"
	"github.com/gaurav-prasanna/recipepipe/core/pipeline"
	"github.com/gaurav-prasanna/recipepipe/core/recipe"
	"github.com/gaurav-prasanna/recipepipe/core/render"
)

// extractFlags holds the flag values for one invocation.
type extractFlags struct {
	pdf       bool
	markdown  bool
	json      bool
	text      bool
	outputDir string
	repair    bool
	timeout   time.Duration
	userAgent string
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Extract the schema.org recipe from a URL",
		Long: `Extract fetches a web page, scans its JSON-LD blocks in document order and
renders the first valid schema.org Recipe (JSON by default).

A page without a recipe is not an error: "no recipe found" is reported and
the command exits 0. Network and HTTP failures exit 1.

Examples:
  recipepipe extract https://www.allrecipes.com/beef-birria-ramen-recipe-8749389
  recipepipe extract https://example.com/soup --markdown --output_dir ./out
  recipepipe extract https://example.com/soup --text --repair`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, ctx, flags, args[0])
		},
	}

	// Output format flags (mutually exclusive).
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output the recipe as JSON (default)")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "Output a Markdown recipe card")
	cmd.Flags().BoolVar(&flags.pdf, "pdf", false, "Output a PDF recipe card")
	cmd.Flags().BoolVar(&flags.text, "text", false, "Output a plain-text summary")

	cmd.Flags().StringVar(&flags.outputDir, "output_dir", "", "Write a file named after the URL into this directory instead of stdout")
	cmd.Flags().BoolVar(&flags.repair, "repair", false, "Try to repair malformed JSON-LD blocks")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "HTTP timeout (default 30s)")
	cmd.Flags().StringVar(&flags.userAgent, "user_agent", "", "User-Agent header sent with the request")

	return cmd
}

func runExtract(cmd *cobra.Command, ctx *commandContext, flags *extractFlags, rawURL string) error {
	// --- Validate flags ---
	format, err := flags.format(ctx.config.Output.Format)
	if err != nil {
		return err
	}

	// Validate URL.
	rawURL, err = pageurl.Normalize(rawURL)
	if err != nil {
		return err
	}

	cfg := *ctx.config
	flags.apply(cmd, &cfg)

	renderer, err := selectRenderer(format)
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.Output.Dir, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	// Initialize pipeline components.
	logger := ctx.logger
	p := pipeline.New(
		fetch.New(cfg.FetchOptions()),
		extract.New(),
		recipe.NewParser(recipe.WithLogger(logger), recipe.WithRepair(cfg.Extract.Repair)),
		logger,
	)

	result, err := p.Run(cmd.Context(), rawURL)
	if err != nil {
		return err
	}
	if !result.Extraction.Found() {
		fmt.Fprintln(cmd.ErrOrStderr(), "no recipe found")
		return nil
	}

	data, err := renderer.Render(result.Extraction.Recipe, result.Meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(result.Meta.URL, data, renderer.Extension())
	if err != nil {
		return err
	}
	if path != output.Stdout {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	return nil
}

// format checks that at most one output format is chosen and falls back to
// the configured one.
func (f *extractFlags) format(fallback string) (string, error) {
	var chosen []string
	if f.json {
		chosen = append(chosen, "json")
	}
	if f.markdown {
		chosen = append(chosen, "markdown")
	}
	if f.pdf {
		chosen = append(chosen, "pdf")
	}
	if f.text {
		chosen = append(chosen, "text")
	}

	switch len(chosen) {
	case 0:
		return fallback, nil
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("only one output format allowed per run (got %d)", len(chosen))
	}
}

// apply overrides config values with the flags that were set explicitly.
func (f *extractFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output_dir") {
		cfg.Output.Dir = f.outputDir
	}
	if cmd.Flags().Changed("repair") {
		cfg.Extract.Repair = f.repair
	}
	if cmd.Flags().Changed("timeout") && f.timeout > 0 {
		cfg.Fetch.TimeoutSeconds = max(int(f.timeout/time.Second), 1)
	}
	if cmd.Flags().Changed("user_agent") {
		cfg.Fetch.UserAgent = f.userAgent
	}
}

// selectRenderer creates the Renderer for the chosen format.
func selectRenderer(format string) (core.Renderer, error) {
	normalizer := normalize.New()
	switch format {
	case "json":
		return render.NewJSONRenderer(), nil
	case "markdown":
		return render.NewMarkdownRenderer(normalizer), nil
	case "pdf":
		return render.NewPDFRenderer(normalizer), nil
	case "text":
		return render.NewTextRenderer(normalizer), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
