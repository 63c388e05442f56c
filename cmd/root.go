// Package cmd implements the CLI commands for RecipePipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/recipepipe/core/config"
	"github.com/gaurav-prasanna/recipepipe/core/logging"
)

const skipConfigLoad = "skipConfigLoad"

// commandContext carries the state shared by every subcommand.
type commandContext struct {
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	config *config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:   "recipepipe",
		Short: "RecipePipe — extract schema.org recipes from web pages",
		Long: `RecipePipe fetches a web page, finds its JSON-LD blocks and returns the
first schema.org Recipe as JSON, Markdown, PDF or text.

Usage:
  recipepipe extract <url> [flags]
  recipepipe config init [path]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfigLoad] == "true" {
				return nil
			}
			return ctx.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log_level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&ctx.logFormatFlag, "log_format", "", "Log format: auto, console or json")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// load reads .env, the config file and the environment, applies the
// persistent flags on top and builds the logger.
func (c *commandContext) load(cmd *cobra.Command) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log_level") {
		cfg.Logging.Level = c.logLevelFlag
	}
	if cmd.Flags().Changed("log_format") {
		cfg.Logging.Format = c.logFormatFlag
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "path", path, "exists", exists)

	c.config = cfg
	c.logger = logger
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
