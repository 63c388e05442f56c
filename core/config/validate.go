package config

import (
	"errors"
	"fmt"
	"slices"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "markdown", "pdf", "text"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFetch() error {
	if c.Fetch.TimeoutSeconds < 0 {
		return errors.New("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.MaxBodyMiB < 0 {
		return errors.New("fetch.max_body_mib must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format: unsupported value %q (want one of %v)", c.Output.Format, Formats)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
