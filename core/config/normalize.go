package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override the TOML file.
const (
	EnvUserAgent = "RECIPEPIPE_USER_AGENT"
	EnvTimeout   = "RECIPEPIPE_TIMEOUT"
	EnvLogLevel  = "RECIPEPIPE_LOG_LEVEL"
	EnvRepair    = "RECIPEPIPE_REPAIR"
)

func (c *Config) applyEnv() error {
	if value, ok := lookupEnv(EnvUserAgent); ok {
		c.Fetch.UserAgent = value
	}
	if value, ok := lookupEnv(EnvTimeout); ok {
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Fetch.TimeoutSeconds = seconds
	}
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	if value, ok := lookupEnv(EnvRepair); ok {
		repair, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRepair, err)
		}
		c.Extract.Repair = repair
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (c *Config) normalize() error {
	c.normalizeFetch()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeFetch() {
	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = Default().Fetch.UserAgent
	}
	c.Fetch.Accept = strings.TrimSpace(c.Fetch.Accept)
	if c.Fetch.Accept == "" {
		c.Fetch.Accept = defaultAccept
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = defaultTimeout
	}
	if c.Fetch.MaxBodyMiB == 0 {
		c.Fetch.MaxBodyMiB = defaultMaxBodyMiB
	}
}

func (c *Config) normalizeOutput() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = defaultFormat
	case "md":
		c.Output.Format = "markdown"
	case "txt":
		c.Output.Format = "text"
	}
	var err error
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
