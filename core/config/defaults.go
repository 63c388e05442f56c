package config

import "github.com/gaurav-prasanna/recipepipe/core/fetch"

const (
	defaultAccept     = fetch.DefaultAccept
	defaultTimeout    = 30
	defaultMaxBodyMiB = 10
	defaultFormat     = "json"
	defaultLogLevel   = "info"
	defaultLogFormat  = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Fetch: Fetch{
			UserAgent:      fetch.DefaultUserAgent,
			Accept:         defaultAccept,
			TimeoutSeconds: defaultTimeout,
			MaxBodyMiB:     defaultMaxBodyMiB,
		},
		Output: Output{
			Format: defaultFormat,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
