// Package pageurl checks and normalizes the page URL given on the command
// line before anything is fetched.
package pageurl

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ErrStaticAsset reports a URL that points at a file no recipe page can be.
var ErrStaticAsset = errors.New("URL points to a static asset")

// staticExtensions are file extensions that cannot hold an HTML page.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true, ".json": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// Normalize validates rawURL as an absolute http(s) page URL and strips
// its fragment, which is never sent to the server.
func Normalize(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("invalid URL: %s (scheme must be http or https)", rawURL)
	}
	if IsStaticAsset(parsed) {
		return "", fmt.Errorf("%w: %s", ErrStaticAsset, rawURL)
	}

	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String(), nil
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(u *url.URL) bool {
	ext := strings.ToLower(path.Ext(u.Path))
	return staticExtensions[ext]
}
