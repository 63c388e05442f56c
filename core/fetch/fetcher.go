// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests that look like a desktop browser, since many
// recipe sites block or strip markup for non-browser agents.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gaurav-prasanna/recipepipe/core"
	"golang.org/x/net/html/charset"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultAccept    = "text/html"
	// MaxBodySize caps the bytes read from a response (10MB).
	MaxBodySize = 10 * 1024 * 1024

	dialTimeout  = 10 * time.Second
	maxRedirects = 10
)

// ErrNotUTF8 is returned when a body cannot be decoded to valid UTF-8.
var ErrNotUTF8 = errors.New("response body is not valid UTF-8")

// Error is a failed fetch. It is terminal for the pipeline.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options tune an HTTPFetcher. Zero values select the defaults above.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	Accept      string
	MaxBodySize int64
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	accept    string
	maxBody   int64
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Accept == "" {
		opts.Accept = DefaultAccept
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = MaxBodySize
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: dialTimeout, KeepAlive: 30 * time.Second}).DialContext,
				TLSHandshakeTimeout:   dialTimeout,
				ResponseHeaderTimeout: opts.Timeout,
				ForceAttemptHTTP2:     true,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("too many redirects (>%d)", maxRedirects)
				}
				return nil
			},
		},
		userAgent: opts.UserAgent,
		accept:    opts.Accept,
		maxBody:   opts.MaxBodySize,
	}
}

// Fetch retrieves the HTML content of the given URL, transcoded to UTF-8
// from the charset the response declares. Every failure is an *Error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", f.accept)
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &Error{URL: url, Err: fmt.Errorf("request canceled: %w", err)}
		}
		return nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if int64(len(raw)) > f.maxBody {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("response body exceeds %d bytes", f.maxBody)}
	}

	contentType := resp.Header.Get("Content-Type")
	data, err := transcode(raw, contentType)
	if err != nil {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding charset: %w", err)}
	}
	if !utf8.Valid(data) {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Err: ErrNotUTF8}
	}

	return &core.FetchResult{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(data),
	}, nil
}

// transcode converts body to UTF-8 using the declared or sniffed charset.
func transcode(body []byte, contentType string) ([]byte, error) {
	if len(body) == 0 {
		return body, nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
