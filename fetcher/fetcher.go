// Package fetcher retrieves article pages over HTTP, with an optional
// headless browser fallback for pages that block plain clients.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML        string
	FinalURL    string // URL after following redirects
	StatusCode  int
	UsedBrowser bool
	FetchTime   time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent           string
	TimeoutSeconds      int
	ProbeTimeoutSeconds int    // existence checks only need headers and a status
	ChromePath          string // Path to Chrome binary (empty = auto-detect)
	BrowserFallback     bool   // retry blocked pages with headless Chrome
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
		TimeoutSeconds:      20,
		ProbeTimeoutSeconds: 10,
	}
}

// StatusError reports a response with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Client fetches pages with the configured options.
type Client struct {
	opts Options
	http *http.Client
}

// New creates a client. Zero fields in o fall back to DefaultOptions.
func New(o Options) *Client {
	opts := DefaultOptions()
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.ProbeTimeoutSeconds > 0 {
		opts.ProbeTimeoutSeconds = o.ProbeTimeoutSeconds
	}
	opts.ChromePath = o.ChromePath // Can be empty
	opts.BrowserFallback = o.BrowserFallback
	return &Client{opts: opts, http: &http.Client{}}
}

// Options returns the effective options.
func (c *Client) Options() Options {
	return c.opts
}

// Timeout returns the page fetch timeout.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.opts.TimeoutSeconds) * time.Second
}

// ProbeTimeout returns the existence check timeout.
func (c *Client) ProbeTimeout() time.Duration {
	return time.Duration(c.opts.ProbeTimeoutSeconds) * time.Second
}

// Fetch retrieves a page, falling back to the browser when enabled and the
// plain request failed in transport, was refused with a challenge status, or
// came back as a bot challenge. Other status errors are returned unchanged.
func (c *Client) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	result, err := c.Simple(ctx, url)
	if !c.opts.BrowserFallback {
		return result, err
	}
	if err == nil {
		if blocked, _ := IsBlockedResponse(result.HTML); !blocked {
			return result, nil
		}
	} else if !fallbackWorthy(err) {
		return nil, err
	}

	browserResult, berr := c.WithBrowser(ctx, url)
	if berr != nil {
		if err != nil {
			return nil, err
		}
		return nil, berr
	}
	if blocked, reason := IsBlockedResponse(browserResult.HTML); blocked {
		return browserResult, fmt.Errorf("blocked: %s", reason)
	}
	return browserResult, nil
}

// challengeStatus lists statuses bot walls answer with.
var challengeStatus = map[int]bool{
	http.StatusForbidden:          true,
	http.StatusTooManyRequests:    true,
	http.StatusServiceUnavailable: true,
}

// fallbackWorthy reports whether a plain fetch error may succeed in a real
// browser. A page that is plainly missing (404, 410, ...) stays missing.
func fallbackWorthy(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return challengeStatus[se.StatusCode]
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Simple fetches a URL using standard HTTP and decodes the body to UTF-8.
// Any status other than 200 is reported as a *StatusError.
func (c *Client) Simple(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.Timeout())
	defer cancel()

	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &FetchResult{
		HTML:       string(data),
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		FetchTime:  time.Since(start),
	}, nil
}

// Probe checks that url answers with status 200 and returns the URL the
// request ended up at after redirects. The body is not read.
func (c *Client) Probe(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.ProbeTimeout())
	defer cancel()

	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Request.URL.String(), nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return resp, nil
}
