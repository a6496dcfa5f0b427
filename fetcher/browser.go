package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// userDataDir returns a persistent directory for Chrome user data so
// cookies survive between runs.
func userDataDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "panorama-chrome-profile")
}

// stealthScript hides the most common automation markers.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {
    get: () => undefined,
});
window.chrome = { runtime: {} };
Object.defineProperty(navigator, 'languages', {
    get: () => ['zh-TW', 'zh', 'en-US', 'en'],
});
`

// WithBrowser fetches a URL using headless Chrome to execute JavaScript.
func (c *Client) WithBrowser(ctx context.Context, targetURL string) (*FetchResult, error) {
	start := time.Now()

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(c.opts.UserAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserDataDir(userDataDir()),
	}
	if c.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	// Browser fetches get extra time
	timeout := c.Timeout()
	if timeout < 30*time.Second {
		timeout = 45 * time.Second
	} else {
		timeout += 15 * time.Second
	}
	tctx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	bctx, cancel := chromedp.NewContext(tctx)
	defer cancel()

	var html, finalURL string
	err := chromedp.Run(bctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "zh-TW,zh;q=0.9,en-US;q=0.8,en;q=0.7",
		})),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Wait for potential JS rendering and challenges
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var title string
			if err := chromedp.Title(&title).Do(ctx); err != nil {
				return nil
			}
			if title == "Just a moment..." {
				return chromedp.Sleep(5 * time.Second).Do(ctx)
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}

	return &FetchResult{
		HTML:        html,
		FinalURL:    finalURL,
		StatusCode:  200,
		UsedBrowser: true,
		FetchTime:   time.Since(start),
	}, nil
}

// IsBlockedResponse checks if the HTML indicates a blocked/challenged page.
func IsBlockedResponse(html string) (bool, string) {
	switch {
	case strings.Contains(html, "Just a moment..."),
		strings.Contains(html, "Checking your browser"),
		strings.Contains(html, "cf-browser-verification"):
		return true, "Cloudflare challenge"
	case strings.Contains(html, "captcha-delivery.com"):
		return true, "DataDome bot protection"
	case strings.Contains(html, "px-captcha"):
		return true, "PerimeterX bot protection"
	case strings.Contains(html, "recaptcha") && len(html) < 10000:
		return true, "reCAPTCHA challenge"
	}
	return false, ""
}
