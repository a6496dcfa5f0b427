// Package article loads every language edition of a story: one fetch per
// language, then tab segmentation with a flat-text fallback.
package article

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"panorama/extract"
	"panorama/fetcher"
	"panorama/lang"
	"panorama/markup"
	"panorama/render"
	"panorama/sites"
)

// Variant is one language edition of the story.
type Variant struct {
	Code   lang.Code
	URL    string
	Title  string
	Tabs   []string // nil unless Tabbed
	Tabbed bool     // the page has tab containers, even if they yielded no text
	Flat   string   // paragraph text, used when there are no tabs
	Err    error    // fetch or parse failure; the variant then has no content
}

// HasTabs reports whether the variant has at least one tab. Tab structure
// without text counts as no structure.
func (v *Variant) HasTabs() bool {
	return len(v.Tabs) > 0
}

// Body returns the full-article text: tabs separated by a blank line, or the
// flat paragraph text.
func (v *Variant) Body() string {
	if v.HasTabs() {
		return render.JoinTabs(v.Tabs)
	}
	return v.Flat
}

// Fetcher is the part of fetcher.Client the loader needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResult, error)
}

// Loader runs the per-language pipelines.
type Loader struct {
	Fetcher     Fetcher
	Site        *sites.Site
	Concurrency int // 0 means one pipeline per language
	Logger      *slog.Logger
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Load fetches and extracts every URL. A failing language never affects the
// others; its Variant carries the error instead.
func (l *Loader) Load(ctx context.Context, urls map[lang.Code]string) map[lang.Code]*Variant {
	var (
		mu       sync.Mutex
		variants = make(map[lang.Code]*Variant, len(urls))
	)

	g, gctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for code, url := range urls {
		g.Go(func() error {
			v := l.loadOne(gctx, code, url)
			mu.Lock()
			variants[code] = v
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return variants
}

func (l *Loader) loadOne(ctx context.Context, code lang.Code, url string) *Variant {
	log := l.logger().With("lang", code, "url", url)
	v := &Variant{Code: code, URL: url, Title: "Untitled"}

	res, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		log.Warn("fetch failed", "error", err)
		v.Err = err
		return v
	}

	if err := Extract(v, res.HTML, l.Site.Markers); err != nil {
		log.Warn("parse failed", "error", err)
		v.Err = err
		return v
	}
	log.Debug("loaded", "title", v.Title, "tabbed", v.Tabbed, "tabs", len(v.Tabs), "fetch_time", res.FetchTime)
	return v
}

// Extract fills v's title, tabs and flat text from page HTML. The page is
// parsed twice because the flat extractor removes caption nodes in place.
func Extract(v *Variant, html string, m *extract.Markers) error {
	doc, err := markup.ParseString(html)
	if err != nil {
		return err
	}
	markup.StripNoise(doc)
	v.Title = markup.Title(doc)
	v.Tabs, v.Tabbed = extract.Tabs(doc, m)
	if v.HasTabs() {
		return nil
	}

	flatDoc, err := markup.ParseString(html)
	if err != nil {
		return err
	}
	markup.StripNoise(flatDoc)
	v.Flat = extract.Flat(flatDoc, m)
	return nil
}

// TabMap collects the tab lists of all variants for the grouper.
func TabMap(variants map[lang.Code]*Variant) map[lang.Code][]string {
	tabs := make(map[lang.Code][]string, len(variants))
	for code, v := range variants {
		tabs[code] = v.Tabs
	}
	return tabs
}
