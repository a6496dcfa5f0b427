// Package discover finds the other language editions of an article, starting
// from the URL of any one of them.
package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"panorama/fetcher"
	"panorama/lang"
	"panorama/markup"
	"panorama/sites"
)

var (
	// ErrInvalidURL is returned for a seed that is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")
	// ErrNoLanguages is returned when not even the seed's own edition resolved.
	ErrNoLanguages = errors.New("no language versions detected")

	ErrNoSegment   = errors.New("source URL has no language segment")
	ErrForeignHost = errors.New("candidate is not on the site host")
	ErrNotArticle  = errors.New("candidate did not resolve to an article")
)

// Fetcher is the part of fetcher.Client discovery needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResult, error)
	Probe(ctx context.Context, url string) (string, error)
}

// Source records how a language edition was found.
type Source int

const (
	SourceNone Source = iota
	SourceSeed
	SourceLink
	SourceProbe
)

func (s Source) String() string {
	switch s {
	case SourceSeed:
		return "seed"
	case SourceLink:
		return "link"
	case SourceProbe:
		return "probe"
	}
	return "none"
}

// Outcome is the fate of one language: a URL and how it was found, or the
// reason it could not be resolved.
type Outcome struct {
	Code   lang.Code
	URL    string
	Source Source
	Err    error
}

// Resolved reports whether the language has a usable URL.
func (o Outcome) Resolved() bool {
	return o.Source != SourceNone
}

// Result holds the resolved editions and the per-language outcomes.
type Result struct {
	URLs     map[lang.Code]string
	Outcomes []Outcome // canonical language order
	SeedErr  error     // seed page fetch failure, if any
}

// Codes returns the resolved languages in canonical order.
func (r *Result) Codes() []lang.Code {
	var codes []lang.Code
	for _, o := range r.Outcomes {
		if o.Resolved() {
			codes = append(codes, o.Code)
		}
	}
	return codes
}

// ValidateSeed rejects anything that is not an absolute http(s) URL.
func ValidateSeed(seed string) error {
	if !strings.HasPrefix(seed, "http://") && !strings.HasPrefix(seed, "https://") {
		return fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidURL, seed)
	}
	u, err := url.Parse(seed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, seed)
	}
	return nil
}

// Discoverer resolves sibling language URLs for a site.
type Discoverer struct {
	Fetcher     Fetcher
	Site        *sites.Site
	Concurrency int // parallel probes; 0 means one per language
	Logger      *slog.Logger
}

func (d *Discoverer) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// Discover resolves every edition of the article at seed. Network failures
// only shrink the result; the error is non-nil only for an invalid seed or
// when nothing at all resolved.
func (d *Discoverer) Discover(ctx context.Context, seed string) (*Result, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}
	log := d.logger().With("seed", seed)

	outcomes := make(map[lang.Code]*Outcome, len(d.Site.Languages))
	for _, code := range d.Site.Languages {
		outcomes[code] = &Outcome{Code: code}
	}

	result := &Result{URLs: make(map[lang.Code]string)}

	page, err := d.Fetcher.Fetch(ctx, seed)
	if err != nil {
		log.Warn("seed page unavailable, falling back to URL substitution", "error", err)
		result.SeedErr = err
	} else {
		d.scanLinks(page.HTML, seed, outcomes, log)
	}

	seedLang, seedKnown := lang.Detect(seed)
	seedKnown = seedKnown && d.Site.Has(seedLang)
	if seedKnown {
		*outcomes[seedLang] = Outcome{Code: seedLang, URL: seed, Source: SourceSeed}
	}

	d.probeMissing(ctx, d.substitutionSource(seed, seedKnown, outcomes), outcomes, log)

	for _, code := range d.Site.Languages {
		o := *outcomes[code]
		result.Outcomes = append(result.Outcomes, o)
		if o.Resolved() {
			result.URLs[code] = o.URL
		}
		log.Debug("language outcome", "lang", code, "source", o.Source, "url", o.URL, "error", o.Err)
	}

	if len(result.URLs) == 0 {
		return result, fmt.Errorf("%w for %s", ErrNoLanguages, seed)
	}
	return result, nil
}

// scanLinks assigns article links found on the seed page. The first link
// for a language wins.
func (d *Discoverer) scanLinks(html, seed string, outcomes map[lang.Code]*Outcome, log *slog.Logger) {
	doc, err := markup.ParseString(html)
	if err != nil {
		log.Warn("parsing seed page", "error", err)
		return
	}
	base, err := markup.Origin(seed)
	if err != nil {
		log.Warn("resolving seed origin", "error", err)
		return
	}

	for _, link := range markup.Links(doc, base) {
		code, ok := d.Site.DetailsLanguage(link)
		if !ok {
			continue
		}
		if o := outcomes[code]; !o.Resolved() {
			*o = Outcome{Code: code, URL: link, Source: SourceLink}
		}
	}
}

// substitutionSource picks the URL whose language segment is rewritten for
// the probes: the seed when its language is known, else the first resolved
// edition in canonical order.
func (d *Discoverer) substitutionSource(seed string, seedKnown bool, outcomes map[lang.Code]*Outcome) string {
	if seedKnown {
		return seed
	}
	for _, code := range d.Site.Languages {
		if o := outcomes[code]; o.Resolved() {
			return o.URL
		}
	}
	return seed
}

// probeMissing checks a substituted URL for every unresolved language. Each
// probe writes only its own language's outcome.
func (d *Discoverer) probeMissing(ctx context.Context, source string, outcomes map[lang.Code]*Outcome, log *slog.Logger) {
	g, gctx := errgroup.WithContext(ctx)
	if d.Concurrency > 0 {
		g.SetLimit(d.Concurrency)
	}

	for _, code := range d.Site.Languages {
		o := outcomes[code]
		if o.Resolved() {
			continue
		}
		g.Go(func() error {
			*o = d.probe(gctx, source, code)
			if o.Err != nil {
				log.Debug("probe failed", "lang", code, "error", o.Err)
			}
			return nil
		})
	}
	g.Wait()
}

func (d *Discoverer) probe(ctx context.Context, source string, code lang.Code) Outcome {
	candidate, ok := lang.Swap(source, code)
	if !ok {
		return Outcome{Code: code, Err: ErrNoSegment}
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return Outcome{Code: code, Err: err}
	}
	if !d.Site.Matches(u.Hostname()) {
		return Outcome{Code: code, Err: fmt.Errorf("%w: %s", ErrForeignHost, u.Hostname())}
	}

	final, err := d.Fetcher.Probe(ctx, candidate)
	if err != nil {
		return Outcome{Code: code, Err: err}
	}
	if !d.Site.IsArticle(final) {
		return Outcome{Code: code, Err: fmt.Errorf("%w: %s ended at %s", ErrNotArticle, candidate, final)}
	}
	return Outcome{Code: code, URL: candidate, Source: SourceProbe}
}
