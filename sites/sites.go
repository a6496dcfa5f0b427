// Package sites provides a registry of site profiles. A profile carries the
// markup convention and URL scheme of one multi-language publication, so the
// extraction engine itself holds no site-specific constants.
package sites

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"panorama/extract"
	"panorama/lang"
)

// Site describes one publication.
type Site struct {
	// Name is a human-readable name for this site.
	Name string

	// Host is the registrable domain; subdomains match too.
	Host string

	// Languages lists the editions the site publishes, in canonical order.
	Languages []lang.Code

	// Markers locates tabs, captions and content containers in article pages.
	Markers *extract.Markers
}

// Panorama is the Taiwan Panorama profile.
var Panorama = &Site{
	Name:      "Taiwan Panorama",
	Host:      "taiwan-panorama.com",
	Languages: lang.All,
	Markers:   extract.DefaultMarkers(),
}

var (
	registry = []*Site{Panorama}
	mu       sync.RWMutex
)

// Register adds a site to the registry. Later registrations take precedence
// over earlier ones for the same host.
func Register(s *Site) {
	mu.Lock()
	defer mu.Unlock()
	registry = append([]*Site{s}, registry...)
}

// ForURL returns the site whose host matches rawURL, or nil.
func ForURL(rawURL string) *Site {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	mu.RLock()
	defer mu.RUnlock()
	for _, s := range registry {
		if s.Matches(u.Hostname()) {
			return s
		}
	}
	return nil
}

// Names returns the names of all registered sites.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name
	}
	return names
}

// Matches reports whether host is the site's host or one of its subdomains.
func (s *Site) Matches(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	return host == s.Host || strings.HasSuffix(host, "."+s.Host)
}

// Has reports whether the site publishes code.
func (s *Site) Has(code lang.Code) bool {
	for _, c := range s.Languages {
		if c == code {
			return true
		}
	}
	return false
}

var (
	// detailsPattern matches article detail pages, keyed by language.
	detailsPattern = regexp.MustCompile(`/(zh|en|ja|vi|th|id)/Articles?/Details`)
	// articlePattern is the looser check applied to probed URLs.
	articlePattern = regexp.MustCompile(`/Article`)
)

// DetailsLanguage returns the language of an article detail URL.
func (s *Site) DetailsLanguage(rawURL string) (lang.Code, bool) {
	m := detailsPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	code := lang.Code(m[1])
	return code, s.Has(code)
}

// IsArticle reports whether rawURL follows the article path convention.
func (s *Site) IsArticle(rawURL string) bool {
	return articlePattern.MatchString(rawURL)
}
