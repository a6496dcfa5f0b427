// Package markup wraps goquery with the handful of tree operations the
// extractors need: parsing, noise removal, normalized text, ancestor class
// lookup, title and link extraction.
package markup

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Parse builds a queryable document from HTML.
func Parse(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// ParseString parses HTML from a string.
func ParseString(s string) (*goquery.Document, error) {
	return Parse(strings.NewReader(s))
}

// MustCompile compiles a CSS selector group. It panics on invalid selectors,
// so it is meant for package level variables and site profiles.
func MustCompile(sel string) goquery.Matcher {
	return cascadia.MustCompile(sel)
}

// noise matches elements that never carry article text.
var noise = MustCompile("script, style, noscript, template, iframe")

// StripNoise removes script, style and other non-content elements in place.
func StripNoise(doc *goquery.Document) {
	doc.FindMatcher(noise).Remove()
}

// Text returns the whitespace-normalized text of a selection. Each text node
// is collapsed and trimmed on its own; non-empty pieces are joined with a
// single space. The result never contains a newline.
func Text(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := collapse(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// InsideAny reports whether any ancestor of the first node in sel carries one
// of the given classes. The node itself is not considered.
func InsideAny(sel *goquery.Selection, classes ...string) bool {
	if sel.Length() == 0 {
		return false
	}
	for n := sel.Nodes[0].Parent; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, c := range classes {
			if HasClass(n, c) {
				return true
			}
		}
	}
	return false
}

// HasClass reports whether n lists class in its class attribute.
func HasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, f := range strings.Fields(a.Val) {
			if f == class {
				return true
			}
		}
	}
	return false
}

// Title returns the page title without its trailing " - Site Name" suffix.
func Title(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if i := strings.LastIndex(title, " - "); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	if title == "" {
		return "Untitled"
	}
	return title
}

// Links returns every a[href] in document order, resolved against base.
// Hrefs that fail to parse are skipped.
func Links(doc *goquery.Document, base *url.URL) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		links = append(links, base.ResolveReference(ref).String())
	})
	return links
}

// Origin returns scheme://host/ for rawURL.
func Origin(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}, nil
}
