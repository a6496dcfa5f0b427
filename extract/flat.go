package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"panorama/markup"
)

// Flat concatenates the paragraphs of a page that has no tab structure.
// Caption paragraphs are removed from doc first, so doc is modified.
func Flat(doc *goquery.Document, m *Markers) string {
	for _, class := range m.captions {
		doc.Find("." + class).FindMatcher(m.paragraph).Remove()
	}

	var paras *goquery.Selection
	for _, c := range m.containers {
		if found := doc.FindMatcher(c); found.Length() > 0 {
			paras = found.FindMatcher(m.paragraph)
			break
		}
	}
	if paras == nil {
		paras = doc.FindMatcher(m.paragraph)
	}

	var texts []string
	paras.Each(func(_ int, p *goquery.Selection) {
		if markup.InsideAny(p, m.captions...) {
			return
		}
		if t := markup.Text(p); t != "" {
			texts = append(texts, t)
		}
	})
	return strings.Join(texts, " ")
}
