package extract

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"panorama/markup"
)

// orderKey is the numeric suffix of a tab container id. Containers without
// one sort after every numbered container.
type orderKey struct {
	n  int
	ok bool
}

func (k orderKey) compare(o orderKey) int {
	switch {
	case k.ok && o.ok:
		return cmp.Compare(k.n, o.n)
	case k.ok:
		return -1
	case o.ok:
		return 1
	}
	return 0
}

func (m *Markers) tabOrder(id string) orderKey {
	match := m.tabID.FindStringSubmatch(id)
	if match == nil {
		return orderKey{}
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return orderKey{}
	}
	return orderKey{n: n, ok: true}
}

type tabContainer struct {
	key orderKey
	sel *goquery.Selection
}

// orderedTabs returns the tab containers sorted by id number. The sort is
// stable, so equal keys keep document order.
func (m *Markers) orderedTabs(doc *goquery.Document) []tabContainer {
	var tabs []tabContainer
	doc.FindMatcher(m.tab).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		tabs = append(tabs, tabContainer{key: m.tabOrder(id), sel: s})
	})
	slices.SortStableFunc(tabs, func(a, b tabContainer) int {
		return a.key.compare(b.key)
	})
	return tabs
}

// Tabs segments every tab container of doc. The second return value is false
// when the page has no tab structure at all; the slice may still be empty
// when containers exist but hold no text. Tabs without text are dropped.
func Tabs(doc *goquery.Document, m *Markers) ([]string, bool) {
	containers := m.orderedTabs(doc)
	if len(containers) == 0 {
		return nil, false
	}

	tabs := []string{}
	for _, c := range containers {
		if text := m.segment(c.sel); text != "" {
			tabs = append(tabs, text)
		}
	}
	return tabs, true
}

// segment returns the sections of one tab joined by newlines.
func (m *Markers) segment(tab *goquery.Selection) string {
	var acc accumulator
	tab.FindMatcher(m.blocks).Each(func(_ int, block *goquery.Selection) {
		if markup.InsideAny(block, m.captions...) {
			return
		}
		text := markup.Text(block)
		if text == "" {
			return
		}
		var emphasized string
		if em := block.FindMatcher(m.emphasis).First(); em.Length() > 0 {
			emphasized = markup.Text(em)
		}
		acc.add(text, emphasized)
	})
	return strings.Join(acc.finish(), "\n")
}
