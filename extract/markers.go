// Package extract turns a parsed article page into text: either an ordered
// list of tab blocks with heading/body sections, or a flat paragraph run
// when the page has no tab structure.
package extract

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// MarkerConfig names the structural markers of a site's article markup.
type MarkerConfig struct {
	Tab        string   // tab container selector
	TabID      string   // pattern applied to the container id; group 1 is the order number
	Blocks     string   // text blocks inside a tab
	Emphasis   string   // leading run that marks a heading
	Paragraph  string   // paragraphs for the flat extractor
	Captions   []string // classes whose descendants are never article text
	Containers []string // main content wrappers, most specific first
}

// DefaultMarkerConfig describes the Taiwan Panorama article layout.
var DefaultMarkerConfig = MarkerConfig{
	Tab:        ".TabContent",
	TabID:      `(?i)Tab(\d+)`,
	Blocks:     "p, li, blockquote",
	Emphasis:   "strong",
	Paragraph:  "p",
	Captions:   []string{"artiFoto", "artiFotoIf"},
	Containers: []string{".article", ".artiBox", ".text", "article", ".artiCont", ".artiTxt", ".artiCon"},
}

// Markers is the compiled form of a MarkerConfig.
type Markers struct {
	tab        goquery.Matcher
	tabID      *regexp.Regexp
	blocks     goquery.Matcher
	emphasis   goquery.Matcher
	paragraph  goquery.Matcher
	captions   []string
	containers []goquery.Matcher
}

// NewMarkers compiles every selector and pattern in c.
func NewMarkers(c MarkerConfig) (*Markers, error) {
	m := &Markers{captions: append([]string(nil), c.Captions...)}

	var err error
	for _, f := range []struct {
		dst *goquery.Matcher
		sel string
	}{
		{&m.tab, c.Tab},
		{&m.blocks, c.Blocks},
		{&m.emphasis, c.Emphasis},
		{&m.paragraph, c.Paragraph},
	} {
		if *f.dst, err = compile(f.sel); err != nil {
			return nil, err
		}
	}

	if m.tabID, err = regexp.Compile(c.TabID); err != nil {
		return nil, fmt.Errorf("compiling tab id pattern %q: %w", c.TabID, err)
	}
	if m.tabID.NumSubexp() < 1 {
		return nil, fmt.Errorf("tab id pattern %q has no capture group", c.TabID)
	}

	for _, sel := range c.Containers {
		matcher, err := compile(sel)
		if err != nil {
			return nil, err
		}
		m.containers = append(m.containers, matcher)
	}
	return m, nil
}

func compile(sel string) (goquery.Matcher, error) {
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("compiling selector %q: %w", sel, err)
	}
	return s, nil
}

// DefaultMarkers returns the compiled DefaultMarkerConfig.
func DefaultMarkers() *Markers {
	m, err := NewMarkers(DefaultMarkerConfig)
	if err != nil {
		panic(err)
	}
	return m
}
