// Command segdump shows how an article page is segmented: the tab
// containers, the tabs and sections extracted from them, and the flat text
// used when a page has no tabs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"panorama/extract"
	"panorama/fetcher"
	"panorama/markup"
)

var (
	file  = flag.String("file", "", "Read HTML from a file instead of fetching")
	tree  = flag.Bool("tree", false, "Print the element outline of each tab container")
	depth = flag.Int("depth", 3, "Outline depth for -tree")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: segdump [-tree] [-depth N] (-file page.html | url)")
		flag.PrintDefaults()
	}
	flag.Parse()

	page, err := load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	doc, err := markup.ParseString(page)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Parse error:", err)
		os.Exit(1)
	}
	markup.StripNoise(doc)
	markers := extract.DefaultMarkers()

	fmt.Printf("Title: %s\n", markup.Title(doc))
	fmt.Println("════════════════════════════════════════")

	if *tree {
		doc.Find(extract.DefaultMarkerConfig.Tab).Each(func(i int, s *goquery.Selection) {
			id, _ := s.Attr("id")
			fmt.Printf("\n─── container %d id=%q ───\n", i+1, id)
			outline(s.Get(0), 0, *depth)
		})
	}

	tabs, tabbed := extract.Tabs(doc, markers)
	if tabbed {
		fmt.Printf("\n%d non-empty tabs\n", len(tabs))
		for i, tab := range tabs {
			fmt.Printf("\n─── Tab %d ───\n%s\n", i+1, tab)
		}
		if len(tabs) > 0 {
			return
		}
	} else {
		fmt.Println("\nNo tab containers.")
	}

	// Flat extraction mutates the tree, so start from a fresh parse.
	flatDoc, err := markup.ParseString(page)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Parse error:", err)
		os.Exit(1)
	}
	markup.StripNoise(flatDoc)
	fmt.Printf("\n─── Flat text ───\n%s\n", extract.Flat(flatDoc, markers))
}

func load() (string, error) {
	if *file != "" {
		b, err := os.ReadFile(*file)
		return string(b), err
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := fetcher.New(fetcher.Options{}).Fetch(ctx, flag.Arg(0))
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

func outline(n *html.Node, level, maxDepth int) {
	if level > maxDepth {
		return
	}
	indent := strings.Repeat("  ", level)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			attrs := ""
			for _, a := range c.Attr {
				if a.Key == "id" || a.Key == "class" {
					attrs += fmt.Sprintf(" %s=%q", a.Key, a.Val)
				}
			}
			fmt.Printf("%s<%s%s>\n", indent, c.Data, attrs)
			outline(c, level+1, maxDepth)
		case html.TextNode:
			text := strings.TrimSpace(c.Data)
			if text == "" {
				continue
			}
			if r := []rune(text); len(r) > 50 {
				text = string(r[:50]) + "..."
			}
			fmt.Printf("%s%q\n", indent, text)
		}
	}
}
