// Package render formats extracted articles for the terminal: one labeled
// block per language, or the tabs of several languages interleaved.
package render

import (
	"fmt"
	"io"
	"strings"

	"panorama/lang"
)

// Placeholder stands in for a language or tab without text.
const Placeholder = "(No content found)"

// TabSeparator is the blank line between tabs in full output.
const TabSeparator = "\n\n"

// Labels maps language codes to display names.
type Labels map[lang.Code]string

// DefaultLabels returns each language's name in that language.
func DefaultLabels() Labels {
	return Labels{
		lang.Chinese:    "繁體中文",
		lang.English:    "English",
		lang.Japanese:   "日本語",
		lang.Vietnamese: "Tiếng Việt",
		lang.Thai:       "ภาษาไทย",
		lang.Indonesian: "Bahasa Indonesia",
	}
}

// Label returns the display name of code, or the upper-cased code.
func (l Labels) Label(code lang.Code) string {
	if label, ok := l[code]; ok && label != "" {
		return label
	}
	return strings.ToUpper(string(code))
}

// JoinTabs joins tabs for full output.
func JoinTabs(tabs []string) string {
	return strings.Join(tabs, TabSeparator)
}

// SplitTabs is the inverse of JoinTabs for tabs produced by the segmenter,
// which never contain a blank line.
func SplitTabs(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(body, TabSeparator)
}

// Renderer writes articles to w.
type Renderer struct {
	w      io.Writer
	labels Labels
	width  int // wrap width in cells; 0 disables wrapping
}

// New creates a renderer. A nil labels map uses DefaultLabels.
func New(w io.Writer, labels Labels, width int) *Renderer {
	if labels == nil {
		labels = DefaultLabels()
	}
	return &Renderer{w: w, labels: labels, width: width}
}

// Full writes one language block: label, title and body, each followed by a
// blank line.
func (r *Renderer) Full(code lang.Code, title, body string) error {
	if body == "" {
		body = Placeholder
	}
	_, err := fmt.Fprintf(r.w, "== %s ==\n\n%s\n\n%s\n\n",
		r.labels.Label(code), r.wrap(title), r.wrap(body))
	return err
}

// Interleaved writes tab i of every selected language before tab i+1 of
// any. Languages are separated by a blank line, and so are tab indices.
// Every selected language must have the same number of tabs.
func (r *Renderer) Interleaved(selection []lang.Code, tabs map[lang.Code][]string) error {
	if len(selection) == 0 {
		return nil
	}
	n := len(tabs[selection[0]])
	for _, code := range selection[1:] {
		if len(tabs[code]) != n {
			return fmt.Errorf("%s has %d tabs, %s has %d", code, len(tabs[code]), selection[0], n)
		}
	}

	var blocks []string
	for i := 0; i < n; i++ {
		for _, code := range selection {
			text := tabs[code][i]
			if text == "" {
				text = Placeholder
			}
			blocks = append(blocks, r.wrap(text))
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	_, err := io.WriteString(r.w, strings.Join(blocks, "\n\n")+"\n")
	return err
}

func (r *Renderer) wrap(text string) string {
	if r.width <= 0 {
		return text
	}
	return strings.Join(WrapText(text, r.width), "\n")
}
