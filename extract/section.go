package extract

import "strings"

type nodeKind int

const (
	nodeBody nodeKind = iota
	nodeHeading
)

// headingTrim is stripped from the text around a heading label: ASCII and
// fullwidth colons, dashes and the ideographic/no-break spaces.
const headingTrim = " ：:—-–\u3000\u00a0"

// headingLabel is the display form of an emphasized run. A run made only of
// punctuation is kept as is so it still reads as a heading.
func headingLabel(emphasized string) string {
	if label := strings.TrimRight(emphasized, headingTrim); label != "" {
		return label
	}
	return strings.TrimSpace(emphasized)
}

// classifyNode decides whether a block starts a new section. It does when the
// block's emphasized run is a non-empty literal prefix of its full text.
func classifyNode(text, emphasized string) nodeKind {
	if emphasized == "" || !strings.HasPrefix(text, emphasized) {
		return nodeBody
	}
	return nodeHeading
}

type accState int

const (
	stateNoHeading accState = iota
	stateHeadingOpen
)

// accumulator groups the blocks of one tab into sections.
type accumulator struct {
	state    accState
	heading  string
	parts    []string
	sections []string
}

func (a *accumulator) add(text, emphasized string) {
	if classifyNode(text, emphasized) == nodeBody {
		a.parts = append(a.parts, text)
		return
	}

	if a.state == stateNoHeading {
		a.parts = nil // text before the first heading is not part of any section
	} else {
		a.close()
	}
	a.state = stateHeadingOpen
	a.heading = headingLabel(emphasized)
	if rest := strings.TrimLeft(text[len(emphasized):], headingTrim); rest != "" {
		a.parts = append(a.parts, rest)
	}
}

// close finalizes the pending section. Without any heading, the gathered
// body parts form the tab's only section.
func (a *accumulator) close() {
	body := strings.TrimSpace(strings.Join(a.parts, " "))
	a.parts = nil

	switch a.state {
	case stateHeadingOpen:
		if body == "" {
			a.sections = append(a.sections, a.heading)
		} else {
			a.sections = append(a.sections, a.heading+"\n"+body)
		}
	case stateNoHeading:
		if body != "" {
			a.sections = append(a.sections, body)
		}
	}
}

func (a *accumulator) finish() []string {
	a.close()
	return a.sections
}
