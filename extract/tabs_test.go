package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/markup"
)

func segmentHTML(t *testing.T, page string) ([]string, bool) {
	t.Helper()
	doc, err := markup.ParseString(page)
	require.NoError(t, err)
	markup.StripNoise(doc)
	return Tabs(doc, DefaultMarkers())
}

func TestTabsNoStructure(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="article"><p>Only flat text.</p></div>`)
	assert.False(t, ok)
	assert.Nil(t, tabs)
}

func TestTabsEmptyContainers(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1"><div class="artiFoto"><p>caption</p></div></div>
<div class="TabContent" id="Tab2"><p>   </p></div>`)
	assert.True(t, ok)
	assert.NotNil(t, tabs)
	assert.Empty(t, tabs)
}

func TestTabsOrderedByID(t *testing.T) {
	tabs, ok := segmentHTML(t, `
<div class="TabContent" id="Tab2"><p>second</p></div>
<div class="TabContent" id="Tab1"><p>first</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, tabs)
}

func TestTabsUnnumberedSortLast(t *testing.T) {
	tabs, ok := segmentHTML(t, `
<div class="TabContent"><p>no id</p></div>
<div class="TabContent" id="tab10"><p>ten</p></div>
<div class="TabContent" id="intro"><p>named</p></div>
<div class="TabContent" id="Tab3"><p>three</p></div>
<div class="TabContent" id="TAB3"><p>three again</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"three", "three again", "ten", "no id", "named"}, tabs)
}

func TestTabsHeadingColonStripped(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p><strong>Background:</strong> rivers flow.</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"Background\nrivers flow."}, tabs)
}

func TestTabsSections(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p><strong>Origins</strong></p>
<p>The river rises in the mountains.</p>
<p>It reaches the sea in the west.</p>
<p><strong>Today</strong>—a busy waterway.</p>
<blockquote>Boats everywhere.</blockquote>
<ul><li><strong>Alone</strong></li></ul>
</div>`)
	require.True(t, ok)
	require.Len(t, tabs, 1)
	assert.Equal(t, strings.Join([]string{
		"Origins\nThe river rises in the mountains. It reaches the sea in the west.",
		"Today\na busy waterway. Boats everywhere.",
		"Alone",
	}, "\n"), tabs[0])
}

func TestTabsBodyOnly(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p>One.</p><p>Two <strong>bold</strong> inside.</p><li>Three.</li></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"One. Two bold inside. Three."}, tabs)
}

func TestTabsLeadBeforeFirstHeading(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p>Lead paragraph.</p>
<p><strong>Part one</strong>：body text</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"Part one\nbody text"}, tabs)
}

func TestTabsPunctuationHeading(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p><strong>Intro</strong></p>
<p>a</p>
<p><strong>—</strong> dash led</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"Intro\na\n—\ndash led"}, tabs)
}

func TestTabsCaptionsExcluded(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p><strong>Heading</strong></p>
<div class="artiFoto"><p><strong>Photo heading</strong> by someone</p></div>
<p>Body one.</p>
<div class="artiFotoIf"><div><p>Nested caption.</p></div></div>
<p>Body two.</p>
<script>document.write("noise")</script>
</div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"Heading\nBody one. Body two."}, tabs)
}

func TestTabsDropsEmptyTabs(t *testing.T) {
	tabs, ok := segmentHTML(t, `
<div class="TabContent" id="Tab1"><p>one</p></div>
<div class="TabContent" id="Tab2"><div class="artiFoto"><p>only a caption</p></div></div>
<div class="TabContent" id="Tab3"><p>three</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"one", "three"}, tabs)
}

func TestTabsEmphasisNotLeading(t *testing.T) {
	tabs, ok := segmentHTML(t, `<div class="TabContent" id="Tab1">
<p><strong>Head</strong></p>
<p>Text with <strong>emphasis</strong> later.</p></div>`)
	require.True(t, ok)
	assert.Equal(t, []string{"Head\nText with emphasis later."}, tabs)
}

func TestTabsBodyReorderKeepsHeading(t *testing.T) {
	page := func(a, b string) string {
		return `<div class="TabContent" id="Tab1"><p><strong>H</strong></p><p>` + a + `</p><p>` + b + `</p></div>`
	}
	first, _ := segmentHTML(t, page("alpha", "beta"))
	second, _ := segmentHTML(t, page("beta", "alpha"))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "H\nalpha beta", first[0])
	assert.Equal(t, "H\nbeta alpha", second[0])
	assert.Equal(t, strings.SplitN(first[0], "\n", 2)[0], strings.SplitN(second[0], "\n", 2)[0])
}

func TestClassifyNode(t *testing.T) {
	tests := []struct {
		text, emphasized string
		want             nodeKind
	}{
		{"Heading body", "Heading", nodeHeading},
		{"Heading", "Heading", nodeHeading},
		{"Body Heading", "Heading", nodeBody},
		{"Body", "", nodeBody},
		{"： body", "：", nodeHeading},
		{"body", " ", nodeBody},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyNode(tt.text, tt.emphasized), tt.text)
	}
}

func TestNewMarkersRejectsBadConfig(t *testing.T) {
	cfg := DefaultMarkerConfig
	cfg.Tab = "div[["
	_, err := NewMarkers(cfg)
	assert.Error(t, err)

	cfg = DefaultMarkerConfig
	cfg.TabID = `Tab\d+`
	_, err = NewMarkers(cfg)
	assert.Error(t, err)
}
