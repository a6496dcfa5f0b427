package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/markup"
)

func flatHTML(t *testing.T, page string) string {
	t.Helper()
	doc, err := markup.ParseString(page)
	require.NoError(t, err)
	markup.StripNoise(doc)
	return Flat(doc, DefaultMarkers())
}

func TestFlatUsesFirstMatchingContainer(t *testing.T) {
	got := flatHTML(t, `<body>
<p>outside</p>
<div class="artiBox"><p>box one</p></div>
<div class="artiTxt"><p>txt</p></div>
<div class="artiBox"><p>box  two</p><p> </p></div>
</body>`)
	assert.Equal(t, "box one box two", got)
}

func TestFlatPrefersEarlierSelector(t *testing.T) {
	got := flatHTML(t, `<body>
<article><p>article tag</p></article>
<div class="artiCon"><p>con</p></div>
</body>`)
	assert.Equal(t, "article tag", got)
}

func TestFlatFallsBackToAllParagraphs(t *testing.T) {
	got := flatHTML(t, `<body><div><p>one</p></div><section><p>two</p></section></body>`)
	assert.Equal(t, "one two", got)
}

func TestFlatRemovesCaptions(t *testing.T) {
	got := flatHTML(t, `<body><div class="article">
<p>Story.</p>
<div class="artiFoto"><p>Photo caption.</p><span>credit</span></div>
<div class="artiFotoIf"><div><p>Other caption.</p></div></div>
<p>More story.</p>
</div></body>`)
	assert.Equal(t, "Story. More story.", got)
}

func TestFlatCaptionOnlyPageFallsBack(t *testing.T) {
	got := flatHTML(t, `<body><div class="artiFoto"><p>caption</p></div><p>text</p></body>`)
	assert.Equal(t, "text", got)
}

func TestFlatNestedContainersNotDuplicated(t *testing.T) {
	got := flatHTML(t, `<body><div class="text"><div class="text"><p>once</p></div></div></body>`)
	assert.Equal(t, "once", got)
}

func TestFlatEmpty(t *testing.T) {
	assert.Equal(t, "", flatHTML(t, `<body><div>no paragraphs</div></body>`))
}
