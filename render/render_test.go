package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/lang"
)

func TestFull(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil, 0)

	require.NoError(t, r.Full(lang.English, "Rivers", "Origins\nmountains.\n\nToday\nbusy."))
	require.NoError(t, r.Full(lang.Thai, "Untitled", ""))

	assert.Equal(t, "== English ==\n\nRivers\n\nOrigins\nmountains.\n\nToday\nbusy.\n\n"+
		"== ภาษาไทย ==\n\nUntitled\n\n(No content found)\n\n", buf.String())
}

func TestFullUnknownLabel(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Labels{lang.English: "Anglais"}, 0)

	require.NoError(t, r.Full(lang.English, "T", "b"))
	require.NoError(t, r.Full(lang.Japanese, "T", "b"))
	assert.Contains(t, buf.String(), "== Anglais ==")
	assert.Contains(t, buf.String(), "== JA ==")
}

func TestInterleaved(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil, 0)

	tabs := map[lang.Code][]string{
		lang.Chinese: {"zh1", "zh2"},
		lang.English: {"en1\nbody", ""},
	}
	require.NoError(t, r.Interleaved([]lang.Code{lang.Chinese, lang.English}, tabs))
	assert.Equal(t, "zh1\n\nen1\nbody\n\nzh2\n\n(No content found)\n", buf.String())
	assert.NotContains(t, buf.String(), "==")
}

func TestInterleavedRejectsRaggedTabs(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil, 0)

	err := r.Interleaved([]lang.Code{lang.English, lang.Japanese}, map[lang.Code][]string{
		lang.English:  {"a", "b", "c"},
		lang.Japanese: {"a", "b"},
	})
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestJoinSplitTabsRoundTrip(t *testing.T) {
	tabs := []string{"Heading\nbody one", "body only", "A\nB\nC"}
	assert.Equal(t, tabs, SplitTabs(JoinTabs(tabs)))
	assert.Nil(t, SplitTabs(JoinTabs(nil)))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected []string
	}{
		{"no wrap needed", "hello world", 20, []string{"hello world"}},
		{"simple wrap", "hello world foo bar", 11, []string{"hello world", "foo bar"}},
		{"preserves newlines", "first\n\nsecond", 20, []string{"first", "", "second"}},
		{"long word breaks", "supercalifragilistic ok", 10, []string{"supercalif", "ragilistic", "ok"}},
		{"cjk counts double", "台灣的河流很長", 6, []string{"台灣的", "河流很", "長"}},
		{"disabled", "a b\nc", 0, []string{"a b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WrapText(tt.text, tt.width))
		})
	}
}

func TestFullWraps(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, nil, 10)

	require.NoError(t, r.Full(lang.English, "Title", "one two three four"))
	assert.Equal(t, "== English ==\n\nTitle\n\none two\nthree four\n\n", buf.String())
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 5, StringWidth("hello"))
	assert.Equal(t, 4, StringWidth("台灣"))
	assert.Equal(t, 10, StringWidth("Tiếng Việt"))
	assert.Equal(t, 2, StringWidth("กิน"), "Thai vowel sign takes no cell")
	assert.Equal(t, 10, StringWidth("Tie\u0302\u0301ng Vie\u0323\u0302t"), "decomposed diacritics")
}

func TestRuneWidth(t *testing.T) {
	for r, want := range map[rune]int{
		'a':      1,
		'\t':     0,
		'語':      2,
		'ア':      2,
		'ａ':      2,
		'\u200d': 0,
		'\u0e31': 0,
		'é':      1,
	} {
		assert.Equal(t, want, RuneWidth(r), "%U", r)
	}
}

func TestSpinner(t *testing.T) {
	var buf safeBuffer
	s := NewSpinner(&buf)
	s.interval = time.Millisecond

	s.Start("loading")
	time.Sleep(10 * time.Millisecond)
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "loading")
	assert.True(t, strings.HasSuffix(out, "\r"))
}
