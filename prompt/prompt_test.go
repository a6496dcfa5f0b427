package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/align"
	"panorama/config"
	"panorama/lang"
	"panorama/render"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, render.DefaultLabels()), &out
}

func TestURL(t *testing.T) {
	p, out := newPrompter("  https://www.taiwan-panorama.com/en/Articles/Details?Guid=1  \n")
	got, err := p.URL()
	require.NoError(t, err)
	assert.Equal(t, "https://www.taiwan-panorama.com/en/Articles/Details?Guid=1", got)
	assert.Contains(t, out.String(), "URL -> ")
}

func TestURLWithoutTrailingNewline(t *testing.T) {
	p, _ := newPrompter("https://example.com/en/a")
	got, err := p.URL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/en/a", got)
}

func TestMode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1\n", config.ModeFull},
		{"full article\n", config.ModeFull},
		{"2\n", config.ModeParagraph},
		{"Paragraph\n", config.ModeParagraph},
		{"3\nx\n2\n", config.ModeParagraph},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, _ := newPrompter(tt.input)
			got, err := p.Mode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeRepromptsOnInvalid(t *testing.T) {
	p, out := newPrompter("3\n1\n")
	_, err := p.Mode()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "Invalid choice"))
}

func TestModeEOF(t *testing.T) {
	p, _ := newPrompter("")
	_, err := p.Mode()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestFullLanguages(t *testing.T) {
	available := []lang.Code{lang.Japanese, lang.English, lang.Chinese}

	t.Run("enter selects all in canonical order", func(t *testing.T) {
		p, out := newPrompter("\n")
		got, err := p.FullLanguages(available)
		require.NoError(t, err)
		assert.Equal(t, []lang.Code{lang.Chinese, lang.English, lang.Japanese}, got)
		assert.Contains(t, out.String(), "Codes : zh en ja")
		assert.Contains(t, out.String(), "Labels: 繁體中文 / English / 日本語")
	})

	t.Run("all keyword", func(t *testing.T) {
		p, _ := newPrompter("ALL\n")
		got, err := p.FullLanguages(available)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("request order kept and unknown dropped", func(t *testing.T) {
		p, _ := newPrompter("ja, fr, EN ja\n")
		got, err := p.FullLanguages(available)
		require.NoError(t, err)
		assert.Equal(t, []lang.Code{lang.Japanese, lang.English}, got)
	})

	t.Run("reprompts when nothing is available", func(t *testing.T) {
		p, out := newPrompter("th\nzh\n")
		got, err := p.FullLanguages(available)
		require.NoError(t, err)
		assert.Equal(t, []lang.Code{lang.Chinese}, got)
		assert.Contains(t, out.String(), "No valid language codes")
	})
}

func TestParagraphLanguages(t *testing.T) {
	groups := []align.Group{
		{TabCount: 2, Codes: []lang.Code{lang.English, lang.Japanese}},
		{TabCount: 3, Codes: []lang.Code{lang.Chinese, lang.Thai}},
	}

	t.Run("groups shown without counts", func(t *testing.T) {
		p, out := newPrompter("\n")
		got, err := p.ParagraphLanguages(groups)
		require.NoError(t, err)
		assert.Equal(t, []lang.Code{lang.English, lang.Japanese}, got)
		assert.Contains(t, out.String(), "- en ja\n- zh th\n")
		assert.NotContains(t, out.String(), "3")
	})

	t.Run("selection from one group in canonical order", func(t *testing.T) {
		p, _ := newPrompter("th zh\n")
		got, err := p.ParagraphLanguages(groups)
		require.NoError(t, err)
		assert.Equal(t, []lang.Code{lang.Chinese, lang.Thai}, got)
	})

	t.Run("cross-group selection reprompts", func(t *testing.T) {
		p, out := newPrompter("en zh\n,\nja\n")
		got, err := p.ParagraphLanguages(groups)
		require.NoError(t, err)
		assert.Equal(t, []lang.Code{lang.Japanese}, got)
		assert.Equal(t, 2, strings.Count(out.String(), "Invalid selection"))
	})

	t.Run("q cancels", func(t *testing.T) {
		p, _ := newPrompter("Q\n")
		_, err := p.ParagraphLanguages(groups)
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("no groups", func(t *testing.T) {
		p, out := newPrompter("")
		_, err := p.ParagraphLanguages(nil)
		assert.ErrorIs(t, err, align.ErrNoGroups)
		assert.ErrorIs(t, err, align.ErrIncompatible)
		assert.Contains(t, out.String(), "None.")
	})
}

func TestPick(t *testing.T) {
	available := []lang.Code{lang.English, lang.Thai}
	assert.Equal(t, []lang.Code{lang.Thai, lang.English},
		Pick([]lang.Code{"th", "xx", "en", "th"}, available))
	assert.Empty(t, Pick([]lang.Code{"ja"}, available))
}
