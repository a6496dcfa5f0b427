package render

import (
	"strings"
	"unicode"
)

// wideRanges are the blocks terminals draw two cells wide: hangul jamo,
// CJK radicals through Yi, compatibility ideographs, vertical and fullwidth
// forms, and the supplementary ideographic planes.
var wideRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1100, Hi: 0x115F, Stride: 1},
		{Lo: 0x2E80, Hi: 0x303E, Stride: 1},
		{Lo: 0x3041, Hi: 0x33FF, Stride: 1},
		{Lo: 0x3400, Hi: 0x4DBF, Stride: 1},
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1},
		{Lo: 0xA000, Hi: 0xA4CF, Stride: 1},
		{Lo: 0xAC00, Hi: 0xD7A3, Stride: 1},
		{Lo: 0xF900, Hi: 0xFAFF, Stride: 1},
		{Lo: 0xFE30, Hi: 0xFE4F, Stride: 1},
		{Lo: 0xFF01, Hi: 0xFF60, Stride: 1},
		{Lo: 0xFFE0, Hi: 0xFFE6, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x3FFFD, Stride: 1},
	},
}

// RuneWidth returns the number of terminal cells r occupies. Combining
// marks (Thai vowel signs and tone marks, Vietnamese diacritics in
// decomposed form) and format characters take none.
func RuneWidth(r rune) int {
	switch {
	case r < 0x20 || r == 0x7F:
		return 0
	case r < 0x80:
		return 1
	case unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf):
		return 0
	case unicode.Is(wideRanges, r):
		return 2
	}
	return 1
}

// StringWidth returns the number of terminal cells s occupies.
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += RuneWidth(r)
	}
	return n
}

// WrapText wraps text to fit within width terminal cells. Existing line
// breaks are kept, so wrapping never joins or drops lines. Words wider than
// the line, which is how unspaced CJK text arrives, are broken by cell width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		lineWidth := 0
		flush := func() {
			if lineWidth > 0 {
				lines = append(lines, line.String())
				line.Reset()
				lineWidth = 0
			}
		}

		for _, word := range words {
			wordWidth := StringWidth(word)
			switch {
			case lineWidth > 0 && lineWidth+1+wordWidth <= width:
				line.WriteByte(' ')
				line.WriteString(word)
				lineWidth += 1 + wordWidth
				continue
			case lineWidth > 0:
				flush()
			}

			if wordWidth <= width {
				line.WriteString(word)
				lineWidth = wordWidth
				continue
			}
			pieces := breakWord(word, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			last := pieces[len(pieces)-1]
			line.WriteString(last)
			lineWidth = StringWidth(last)
		}
		flush()
	}
	return lines
}

// breakWord splits word into pieces no wider than maxWidth. A single rune
// wider than maxWidth gets a piece of its own.
func breakWord(word string, maxWidth int) []string {
	var pieces []string
	var piece strings.Builder
	pieceWidth := 0

	for _, r := range word {
		w := RuneWidth(r)
		if pieceWidth > 0 && pieceWidth+w > maxWidth {
			pieces = append(pieces, piece.String())
			piece.Reset()
			pieceWidth = 0
		}
		piece.WriteRune(r)
		pieceWidth += w
	}
	if piece.Len() > 0 {
		pieces = append(pieces, piece.String())
	}
	return pieces
}
