// Package lang defines the language codes the site publishes in and the
// helpers that read and rewrite the language segment of article URLs.
package lang

import (
	"regexp"
	"strings"
)

// Code identifies one language edition of an article.
type Code string

const (
	Chinese    Code = "zh"
	English    Code = "en"
	Japanese   Code = "ja"
	Vietnamese Code = "vi"
	Thai       Code = "th"
	Indonesian Code = "id"
)

// All lists every supported code in canonical order. Anything that shows
// languages to the user orders them this way, not by discovery order.
var All = []Code{Chinese, English, Japanese, Vietnamese, Thai, Indonesian}

// segmentPattern matches the first /<code>/ path segment of a URL.
var segmentPattern = regexp.MustCompile(`/(zh|en|ja|vi|th|id)/`)

// Valid reports whether s is a supported code.
func Valid(s string) bool {
	return Index(Code(s)) >= 0
}

// Index returns the canonical position of c, or -1.
func Index(c Code) int {
	for i, code := range All {
		if code == c {
			return i
		}
	}
	return -1
}

// Detect returns the language of the first /<code>/ segment in rawURL.
func Detect(rawURL string) (Code, bool) {
	m := segmentPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return Code(m[1]), true
}

// Swap replaces the first language segment of rawURL with target.
// The second return value is false when rawURL has no language segment.
func Swap(rawURL string, target Code) (string, bool) {
	loc := segmentPattern.FindStringIndex(rawURL)
	if loc == nil {
		return rawURL, false
	}
	return rawURL[:loc[0]] + "/" + string(target) + "/" + rawURL[loc[1]:], true
}

// Sort returns codes in canonical order, dropping unknown codes and duplicates.
func Sort(codes []Code) []Code {
	seen := make(map[Code]bool, len(codes))
	for _, c := range codes {
		seen[c] = true
	}
	var out []Code
	for _, c := range All {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// listSeparators are accepted between codes typed by a user: "en ja", "en,ja",
// "en/ja", "en|ja" and "en-ja" all mean the same thing.
const listSeparators = ", \t\n/|-"

// ParseList splits a user supplied list of codes, lower-casing each entry.
// Unknown entries are kept so callers can report them.
func ParseList(s string) []Code {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return strings.ContainsRune(listSeparators, r)
	})
	codes := make([]Code, 0, len(fields))
	for _, f := range fields {
		codes = append(codes, Code(strings.ToLower(f)))
	}
	return codes
}
