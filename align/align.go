// Package align decides which language editions can be shown side by side.
// Two editions interleave tab by tab only when they have the same, positive
// number of tabs.
package align

import (
	"errors"
	"fmt"
	"slices"

	"panorama/lang"
)

var (
	// ErrIncompatible is the parent of every selection error; callers fall
	// back to full-article output when they see it.
	ErrIncompatible = errors.New("languages cannot be interleaved")

	ErrNoGroups              = fmt.Errorf("%w: no language has tab structure", ErrIncompatible)
	ErrIncompatibleSelection = fmt.Errorf("%w: selection spans more than one group", ErrIncompatible)
)

// Group is a set of languages sharing the same tab count.
type Group struct {
	TabCount int
	Codes    []lang.Code // canonical order
}

// Contains reports whether every code is in the group.
func (g Group) Contains(codes ...lang.Code) bool {
	for _, c := range codes {
		if !slices.Contains(g.Codes, c) {
			return false
		}
	}
	return true
}

// Groups partitions the languages with at least one tab by tab count.
// Groups come in ascending tab count.
func Groups(tabs map[lang.Code][]string) []Group {
	byCount := make(map[int][]lang.Code)
	for _, code := range lang.All {
		if n := len(tabs[code]); n > 0 {
			byCount[n] = append(byCount[n], code)
		}
	}

	groups := make([]Group, 0, len(byCount))
	for n, codes := range byCount {
		groups = append(groups, Group{TabCount: n, Codes: codes})
	}
	slices.SortFunc(groups, func(a, b Group) int { return a.TabCount - b.TabCount })
	return groups
}

// Select validates a requested interleaving. An empty request picks the
// first group. The result is in canonical order.
func Select(requested []lang.Code, groups []Group) ([]lang.Code, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	if len(requested) == 0 {
		return slices.Clone(groups[0].Codes), nil
	}
	for _, g := range groups {
		if g.Contains(requested...) {
			return lang.Sort(requested), nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrIncompatibleSelection, requested)
}

// Compatible reports whether selection is non-empty and every selected
// language has the same positive tab count.
func Compatible(selection []lang.Code, tabs map[lang.Code][]string) bool {
	if len(selection) == 0 {
		return false
	}
	n := len(tabs[selection[0]])
	if n == 0 {
		return false
	}
	for _, c := range selection[1:] {
		if len(tabs[c]) != n {
			return false
		}
	}
	return true
}
