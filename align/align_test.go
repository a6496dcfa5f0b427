package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panorama/lang"
)

func tabsOf(n int) []string {
	tabs := make([]string, n)
	for i := range tabs {
		tabs[i] = "tab"
	}
	return tabs
}

var sample = map[lang.Code][]string{
	lang.Indonesian: tabsOf(3),
	lang.English:    tabsOf(3),
	lang.Japanese:   tabsOf(2),
	lang.Chinese:    tabsOf(3),
	lang.Thai:       nil,
	lang.Vietnamese: {},
}

func TestGroups(t *testing.T) {
	groups := Groups(sample)
	assert.Equal(t, []Group{
		{TabCount: 2, Codes: []lang.Code{lang.Japanese}},
		{TabCount: 3, Codes: []lang.Code{lang.Chinese, lang.English, lang.Indonesian}},
	}, groups)
}

func TestGroupsExcludeUntabbed(t *testing.T) {
	for _, g := range Groups(sample) {
		assert.NotContains(t, g.Codes, lang.Thai)
		assert.NotContains(t, g.Codes, lang.Vietnamese)
		for _, c := range g.Codes {
			assert.Len(t, sample[c], g.TabCount)
		}
	}
	assert.Empty(t, Groups(map[lang.Code][]string{lang.Thai: nil}))
}

func TestSelect(t *testing.T) {
	groups := Groups(sample)

	got, err := Select([]lang.Code{lang.Indonesian, lang.Chinese}, groups)
	require.NoError(t, err)
	assert.Equal(t, []lang.Code{lang.Chinese, lang.Indonesian}, got)

	got, err = Select(nil, groups)
	require.NoError(t, err)
	assert.Equal(t, []lang.Code{lang.Japanese}, got)

	_, err = Select([]lang.Code{lang.English, lang.Japanese}, groups)
	assert.ErrorIs(t, err, ErrIncompatibleSelection)
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = Select([]lang.Code{lang.Thai}, groups)
	assert.ErrorIs(t, err, ErrIncompatibleSelection)

	_, err = Select([]lang.Code{lang.English}, nil)
	assert.ErrorIs(t, err, ErrNoGroups)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible([]lang.Code{lang.English, lang.Chinese}, sample))
	assert.False(t, Compatible([]lang.Code{lang.English, lang.Japanese}, sample))
	assert.False(t, Compatible([]lang.Code{lang.Thai}, sample))
	assert.False(t, Compatible(nil, sample))
}
