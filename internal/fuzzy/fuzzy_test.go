package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzakany23/ncsh-agent/internal/fuzzy"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"key west", "key west", 0},
		{"key west", "key west fc", 3},
		{"café", "cafe", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, fuzzy.Levenshtein(tc.s1, tc.s2), "Levenshtein(%q, %q)", tc.s1, tc.s2)
	}
}

func TestMatchTeams_ExactWins(t *testing.T) {
	teams := []string{"Key West FC", "Key West FC (1)", "The Strikers", "Orlando City"}

	got := fuzzy.MatchTeams("key west fc", teams, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "Key West FC", got[0].Name)
	assert.Equal(t, 1.0, got[0].Confidence)
}

func TestMatchTeams_ResolvesAliasAndVariants(t *testing.T) {
	teams := []string{"Key West FC", "Key West FC (1)", "The Strikers"}

	got := fuzzy.MatchTeams("Key West", teams, 0)
	require.GreaterOrEqual(t, len(got), 2, "both Key West variants should match")
	assert.Equal(t, "Key West FC", got[0].Name)
	for _, m := range got[:2] {
		assert.Contains(t, m.Name, "Key West")
		assert.GreaterOrEqual(t, m.Confidence, 0.85)
	}
}

func TestMatchTeams_DropsUnrelatedNames(t *testing.T) {
	teams := []string{"Orlando City", "The Strikers"}
	got := fuzzy.MatchTeams("Key West", teams, 0)
	assert.Empty(t, got)
}

func TestMatchTeams_RespectsLimit(t *testing.T) {
	teams := []string{"FC One", "FC Two", "FC Three", "FC Four", "FC Five", "FC Six"}
	got := fuzzy.MatchTeams("FC", teams, 3)
	assert.LessOrEqual(t, len(got), 3)
}

func TestMatchTeams_EmptyName(t *testing.T) {
	assert.Nil(t, fuzzy.MatchTeams("   ", []string{"Key West FC"}, 0))
}

func TestMatchTeams_DeterministicOrderOnTies(t *testing.T) {
	teams := []string{"AC Beta", "AC Alfa"}
	got := fuzzy.MatchTeams("AC", teams, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "AC Alfa", got[0].Name)
}
