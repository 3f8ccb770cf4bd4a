// Package fuzzy resolves rough team names against the names that actually
// appear in the dataset. League data is full of variants ("Key West FC",
// "Key West FC (1)", "KEY WEST"), so exact lookups routinely miss.
package fuzzy

import (
	"sort"
	"strings"
)

// Match is a candidate team name with a [0,1] confidence score.
type Match struct {
	Name       string  `json:"team_name"`
	Distance   int     `json:"distance"`
	Confidence float64 `json:"confidence"`
}

// DefaultLimit caps how many matches are returned when the caller passes limit <= 0.
const DefaultLimit = 5

// Threshold below which candidates are dropped entirely.
const minConfidence = 0.4

// MatchTeams ranks candidates against the requested name. Scoring:
//   - case-insensitive exact match: confidence 1.0
//   - substring containment either way: at least 0.85
//   - otherwise 1 - dist/maxLen using Levenshtein distance on the lowered names
//
// Results are sorted by confidence descending, then name ascending for
// deterministic output, and truncated to limit.
func MatchTeams(name string, candidates []string, limit int) []Match {
	if limit <= 0 {
		limit = DefaultLimit
	}
	needle := normalize(name)
	if needle == "" {
		return nil
	}

	matches := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		hay := normalize(cand)
		if hay == "" {
			continue
		}
		dist := Levenshtein(needle, hay)
		conf := confidence(needle, hay, dist)
		if conf < minConfidence {
			continue
		}
		matches = append(matches, Match{Name: cand, Distance: dist, Confidence: conf})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Name < matches[j].Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func confidence(needle, hay string, dist int) float64 {
	if needle == hay {
		return 1.0
	}
	base := 0.0
	if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
		base = 0.85
	}
	max := len([]rune(needle))
	if l := len([]rune(hay)); l > max {
		max = l
	}
	ratio := 1.0 - float64(dist)/float64(max)
	if ratio > base {
		return ratio
	}
	return base
}

// Levenshtein computes the edit distance between two strings, rune-wise.
func Levenshtein(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

func minInt(nums ...int) int {
	m := nums[0]
	for _, n := range nums[1:] {
		if n < m {
			m = n
		}
	}
	return m
}
