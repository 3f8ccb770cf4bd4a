package metrics_test

import (
	"testing"

	"github.com/mzakany23/ncsh-agent/internal/metrics"
)

func TestCountFeatures(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want metrics.Features
	}{
		{"empty", "", metrics.Features{}},
		{"single word", "hello", metrics.Features{Bytes: 5, Runes: 5, Words: 1, Lines: 1}},
		{"two lines", "a b\nc", metrics.Features{Bytes: 5, Runes: 5, Words: 3, Lines: 2}},
		{"trailing newline", "x\n", metrics.Features{Bytes: 2, Runes: 2, Words: 1, Lines: 2}},
		{"multibyte", "café", metrics.Features{Bytes: 5, Runes: 4, Words: 1, Lines: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := metrics.CountFeatures(tc.in)
			if got != tc.want {
				t.Fatalf("CountFeatures(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := metrics.EstimateTokens(""); got != 0 {
		t.Fatalf("empty input: got %d want 0", got)
	}
	if got := metrics.EstimateTokens("ab"); got != 1 {
		t.Fatalf("short input floors at 1: got %d", got)
	}
	if got := metrics.EstimateTokens("abcdefgh"); got != 2 {
		t.Fatalf("8 runes: got %d want 2", got)
	}
}
