package html_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreParagraphs(t *testing.T) {
	p := func(n, length int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = strings.Repeat("x", length)
		}
		return out
	}

	tests := map[string]struct {
		paragraphs []string
		structural bool
		want       float64
	}{
		"empty":                           {paragraphs: nil, want: 0},
		"single short paragraph":          {paragraphs: p(1, 30), want: 0},
		"two medium paragraphs":           {paragraphs: p(2, 60), want: 0.1 + 0.15},
		"three long paragraphs":           {paragraphs: p(3, 300), want: 0.2 + 0.25 + 0.2},
		"five long paragraphs structural": {paragraphs: p(5, 320), structural: true, want: 0.3 + 0.25 + 0.3 + 0.15},
		"average forty":                   {paragraphs: p(4, 40), want: 0.2 + 0.1},
		"capped at one":                   {paragraphs: p(20, 400), structural: true, want: 1.0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ScoreParagraphs(tc.paragraphs, tc.structural), 1e-9)
		})
	}
}

func TestScoreReadability(t *testing.T) {
	tests := map[string]struct {
		signals ReadabilitySignals
		want    float64
	}{
		"minimal":            {signals: ReadabilitySignals{Length: 300, Paragraphs: 1}, want: 0.2},
		"medium with byline": {signals: ReadabilitySignals{Length: 900, Paragraphs: 3, Byline: true}, want: 0.3 + 0.1 + 0.1},
		"long with metadata": {signals: ReadabilitySignals{Length: 1600, Paragraphs: 5, Byline: true, SiteName: true, Excerpt: true}, want: 0.4 + 0.1 + 0.05 + 0.05 + 0.2},
		"very long full":     {signals: ReadabilitySignals{Length: 5000, Paragraphs: 12, Byline: true, SiteName: true, Excerpt: true}, want: 0.9},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ScoreReadability(tc.signals), 1e-9)
		})
	}
}
