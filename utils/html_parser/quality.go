package html_parser

// ReadabilitySignals are the inputs to the readability quality score.
type ReadabilitySignals struct {
	Length     int
	Paragraphs int
	Byline     bool
	SiteName   bool
	Excerpt    bool
}

// ScoreReadability weights text length, metadata presence and paragraph count.
func ScoreReadability(s ReadabilitySignals) float64 {
	var score float64
	switch {
	case s.Length >= 3000:
		score += 0.5
	case s.Length >= 1500:
		score += 0.4
	case s.Length >= 800:
		score += 0.3
	default:
		score += 0.2
	}
	if s.Byline {
		score += 0.1
	}
	if s.SiteName {
		score += 0.05
	}
	if s.Excerpt {
		score += 0.05
	}
	switch {
	case s.Paragraphs >= 5:
		score += 0.2
	case s.Paragraphs >= 3:
		score += 0.1
	}
	return clampQuality(score)
}

// ScoreParagraphs scores heuristic output. structural is true when a known content
// container matched rather than the densest-div fallback.
func ScoreParagraphs(paragraphs []string, structural bool) float64 {
	if len(paragraphs) == 0 {
		return 0
	}

	total := 0
	for _, p := range paragraphs {
		total += runeLen(p)
	}
	avg := total / len(paragraphs)

	var score float64
	switch n := len(paragraphs); {
	case n >= 5:
		score += 0.3
	case n >= 3:
		score += 0.2
	case n >= 2:
		score += 0.1
	}
	switch {
	case avg >= 100:
		score += 0.25
	case avg >= 60:
		score += 0.15
	case avg >= 40:
		score += 0.1
	}
	switch {
	case total >= 1500:
		score += 0.3
	case total >= 800:
		score += 0.2
	case total >= 400:
		score += 0.1
	}
	if structural {
		score += 0.15
	}
	return clampQuality(score)
}
