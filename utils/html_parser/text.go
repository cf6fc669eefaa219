package html_parser

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var strictPolicy = bluemonday.StrictPolicy()

// NormalizeText NFC-normalizes s, collapses whitespace inside paragraphs and keeps
// blank-line paragraph breaks.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	blocks := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b = normalizeWhitespace(b); b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, "\n\n")
}

// StripTags removes every HTML tag from raw and returns plain text.
func StripTags(raw string) string {
	return normalizeWhitespace(strictPolicy.Sanitize(raw))
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func joinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// paragraphsFromHTML collects block text from an HTML fragment in document order.
func paragraphsFromHTML(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		if text := StripTags(html); text != "" {
			return []string{text}
		}
		return nil
	}

	var paragraphs []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, pre, blockquote").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("p, li, blockquote").Length() > 0 {
			return
		}
		if text := normalizeWhitespace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	if len(paragraphs) == 0 {
		if text := StripTags(html); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs
}

// segmentSentences splits text into pseudo-paragraphs of roughly target runes,
// breaking only after sentence terminators.
func segmentSentences(text string, target int) []string {
	text = normalizeWhitespace(text)
	if text == "" {
		return nil
	}

	var (
		out     []string
		current strings.Builder
	)
	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			out = append(out, p)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if !isSentenceEnd(r) {
			continue
		}
		atBoundary := i+1 == len(runes) || runes[i+1] == ' '
		if atBoundary && runeLen(current.String()) >= target {
			flush()
		}
	}
	flush()
	return out
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '؟', '。':
		return true
	}
	return false
}

func clampQuality(q float64) float64 {
	switch {
	case q < 0:
		return 0
	case q > 1:
		return 1
	}
	return q
}
