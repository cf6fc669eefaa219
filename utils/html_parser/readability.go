package html_parser

import (
	"strings"

	"codeberg.org/readeck/go-readability/v2"
)

// ExtractReadability runs go-readability over the noise-stripped document. Byline, site
// name and excerpt come from the head metadata when the page carries it.
func ExtractReadability(page *Page) (Candidate, bool) {
	doc, err := page.Document()
	if err != nil {
		return Candidate{}, false
	}
	stripNoise(doc)

	cleaned, err := doc.Html()
	if err != nil || strings.TrimSpace(cleaned) == "" {
		return Candidate{}, false
	}

	article, err := readability.FromReader(strings.NewReader(cleaned), page.URL)
	if err != nil {
		return Candidate{}, false
	}

	var paragraphs []string
	var htmlBuf strings.Builder
	if err := article.RenderHTML(&htmlBuf); err == nil {
		paragraphs = paragraphsFromHTML(htmlBuf.String())
	}
	if len(paragraphs) == 0 {
		var textBuf strings.Builder
		if err := article.RenderText(&textBuf); err != nil {
			return Candidate{}, false
		}
		if text := normalizeWhitespace(textBuf.String()); text != "" {
			paragraphs = []string{text}
		}
	}
	if len(paragraphs) == 0 {
		return Candidate{}, false
	}

	text := joinParagraphs(paragraphs)
	quality := ScoreReadability(ReadabilitySignals{
		Length:     runeLen(text),
		Paragraphs: len(paragraphs),
		Byline:     strings.TrimSpace(article.Byline()) != "",
		SiteName:   strings.TrimSpace(article.SiteName()) != "",
		Excerpt:    strings.TrimSpace(article.Excerpt()) != "",
	})
	return Candidate{Text: text, Quality: quality, Paragraphs: len(paragraphs)}, true
}
