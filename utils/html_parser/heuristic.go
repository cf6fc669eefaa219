package html_parser

import (
	"strings"

	"story-pipeline/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	minParagraphLength  = 40
	pseudoParagraphSize = 150
	densityWeight       = 50
)

// contentSelectors are tried in order before the densest-div fallback.
var contentSelectors = []string{
	"[itemprop='articleBody']",
	".article-body",
	".article__body",
	".article-content",
	".article__content",
	".article-text",
	".story-body",
	".story-content",
	".entry-content",
	".post-content",
	".post-body",
	".news-content",
	".news-body",
	".news-details",
	".details-body",
	".content-body",
	".main-content",
	".text-content",
	".field-name-body",
	"#article-body",
	"#articleBody",
	"#article-content",
	"#content-body",
	"article",
	"main",
}

var boilerplatePhrases = []string{
	"all rights reserved",
	"copyright ©",
	"© copyright",
	"subscribe to our",
	"subscribe now",
	"sign up for our newsletter",
	"share this article",
	"share on facebook",
	"share on twitter",
	"follow us on",
	"we use cookies",
	"cookie policy",
	"accept cookies",
	"click here to",
	"جميع الحقوق محفوظة",
	"حقوق النشر محفوظة",
	"اشترك في النشرة",
	"اشترك الآن",
	"النشرة البريدية",
	"شارك هذا المقال",
	"شارك الخبر",
	"تابعونا على",
	"ملفات تعريف الارتباط",
	"اقرأ أيضا",
	"اقرأ أيضاً",
}

// ExtractDOMHeuristic strips non-content regions, locates the article container and keeps
// its substantial paragraphs.
func ExtractDOMHeuristic(page *Page) (Candidate, bool) {
	doc, err := page.Document()
	if err != nil {
		return Candidate{}, false
	}
	stripNoise(doc)

	for _, sel := range contentSelectors {
		container := doc.Find(sel).First()
		if container.Length() == 0 {
			continue
		}
		paragraphs := containerParagraphs(container)
		if runeLen(joinParagraphs(paragraphs)) < domain.MinContentLength {
			continue
		}
		return heuristicCandidate(paragraphs, true), true
	}

	container := densestDiv(doc)
	if container == nil {
		return Candidate{}, false
	}
	paragraphs := containerParagraphs(container)
	if runeLen(joinParagraphs(paragraphs)) < domain.MinContentLength {
		return Candidate{}, false
	}
	return heuristicCandidate(paragraphs, false), true
}

func heuristicCandidate(paragraphs []string, structural bool) Candidate {
	return Candidate{
		Text:       joinParagraphs(paragraphs),
		Quality:    ScoreParagraphs(paragraphs, structural),
		Paragraphs: len(paragraphs),
	}
}

// densestDiv scores every div by paragraphs*weight + text length.
func densestDiv(doc *goquery.Document) *goquery.Selection {
	var (
		best      *goquery.Selection
		bestScore int
	)
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		score := s.Find("p").Length()*densityWeight + runeLen(normalizeWhitespace(s.Text()))
		if score > bestScore {
			best, bestScore = s, score
		}
	})
	return best
}

// containerParagraphs keeps long, non-boilerplate paragraphs. With fewer than two survivors
// the container text is re-segmented by sentence.
func containerParagraphs(container *goquery.Selection) []string {
	var paragraphs []string
	container.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := normalizeWhitespace(s.Text()); keepParagraph(text) {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) >= 2 {
		return paragraphs
	}

	var segmented []string
	for _, p := range segmentSentences(container.Text(), pseudoParagraphSize) {
		if !IsBoilerplate(p) {
			segmented = append(segmented, p)
		}
	}
	return segmented
}

func keepParagraph(text string) bool {
	return runeLen(text) >= minParagraphLength && !IsBoilerplate(text)
}

// IsBoilerplate reports whether text matches a known footer, sharing or consent phrase.
func IsBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
