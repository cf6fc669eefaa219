// Package html_parser turns fetched article HTML into clean text through an ordered
// list of extraction strategies.
package html_parser

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"story-pipeline/domain"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched document. Strategies parse their own copy since some mutate the tree.
type Page struct {
	URL  *url.URL
	HTML string
}

// NewPage wraps html fetched from rawURL. An unparsable URL is kept as nil.
func NewPage(rawURL, html string) *Page {
	u, _ := url.Parse(rawURL)
	return &Page{URL: u, HTML: html}
}

// Document parses a fresh goquery document.
func (p *Page) Document() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
}

// Candidate is one strategy's output before the length floor is applied.
type Candidate struct {
	Text       string
	Quality    float64
	Paragraphs int
}

// Strategy is one extraction technique. Extract reports false when it found nothing.
type Strategy struct {
	Method  domain.ExtractionMethod
	Extract func(*Page) (Candidate, bool)
}

// DefaultStrategies returns the cascade in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Method: domain.ExtractionMethodStructuredData, Extract: ExtractStructuredData},
		{Method: domain.ExtractionMethodReadability, Extract: ExtractReadability},
		{Method: domain.ExtractionMethodDOMHeuristic, Extract: ExtractDOMHeuristic},
	}
}

// RunCascade returns the first candidate whose normalized text reaches minLength runes.
// When none does, Content is nil and Method is none.
func RunCascade(page *Page, strategies []Strategy, minLength int) domain.ExtractionResult {
	for _, s := range strategies {
		c, ok := s.Extract(page)
		if !ok {
			continue
		}
		text := NormalizeText(c.Text)
		n := utf8.RuneCountInString(text)
		if n < minLength {
			continue
		}
		return domain.ExtractionResult{
			Content: &text,
			Method:  s.Method,
			Quality: clampQuality(c.Quality),
			Length:  n,
		}
	}
	return domain.ExtractionResult{Method: domain.ExtractionMethodNone}
}

// Extract runs the default cascade with the package content floor.
func Extract(rawURL, html string) domain.ExtractionResult {
	return RunCascade(NewPage(rawURL, html), DefaultStrategies(), domain.MinContentLength)
}
