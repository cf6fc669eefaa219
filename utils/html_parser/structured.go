package html_parser

import (
	"encoding/json"
	"strings"

	"story-pipeline/domain"

	"github.com/PuerkitoBio/goquery"
)

var articleTypes = map[string]bool{
	"NewsArticle":          true,
	"Article":              true,
	"ReportageNewsArticle": true,
	"BlogPosting":          true,
	"AnalysisNewsArticle":  true,
}

// ExtractStructuredData reads article bodies publishers embed as metadata: JSON-LD first,
// then the Next.js page payload, then description fields.
func ExtractStructuredData(page *Page) (Candidate, bool) {
	doc, err := page.Document()
	if err != nil {
		return Candidate{}, false
	}

	var candidates []Candidate
	if c, ok := jsonLDArticleBody(doc); ok {
		candidates = append(candidates, c)
	}
	if c, ok := nextDataArticleBody(doc); ok {
		candidates = append(candidates, c)
	}
	if c, ok := descriptionFields(doc); ok {
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	best := candidates[0]
	for _, c := range candidates {
		if runeLen(c.Text) >= domain.MinContentLength {
			return c, true
		}
		if runeLen(c.Text) > runeLen(best.Text) {
			best = c
		}
	}
	return best, true
}

func jsonLDArticleBody(doc *goquery.Document) (Candidate, bool) {
	var found Candidate
	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		body := findArticleBody(data)
		if body == "" {
			return true
		}
		paragraphs := paragraphsFromHTML(body)
		text := joinParagraphs(paragraphs)
		quality := 0.7
		if runeLen(text) >= 300 {
			quality = 0.9
		}
		found = Candidate{Text: text, Quality: quality, Paragraphs: len(paragraphs)}
		return false
	})
	return found, found.Text != ""
}

// findArticleBody walks JSON-LD objects, arrays and @graph lists for an article node.
func findArticleBody(node any) string {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			if body := findArticleBody(item); body != "" {
				return body
			}
		}
	case map[string]any:
		if isArticleType(v["@type"]) {
			if body, ok := v["articleBody"].(string); ok && strings.TrimSpace(body) != "" {
				return body
			}
		}
		if graph, ok := v["@graph"]; ok {
			return findArticleBody(graph)
		}
	}
	return ""
}

func isArticleType(t any) bool {
	switch v := t.(type) {
	case string:
		return articleTypes[v]
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && articleTypes[s] {
				return true
			}
		}
	}
	return false
}

func nextDataArticleBody(doc *goquery.Document) (Candidate, bool) {
	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return Candidate{}, false
	}

	var data struct {
		Props struct {
			PageProps struct {
				Article struct {
					BodyHTML string `json:"bodyHtml"`
				} `json:"article"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return Candidate{}, false
	}

	body := data.Props.PageProps.Article.BodyHTML
	if strings.TrimSpace(body) == "" {
		return Candidate{}, false
	}

	paragraphs := paragraphsFromHTML(body)
	text := joinParagraphs(paragraphs)
	quality := 0.7
	if runeLen(text) >= 300 {
		quality = 0.85
	}
	return Candidate{Text: text, Quality: quality, Paragraphs: len(paragraphs)}, text != ""
}

func descriptionFields(doc *goquery.Document) (Candidate, bool) {
	for _, sel := range []string{"meta[name='description']", "meta[property='og:description']"} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if text := normalizeWhitespace(v); text != "" {
				return Candidate{Text: text, Quality: 0.5, Paragraphs: 1}, true
			}
		}
	}
	return Candidate{}, false
}
