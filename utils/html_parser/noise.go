package html_parser

import "github.com/PuerkitoBio/goquery"

// stripNoise removes regions that never hold article text. The head keeps its meta tags
// and JSON-LD so readability can still read byline, site name and description.
func stripNoise(doc *goquery.Document) {
	doc.Find("script:not([type='application/ld+json']), style, noscript, template, svg, iframe, embed, object, video, audio, canvas, form, button").Remove()
	doc.Find("body script").Remove()
	doc.Find("nav, header, footer, aside").Remove()

	for _, token := range noiseTokens {
		doc.Find("[class*='" + token + "'], [id*='" + token + "']").Remove()
	}

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		s.RemoveAttr("style")
		s.RemoveAttr("onclick")
		s.RemoveAttr("onload")
		s.RemoveAttr("onerror")
	})
}

var noiseTokens = []string{
	"navbar", "menu", "sidebar", "breadcrumb", "share", "social", "comment",
	"related", "newsletter", "subscribe", "cookie", "advert", "sponsor", "promo",
	"popup", "modal", "banner", "footer", "tags-list", "author-box",
}
