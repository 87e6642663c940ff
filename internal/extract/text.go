package extract

import (
	"diya-backend/lib/textutil"
	"diya-backend/pkg/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	MAX_TEXT_PARTS = 200
	minTextLength  = 6
)

const (
	nonContentSelector = "script, style, noscript, iframe, svg"
	contentSelector    = "h1, h2, h3, h4, p, li, td, span, a, div, section, article"
)

// PageText condenses the readable content of a page into unique lines of text,
// `doc` is not modified.
func PageText(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}

	root := doc.Selection.Clone()
	root.Find(nonContentSelector).Remove()

	parts := []string{}
	root.Find(contentSelector).Each(func(_ int, el *goquery.Selection) {
		var text strings.Builder
		for _, node := range el.Nodes {
			text.WriteString(htmlutil.GetText(node))
		}
		cleaned := htmlutil.CleanText(text.String())
		if len([]rune(cleaned)) < minTextLength {
			return
		}
		parts = append(parts, cleaned)
	})

	unique := textutil.Dedupe(parts)
	if len(unique) > MAX_TEXT_PARTS {
		unique = unique[:MAX_TEXT_PARTS]
	}
	return strings.Join(unique, "\n")
}
