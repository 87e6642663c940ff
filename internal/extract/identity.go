// Package extract discovers brand assets in a parsed web page.
package extract

import (
	"diya-backend/lib/textutil"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	UNKNOWN         = "Unknown"
	UNKNOWN_COMPANY = "Unknown Company"
)

var titleSeparators = []string{"|", " - ", " – ", " — ", ":"}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}

// CompanyName guesses the name of the company behind the page.
func CompanyName(doc *goquery.Document) string {
	if doc == nil {
		return UNKNOWN
	}
	if name := metaContent(doc, `meta[property="og:site_name"]`); name != "" {
		return name
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return UNKNOWN_COMPANY
	}
	for _, sep := range titleSeparators {
		if !strings.Contains(title, sep) {
			continue
		}
		shortest := ""
		for _, part := range strings.Split(title, sep) {
			part = strings.TrimSpace(part)
			if len([]rune(part)) <= 1 {
				continue
			}
			if shortest == "" || len([]rune(part)) < len([]rune(shortest)) {
				shortest = part
			}
		}
		if shortest != "" {
			return shortest
		}
	}
	return textutil.Truncate(title, 50)
}

// Description returns the meta description falling back to the open graph description.
func Description(doc *goquery.Document) string {
	if doc == nil {
		return ""
	}
	if desc := metaContent(doc, `meta[name="description"]`); desc != "" {
		return desc
	}
	return metaContent(doc, `meta[property="og:description"]`)
}

func resolveAgainst(base *url.URL, ref string) string {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	return base.ResolveReference(parsed).String()
}

// Favicon returns the first icon link of the page, or /favicon.ico.
func Favicon(doc *goquery.Document, base *url.URL) string {
	fallback := resolveAgainst(base, "/favicon.ico")
	if doc == nil {
		return fallback
	}

	href := ""
	doc.Find("link[rel]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(link.AttrOr("rel", "")), "icon") {
			return true
		}
		href = strings.TrimSpace(link.AttrOr("href", ""))
		return false
	})
	if href == "" {
		return fallback
	}
	return resolveAgainst(base, href)
}
