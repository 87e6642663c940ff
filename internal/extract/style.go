package extract

import (
	"diya-backend/internal/brand/color"
	"diya-backend/internal/brand/font"

	"github.com/PuerkitoBio/goquery"
)

const (
	MAX_HTML_COLORS = 20
	MAX_HTML_FONTS  = 5

	// only the head of large documents is searched for rgb() colors
	rgbSearchLimit = 50_000
)

// Colors returns the colors used by inline <style> blocks, style attributes and
// rgb() occurrences near the top of the document.
func Colors(doc *goquery.Document, html string) []string {
	set := color.NewSet()
	if html == "" {
		return set.List()
	}

	if doc != nil {
		doc.Find("style").Each(func(_ int, style *goquery.Selection) {
			css := style.Text()
			set.AddHex6(css)
			set.AddHex3(css)
		})
		doc.Find("[style]").Each(func(_ int, el *goquery.Selection) {
			set.AddHex6(el.AttrOr("style", ""))
		})
	}

	head := html
	if len(head) > rgbSearchLimit {
		head = head[:rgbSearchLimit]
	}
	set.AddRGB(head, false)

	colors := set.List()
	if len(colors) > MAX_HTML_COLORS {
		colors = colors[:MAX_HTML_COLORS]
	}
	return colors
}

// Fonts returns the families loaded from Google Fonts followed by the families
// declared in inline <style> blocks.
func Fonts(doc *goquery.Document) []string {
	if doc == nil {
		return []string{}
	}

	list := font.NewList()
	doc.Find("link[href]").Each(func(_ int, link *goquery.Selection) {
		for _, family := range font.FromGoogleFontsHref(link.AttrOr("href", "")) {
			list.Add(family)
		}
	})
	doc.Find("style").Each(func(_ int, style *goquery.Selection) {
		for _, family := range font.FromStyleTag(style.Text()) {
			list.Add(family)
		}
	})

	fonts := list.Families()
	if len(fonts) > MAX_HTML_FONTS {
		fonts = fonts[:MAX_HTML_FONTS]
	}
	return fonts
}
