package extract

import (
	"diya-backend/pkg/htmlutil"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// logo signal weights, an image matching several signals gets a bonus per extra signal.
const (
	weight_header_image = 100
	weight_logo_class   = 90
	weight_logo_id      = 85
	weight_logo_alt     = 80
	weight_logo_src     = 70
	weight_brand_anchor = 60
	weight_touch_icon   = 40
	weight_og_image     = 20

	weight_extra_signal = 10
)

var lazySrcAttrs = []string{"data-src", "data-lazy-src", "data-original"}

type LogoCandidate struct {
	URL    string
	Weight int
}

func containsLogo(s string) bool {
	return strings.Contains(strings.ToLower(s), "logo")
}

// realSrc returns the url an image actually loads, lazy loading attributes win
// over src and only the first srcset style entry is used.
func realSrc(base *url.URL, sel *goquery.Selection) string {
	for _, attr := range lazySrcAttrs {
		value := strings.TrimSpace(sel.AttrOr(attr, ""))
		if value == "" {
			continue
		}
		first := strings.TrimSpace(strings.Split(value, ",")[0])
		first = strings.Split(first, " ")[0]
		if resolved := htmlutil.ResolveURL(base, first); resolved != "" {
			return resolved
		}
	}
	if resolved := htmlutil.ResolveURL(base, sel.AttrOr("src", "")); resolved != "" {
		return resolved
	}
	return htmlutil.ResolveURL(base, sel.AttrOr("content", ""))
}

func imageWeight(img *goquery.Selection) int {
	weights := []int{}
	if img.Closest("header, nav, .navbar").Length() > 0 {
		weights = append(weights, weight_header_image)
	}
	if containsLogo(img.AttrOr("class", "")) {
		weights = append(weights, weight_logo_class)
	}
	if containsLogo(img.AttrOr("id", "")) {
		weights = append(weights, weight_logo_id)
	}
	if containsLogo(img.AttrOr("alt", "")) {
		weights = append(weights, weight_logo_alt)
	}
	src := img.AttrOr("src", "")
	if containsLogo(src) && !strings.HasPrefix(src, "data:") {
		weights = append(weights, weight_logo_src)
	}
	anchor := img.Closest("a")
	if anchor.Length() > 0 {
		class := strings.ToLower(anchor.AttrOr("class", ""))
		if strings.Contains(class, "brand") || strings.Contains(class, "logo") {
			weights = append(weights, weight_brand_anchor)
		}
	}

	if len(weights) == 0 {
		return 0
	}
	best := 0
	for _, w := range weights {
		best = max(best, w)
	}
	return best + weight_extra_signal*(len(weights)-1)
}

// LogoCandidates scores every image and icon that could be the brand's logo.
func LogoCandidates(doc *goquery.Document, base *url.URL) []LogoCandidate {
	if doc == nil {
		return nil
	}

	candidates := []LogoCandidate{}
	push := func(link string, weight int) {
		if link == "" || weight <= 0 {
			return
		}
		candidates = append(candidates, LogoCandidate{URL: link, Weight: weight})
	}

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		weight := imageWeight(img)
		if weight == 0 {
			return
		}
		push(realSrc(base, img), weight)
	})

	doc.Find("link[rel]").Each(func(_ int, link *goquery.Selection) {
		if !strings.Contains(strings.ToLower(link.AttrOr("rel", "")), "apple-touch-icon") {
			return
		}
		push(htmlutil.ResolveURL(base, link.AttrOr("href", "")), weight_touch_icon)
	})

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, meta *goquery.Selection) {
		push(htmlutil.ResolveURL(base, meta.AttrOr("content", "")), weight_og_image)
	})

	return candidates
}

// GoogleFaviconURL returns the 128px favicon Google serves for the domain of `base`.
func GoogleFaviconURL(base *url.URL) string {
	if base == nil || base.Host == "" {
		return ""
	}
	domain := strings.ReplaceAll(base.Host, "www.", "")
	return fmt.Sprintf(
		"https://t3.gstatic.com/faviconV2?client=SOCIAL&type=FAVICON&fallback_opts=TYPE,SIZE,URL&url=https://%s&size=128",
		domain,
	)
}

// Logo returns the highest weighted logo candidate, the first one wins ties.
// Pages without any candidate get the google favicon of their domain.
func Logo(doc *goquery.Document, base *url.URL) string {
	if doc == nil {
		return ""
	}
	var best *LogoCandidate
	candidates := LogoCandidates(doc, base)
	for i := range candidates {
		c := &candidates[i]
		if best == nil || c.Weight > best.Weight {
			best = c
		}
	}
	if best != nil {
		return best.URL
	}
	return GoogleFaviconURL(base)
}
