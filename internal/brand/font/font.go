// Package font discovers font families in stylesheets and classifies them.
package font

import (
	"diya-backend/lib/textutil"
	"net/url"
	"regexp"
	"strings"
)

// generic and system families which say nothing about a brand.
var generic = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"inherit", "initial", "unset", "revert", "sans-serif", "serif",
		"monospace", "cursive", "fantasy", "system-ui", "ui-sans-serif",
		"ui-serif", "ui-monospace", "-apple-system", "blinkmacsystemfont",
		"segoe ui", "arial", "helvetica", "times new roman", "times",
		"courier new", "courier", "verdana", "georgia", "tahoma",

		"apple color emoji", "segoe ui emoji", "segoe ui symbol",
		"noto color emoji", "noto emoji", "android emoji",
		"emojisymbols", "symbola",

		"sfmono-regular", "sf mono", "menlo", "consolas", "monaco",
		"liberation mono", "lucida console", "dejavu sans mono",
		"droid sans mono", "ubuntu mono", "source code pro",

		"roboto", "noto sans", "liberation sans", "cantarell",
		"fira sans", "droid sans", "oxygen", "ubuntu",
	} {
		generic[name] = struct{}{}
	}
}

// IsGeneric reports whether name is a CSS generic or common system family.
func IsGeneric(name string) bool {
	_, ok := generic[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsValid reports whether name looks like a real, brand specific font family.
func IsValid(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	lower = strings.TrimSpace(strings.TrimSuffix(lower, "!important"))
	if lower == "" {
		return false
	}
	if strings.HasPrefix(lower, "var(") || strings.HasPrefix(lower, "--") {
		return false
	}
	if _, ok := generic[lower]; ok {
		return false
	}
	for _, keyword := range []string{"emoji", "symbol", "icon"} {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	if len(lower) < 3 {
		return false
	}
	if strings.HasSuffix(lower, ")") ||
		strings.HasSuffix(lower, `"`) ||
		strings.Contains(lower, "!") {
		return false
	}
	return true
}

// List is an insertion-ordered list of families, deduplicated case-insensitively.
type List struct {
	families []string
	seen     map[string]struct{}
}

func NewList() *List {
	return &List{seen: map[string]struct{}{}}
}

func (l *List) Add(family string) bool {
	key := strings.ToLower(family)
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	l.families = append(l.families, family)
	return true
}

func (l *List) Len() int {
	return len(l.families)
}

func (l *List) Families() []string {
	out := make([]string, len(l.families))
	copy(out, l.families)
	return out
}

var googleFamilyRegex = regexp.MustCompile(`family=([^&:]+)`)

// FromGoogleFontsHref returns the families requested by a fonts.googleapis.com
// stylesheet link, e.g. "?family=Open+Sans:400,700|Lato".
func FromGoogleFontsHref(href string) []string {
	if !strings.Contains(href, "fonts.googleapis.com") {
		return nil
	}
	out := []string{}
	for _, match := range googleFamilyRegex.FindAllStringSubmatch(href, -1) {
		raw := match[1]
		if unescaped, err := url.QueryUnescape(raw); err == nil {
			raw = unescaped
		}
		for _, name := range strings.Split(raw, "|") {
			name = strings.ReplaceAll(name, "+", " ")
			name = strings.TrimSpace(strings.SplitN(name, ":", 2)[0])
			if name == "" || IsGeneric(name) {
				continue
			}
			out = append(out, name)
		}
	}
	return out
}

var (
	fontFamilyRegex     = regexp.MustCompile(`font-family\s*:\s*([^;}{]+)`)
	styleTagFamilyRegex = regexp.MustCompile(`font-family\s*:\s*['"]?([^;'"}\n]+)`)
)

func cleanFamily(name string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(name), `'"`))
}

// FromCSS returns every valid family listed in the font-family declarations of a
// stylesheet, in order of appearance.
func FromCSS(css string) []string {
	list := NewList()
	for _, match := range fontFamilyRegex.FindAllStringSubmatch(css, -1) {
		for _, part := range strings.Split(match[1], ",") {
			name := cleanFamily(part)
			if IsValid(name) {
				list.Add(name)
			}
		}
	}
	return list.Families()
}

// FromStyleTag returns the first family of each font-family declaration in an
// inline <style> block.
func FromStyleTag(css string) []string {
	list := NewList()
	for _, match := range styleTagFamilyRegex.FindAllStringSubmatch(css, -1) {
		name := cleanFamily(strings.SplitN(cleanFamily(match[1]), ",", 2)[0])
		if IsValid(name) {
			list.Add(name)
		}
	}
	return list.Families()
}

const (
	CATEGORY_SANS_SERIF  = "sans-serif"
	CATEGORY_SERIF       = "serif"
	CATEGORY_DISPLAY     = "display"
	CATEGORY_HANDWRITING = "handwriting"
	CATEGORY_MONOSPACE   = "monospace"
)

// fallback families used when rendering with a family that is not available.
var categoryFallback = map[string]string{
	CATEGORY_SANS_SERIF:  "Inter",
	CATEGORY_SERIF:       "Playfair Display",
	CATEGORY_DISPLAY:     "Oswald",
	CATEGORY_HANDWRITING: "Dancing Script",
	CATEGORY_MONOSPACE:   "JetBrains Mono",
}

// Category classifies a family using its name first and the style hint second.
func Category(family, style string) string {
	family = strings.ToLower(strings.TrimSpace(family))
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = CATEGORY_SANS_SERIF
	}

	switch {
	case strings.Contains(family, "serif") && !strings.Contains(family, "sans"),
		strings.Contains(style, "serif") && !strings.Contains(style, "sans"):
		return CATEGORY_SERIF
	case textutil.MatchName(family, []string{"hand", "script", "dancing"}),
		strings.Contains(style, "handwriting"):
		return CATEGORY_HANDWRITING
	case textutil.MatchName(family, []string{"mono", "code", "jetbrains"}),
		strings.Contains(style, "monospace"):
		return CATEGORY_MONOSPACE
	case textutil.MatchName(family, []string{"oswald", "impact"}),
		strings.Contains(style, "display"):
		return CATEGORY_DISPLAY
	}
	return CATEGORY_SANS_SERIF
}

// Fallback returns the family to render with when `family` itself is unavailable.
func Fallback(family, style string) string {
	return categoryFallback[Category(family, style)]
}
