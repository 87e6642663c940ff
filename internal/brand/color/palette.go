package color

import (
	"diya-backend/internal/brand"
	"sort"
	"strings"
)

const DEFAULT_PRIMARY = "#4A90D9"
const DEFAULT_BACKGROUND = "#FFFFFF"
const DEFAULT_TEXT = "#1A1A1A"

// minimum saturation before a color is considered part of the brand rather than a neutral.
const vibrantSaturation = 0.15

var boring = toSet(
	"#FFFFFF", "#000000", "#333333", "#666666", "#999999",
	"#CCCCCC", "#EEEEEE", "#F5F5F5", "#FAFAFA", "#808080",
)

var neutrals = toSet(
	"#FFFFFF", "#000000", "#333333", "#666666", "#999999",
	"#CCCCCC", "#EEEEEE", "#F5F5F5", "#FAFAFA", "#808080",
	"#FFF", "#000", "#E5E5E5", "#D4D4D4", "#F4F4F4",
	"#EDEDED", "#EFEFEF", "#9CA3AF", "#6B7280", "#D1D5DB",
	"#F3F4F6", "#F9FAFB", "#E5E7EB", "#374151", "#4B5563",
	"#1F2937", "#111827", "#030712",
)

var lightShades = toSet(
	"#FAFAFA", "#F5F5F5", "#F8F8F8", "#F0F0F0",
	"#F9FAFB", "#F3F4F6", "#F4F4F4",
)

var darkShades = toSet(
	"#111111", "#1A1A1A", "#212121", "#222222",
	"#232323", "#2D2D2D", "#333333", "#0F172A", "#1E293B",
	"#111827", "#1F2937",
)

func toSet(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func in(set map[string]struct{}, c string) bool {
	_, ok := set[strings.ToUpper(c)]
	return ok
}

// IsNeutral reports whether c is one of the well known grays/black/white.
func IsNeutral(c string) bool {
	return in(neutrals, c)
}

// SortBoring moves the most common neutral colors behind every other color and
// caps the result at `limit` entries.
func SortBoring(colors []string, limit int) []string {
	interesting := []string{}
	dull := []string{}
	for _, c := range colors {
		if in(boring, c) {
			dull = append(dull, c)
			continue
		}
		interesting = append(interesting, c)
	}
	out := append(interesting, dull...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func isVibrant(c string) bool {
	return !IsNeutral(c) && Saturation(c) > vibrantSaturation
}

// ValidHexes returns the upper-cased #RRGGBB entries of list, dropping everything else.
func ValidHexes(list []string) []string {
	out := []string{}
	for _, c := range list {
		if IsHex(c) {
			out = append(out, strings.ToUpper(c))
		}
	}
	return out
}

func contains(list []string, c string) bool {
	for _, e := range list {
		if e == c {
			return true
		}
	}
	return false
}

// BuildPalette picks primary/secondary/accent from the most vibrant scraped colors,
// falling back to the model's suggestions, and background/text from well known shades.
// AllColors is left to the caller.
func BuildPalette(cssColors, aiColors []string) brand.ColorPalette {
	vibrant := []string{}
	for _, c := range cssColors {
		if isVibrant(c) {
			vibrant = append(vibrant, c)
		}
	}
	sortBySaturation(vibrant)

	aiHex := ValidHexes(aiColors)
	pool := append([]string{}, vibrant...)
	for _, c := range aiHex {
		if isVibrant(c) && !contains(vibrant, c) {
			pool = append(pool, c)
		}
	}

	primary := DEFAULT_PRIMARY
	if len(pool) > 0 {
		primary = pool[0]
	} else if len(aiHex) > 0 {
		primary = aiHex[0]
	}

	secondary := ""
	if len(pool) > 1 {
		secondary = firstNotIn(append(append([]string{}, pool[1:]...), aiHex...), primary)
	} else {
		secondary = firstNotIn(aiHex, primary)
	}

	accentCandidates := aiHex
	if len(pool) > 2 {
		accentCandidates = append(append([]string{}, pool[2:]...), aiHex...)
	}
	accent := firstNotIn(accentCandidates, primary, secondary)

	background := DEFAULT_BACKGROUND
	for _, c := range cssColors {
		if in(lightShades, c) {
			background = strings.ToUpper(c)
			break
		}
	}

	text := DEFAULT_TEXT
	for _, c := range cssColors {
		if in(darkShades, c) {
			text = strings.ToUpper(c)
			break
		}
	}

	return brand.ColorPalette{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Background: background,
		Text:       text,
	}
}

func firstNotIn(candidates []string, used ...string) string {
	for _, c := range candidates {
		if !contains(used, c) {
			return c
		}
	}
	return ""
}

func sortBySaturation(colors []string) {
	sort.SliceStable(colors, func(i, j int) bool {
		return Saturation(colors[i]) > Saturation(colors[j])
	})
}
