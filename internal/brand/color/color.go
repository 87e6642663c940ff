// Package color parses CSS color notations and ranks colors into a brand palette.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexRegex      = regexp.MustCompile(`#([0-9a-fA-F]{6})\b`)
	hex3Regex     = regexp.MustCompile(`#([0-9a-fA-F]{3})\b`)
	rgbRegex      = regexp.MustCompile(`rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)`)
	rgbaRegex     = regexp.MustCompile(`rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)`)
	hslRegex      = regexp.MustCompile(`hsl\(\s*(\d+)\s*,\s*(\d+)%?\s*,\s*(\d+)%?\s*\)`)
	cssVarRegex   = regexp.MustCompile(`--[\w-]+\s*:\s*#([0-9a-fA-F]{6})\b`)
	validHexRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// IsHex reports whether s is exactly a #RRGGBB color.
func IsHex(s string) bool {
	return validHexRegex.MatchString(s)
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// FromRGB formats an RGB triplet as #RRGGBB, components are clamped to 0-255.
func FromRGB(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

// FromHSL converts hue (degrees), saturation and lightness (percent) to #RRGGBB.
func FromHSL(h, s, l int) string {
	sf := float64(s) / 100
	lf := float64(l) / 100
	c := (1 - math.Abs(2*lf-1)) * sf
	x := c * (1 - math.Abs(math.Mod(float64(h)/60, 2)-1))
	m := lf - c/2

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	return FromRGB(
		int((r1+m)*255),
		int((g1+m)*255),
		int((b1+m)*255),
	)
}

// Saturation returns (max-min)/max over the RGB channels of a #RRGGBB color,
// invalid colors and black have a saturation of 0.
func Saturation(hex string) float64 {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0
	}
	value, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0
	}
	r := float64((value>>16)&0xFF) / 255
	g := float64((value>>8)&0xFF) / 255
	b := float64(value&0xFF) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	if maxC == 0 {
		return 0
	}
	return (maxC - minC) / maxC
}

// Set is an insertion-ordered set of colors.
type Set struct {
	list []string
	seen map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: map[string]struct{}{}}
}

// Add appends c if it is not already present, it returns true if c was added.
func (s *Set) Add(c string) bool {
	if _, ok := s.seen[c]; ok {
		return false
	}
	s.seen[c] = struct{}{}
	s.list = append(s.list, c)
	return true
}

func (s *Set) Len() int {
	return len(s.list)
}

// List returns a copy of the colors in insertion order.
func (s *Set) List() []string {
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

// AddHex6 adds every #RRGGBB occurrence in text.
func (s *Set) AddHex6(text string) {
	for _, match := range hexRegex.FindAllStringSubmatch(text, -1) {
		s.Add("#" + strings.ToUpper(match[1]))
	}
}

// AddHex3 adds every #RGB occurrence in text, expanded to #RRGGBB.
func (s *Set) AddHex3(text string) {
	for _, match := range hex3Regex.FindAllStringSubmatch(text, -1) {
		short := strings.ToUpper(match[1])
		s.Add(fmt.Sprintf("#%c%c%c%c%c%c", short[0], short[0], short[1], short[1], short[2], short[2]))
	}
}

// AddRGB adds every rgb(r, g, b) occurrence in text, when `alpha` is true
// rgba() and alpha-less rgb prefixes also match.
func (s *Set) AddRGB(text string, alpha bool) {
	regex := rgbRegex
	if alpha {
		regex = rgbaRegex
	}
	for _, match := range regex.FindAllStringSubmatch(text, -1) {
		s.Add(FromRGB(atoi(match[1]), atoi(match[2]), atoi(match[3])))
	}
}

// AddHSL adds every hsl(h, s%, l%) occurrence in text.
func (s *Set) AddHSL(text string) {
	for _, match := range hslRegex.FindAllStringSubmatch(text, -1) {
		s.Add(FromHSL(atoi(match[1]), atoi(match[2]), atoi(match[3])))
	}
}

// PromoteCSSVariables moves hex colors assigned to custom properties to the
// front, keeping their declaration order.
func (s *Set) PromoteCSSVariables(text string) {
	promoted := []string{}
	isPromoted := map[string]struct{}{}
	for _, match := range cssVarRegex.FindAllStringSubmatch(text, -1) {
		c := "#" + strings.ToUpper(match[1])
		if _, ok := isPromoted[c]; ok {
			continue
		}
		isPromoted[c] = struct{}{}
		promoted = append(promoted, c)
		s.seen[c] = struct{}{}
	}
	if len(promoted) == 0 {
		return
	}
	for _, c := range s.list {
		if _, ok := isPromoted[c]; !ok {
			promoted = append(promoted, c)
		}
	}
	s.list = promoted
}

// FromStylesheet extracts all colors of a stylesheet in the order they are most useful:
// custom property colors first, then hex, rgb(a) and hsl colors.
func FromStylesheet(css string) []string {
	set := NewSet()
	set.AddHex6(css)
	set.AddRGB(css, true)
	set.AddHSL(css)
	set.PromoteCSSVariables(css)
	return set.List()
}
