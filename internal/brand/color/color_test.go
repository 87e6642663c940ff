package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromHSL(t *testing.T) {
	testCases := []struct {
		h, s, l  int
		expected string
	}{
		{0, 100, 50, "#FF0000"},
		{120, 100, 50, "#00FF00"},
		{240, 100, 50, "#0000FF"},
		{0, 0, 100, "#FFFFFF"},
		{0, 0, 0, "#000000"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, FromHSL(tc.h, tc.s, tc.l), "hsl(%d, %d%%, %d%%)", tc.h, tc.s, tc.l)
	}
}

func TestFromRGBClamps(t *testing.T) {
	require.Equal(t, "#FF000A", FromRGB(300, -1, 10))
}

func TestSaturation(t *testing.T) {
	require.Equal(t, 1.0, Saturation("#FF0000"))
	require.Equal(t, 0.0, Saturation("#000000"))
	require.Equal(t, 0.0, Saturation("#808080"))
	require.Equal(t, 0.0, Saturation("not a color"))
	require.Equal(t, 0.0, Saturation("#FFF"))
	require.InDelta(t, 0.498, Saturation("#FF8080"), 0.01)
}

func TestFromStylesheet(t *testing.T) {
	css := `
	a { color: #123456; background: rgba(10, 20, 30, 0.5); }
	b { color: hsl(0, 100%, 50%); border-color: #ff0000; }
	:root { --brand-primary: #ff6600; --brand-dark: #123456; }
	`
	got := FromStylesheet(css)
	require.Equal(t, []string{"#FF6600", "#123456", "#FF0000", "#0A141E"}, got)
}

func TestSetHex3(t *testing.T) {
	set := NewSet()
	set.AddHex3("a{color:#abc} b{color:#123456}")
	require.Equal(t, []string{"#AABBCC"}, set.List())
}

func TestSetRGBWithoutAlpha(t *testing.T) {
	set := NewSet()
	set.AddRGB("rgb(255, 0, 0) rgba(0, 255, 0, 0.3)", false)
	require.Equal(t, []string{"#FF0000"}, set.List())
}

func TestSortBoring(t *testing.T) {
	colors := []string{"#FFFFFF", "#3366CC", "#000000", "#FF6600"}
	require.Equal(t, []string{"#3366CC", "#FF6600", "#FFFFFF", "#000000"}, SortBoring(colors, 20))
	require.Equal(t, []string{"#3366CC", "#FF6600"}, SortBoring(colors, 2))
}

func TestBuildPalette(t *testing.T) {
	css := []string{"#FFFFFF", "#F5F5F5", "#1F2937", "#3366CC", "#FF0000"}
	ai := []string{"#00aa55", "not-a-color"}

	palette := BuildPalette(css, ai)
	require.Equal(t, "#FF0000", palette.Primary)
	require.Equal(t, "#3366CC", palette.Secondary)
	require.Equal(t, "#00AA55", palette.Accent)
	require.Equal(t, "#F5F5F5", palette.Background)
	require.Equal(t, "#1F2937", palette.Text)
}

func TestBuildPaletteDefaults(t *testing.T) {
	palette := BuildPalette(nil, nil)
	require.Equal(t, DEFAULT_PRIMARY, palette.Primary)
	require.Empty(t, palette.Secondary)
	require.Empty(t, palette.Accent)
	require.Equal(t, DEFAULT_BACKGROUND, palette.Background)
	require.Equal(t, DEFAULT_TEXT, palette.Text)
}

func TestBuildPaletteOnlyNeutralAI(t *testing.T) {
	palette := BuildPalette([]string{"#333333"}, []string{"#111827", "#FFFFFF"})
	require.Equal(t, "#111827", palette.Primary)
	require.Equal(t, "#FFFFFF", palette.Secondary)
	require.Empty(t, palette.Accent)
	require.Equal(t, "#333333", palette.Text)
}
