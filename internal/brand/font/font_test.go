package font

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"Poppins", true},
		{"Playfair Display !important", true},
		{"", false},
		{"  ", false},
		{"var(--font-sans)", false},
		{"--brand-font", false},
		{"sans-serif", false},
		{"Segoe UI", false},
		{"Roboto", false},
		{"Material Icons", false},
		{"Twemoji Mozilla", false},
		{"Ab", false},
		{"Broken)", false},
		{`Quoted"`, false},
		{"Bad!name", false},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, IsValid(tc.name), "IsValid(%q)", tc.name)
	}
}

func TestFromGoogleFontsHref(t *testing.T) {
	href := "https://fonts.googleapis.com/css?family=Lato|Roboto|Open+Sans:400,700&display=swap"
	require.Equal(t, []string{"Lato", "Open Sans"}, FromGoogleFontsHref(href))

	css2 := "https://fonts.googleapis.com/css2?family=Space+Grotesk:wght@400&family=DM+Serif+Display"
	require.Equal(t, []string{"Space Grotesk", "DM Serif Display"}, FromGoogleFontsHref(css2))

	require.Empty(t, FromGoogleFontsHref("https://example.com/fonts.css?family=Lato"))
}

func TestFromCSS(t *testing.T) {
	css := `
	body { font-family: "Poppins", Helvetica, sans-serif; }
	h1 { font-family: 'Playfair Display', serif }
	code { font-family: var(--mono), Menlo; }
	p { font-family: poppins, "Karla"; }
	`
	require.Equal(t, []string{"Poppins", "Playfair Display", "Karla"}, FromCSS(css))
}

func TestFromStyleTag(t *testing.T) {
	css := `
	body { font-family: 'Manrope', Arial, sans-serif; }
	.btn { font-family: Arial, "Karla"; }
	h2 { font-family: Manrope; }
	`
	require.Equal(t, []string{"Manrope"}, FromStyleTag(css))
}

func TestList(t *testing.T) {
	list := NewList()
	require.True(t, list.Add("Inter"))
	require.False(t, list.Add("inter"))
	require.Equal(t, 1, list.Len())
	require.Equal(t, []string{"Inter"}, list.Families())
}

func TestCategory(t *testing.T) {
	testCases := []struct {
		family   string
		style    string
		expected string
	}{
		{"Inter", "", CATEGORY_SANS_SERIF},
		{"Noto Serif", "", CATEGORY_SERIF},
		{"Open Sans", "serif", CATEGORY_SERIF},
		{"Open Sans", "sans-serif", CATEGORY_SANS_SERIF},
		{"Dancing Script", "", CATEGORY_HANDWRITING},
		{"Fira Code", "", CATEGORY_MONOSPACE},
		{"Lato", "monospace", CATEGORY_MONOSPACE},
		{"Oswald", "", CATEGORY_DISPLAY},
		{"Lato", "Display", CATEGORY_DISPLAY},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, Category(tc.family, tc.style), "Category(%q, %q)", tc.family, tc.style)
	}
	require.Equal(t, "Playfair Display", Fallback("Merriweather Serif", ""))
}
