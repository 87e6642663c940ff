package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://example.com/about/")
	require.NoError(t, err)

	table := []struct {
		ref      string
		expected string
	}{
		{ref: "", expected: ""},
		{ref: "data:image/png;base64,AAAA", expected: ""},
		{ref: "//cdn.example.com/logo.svg", expected: "https://cdn.example.com/logo.svg"},
		{ref: "http://other.com/a.png", expected: "http://other.com/a.png"},
		{ref: "/img/logo.png", expected: "https://example.com/img/logo.png"},
		{ref: "logo.png", expected: "https://example.com/about/logo.png"},
	}
	for _, row := range table {
		require.Equal(t, row.expected, ResolveURL(base, row.ref), row.ref)
	}
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Pricing plans", CleanText("  Pricing\n\t\tplans \u0007"))
	require.Equal(t, "", CleanText(" \n "))
}

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>Launch <b>day</b> soon</p>`))
	require.NoError(t, err)
	require.Equal(t, "Launch day soon", GetText(doc.Find("p").Nodes[0]))
}
