package extract

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDocument(t testing.TB, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func mustURL(t testing.TB, link string) *url.URL {
	t.Helper()
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	return parsed
}

func TestCompanyName(t *testing.T) {
	testCases := []struct {
		html     string
		expected string
	}{
		{`<head><meta property="og:site_name" content=" Acme Corp "><title>Home | Acme</title></head>`, "Acme Corp"},
		{`<head><title>Acme | The best rockets on the market</title></head>`, "Acme"},
		{`<head><title>Welcome - Globex Corporation</title></head>`, "Welcome"},
		{`<head><title>Initech: x</title></head>`, "Initech"},
		{`<head><title>` + strings.Repeat("a", 60) + `</title></head>`, strings.Repeat("a", 50)},
		{`<body>no title</body>`, UNKNOWN_COMPANY},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, CompanyName(mustDocument(t, tc.html)), tc.html)
	}
	require.Equal(t, UNKNOWN, CompanyName(nil))
}

func TestDescription(t *testing.T) {
	doc := mustDocument(t, `<head>
		<meta property="og:description" content="og text">
		<meta name="description" content="meta text">
	</head>`)
	require.Equal(t, "meta text", Description(doc))

	doc = mustDocument(t, `<head><meta property="og:description" content="og text"></head>`)
	require.Equal(t, "og text", Description(doc))

	require.Empty(t, Description(mustDocument(t, `<head></head>`)))
	require.Empty(t, Description(nil))
}

func TestFavicon(t *testing.T) {
	base := mustURL(t, "https://acme.com/about/")

	doc := mustDocument(t, `<head>
		<link rel="stylesheet" href="/a.css">
		<link rel="Shortcut Icon" href="img/fav.png">
	</head>`)
	require.Equal(t, "https://acme.com/about/img/fav.png", Favicon(doc, base))
	require.Equal(t, "https://acme.com/favicon.ico", Favicon(mustDocument(t, `<head></head>`), base))
	require.Equal(t, "https://acme.com/favicon.ico", Favicon(nil, base))
}

func TestLogoPrefersStrongestSignal(t *testing.T) {
	base := mustURL(t, "https://www.acme.com/")
	doc := mustDocument(t, `<html><head>
		<link rel="apple-touch-icon" href="/touch.png">
		<meta property="og:image" content="https://cdn.acme.com/og.png">
	</head><body>
		<header>
			<img src="/menu.png">
			<img class="site-logo" data-src="/lazy-logo.svg 1x, /lazy-logo@2x.svg 2x" src="data:image/gif;base64,AAAA">
		</header>
		<img alt="Company logo" src="//static.acme.com/footer.png">
	</body></html>`)

	candidates := LogoCandidates(doc, base)
	require.Equal(t, []LogoCandidate{
		{URL: "https://www.acme.com/menu.png", Weight: weight_header_image},
		{URL: "https://www.acme.com/lazy-logo.svg", Weight: weight_header_image + weight_extra_signal},
		{URL: "https://static.acme.com/footer.png", Weight: weight_logo_alt},
		{URL: "https://www.acme.com/touch.png", Weight: weight_touch_icon},
		{URL: "https://cdn.acme.com/og.png", Weight: weight_og_image},
	}, candidates)
	require.Equal(t, "https://www.acme.com/lazy-logo.svg", Logo(doc, base))
}

func TestLogoBrandAnchor(t *testing.T) {
	base := mustURL(t, "https://acme.com/")
	doc := mustDocument(t, `<body>
		<a class="navbar-brand" href="/"><img src="/brand.png"></a>
		<meta property="og:image" content="/og.png">
	</body>`)
	require.Equal(t, "https://acme.com/brand.png", Logo(doc, base))
}

func TestLogoTiesKeepDocumentOrder(t *testing.T) {
	base := mustURL(t, "https://acme.com/")
	doc := mustDocument(t, `<body>
		<img class="logo" src="/first.png">
		<img class="logo" src="/second.png">
	</body>`)
	require.Equal(t, "https://acme.com/first.png", Logo(doc, base))
}

func TestLogoFallsBackToGoogleFavicon(t *testing.T) {
	base := mustURL(t, "https://www.acme.com/products")
	doc := mustDocument(t, `<body><img src="/hero.jpg"></body>`)
	require.Equal(
		t,
		"https://t3.gstatic.com/faviconV2?client=SOCIAL&type=FAVICON&fallback_opts=TYPE,SIZE,URL&url=https://acme.com&size=128",
		Logo(doc, base),
	)
	require.Empty(t, Logo(nil, base))
	require.Empty(t, GoogleFaviconURL(nil))
}

func TestColors(t *testing.T) {
	html := `<html><head><style>
		body { color: #1a1a1a; background: #fff; }
		.btn { background: #ff6600; }
	</style></head><body>
		<div style="border: 1px solid #00AA55; color: #abc"></div>
		<span style="color: rgb(10, 20, 30)">x</span>
	</body></html>`
	doc := mustDocument(t, html)
	require.Equal(t, []string{"#1A1A1A", "#FF6600", "#FFFFFF", "#00AA55", "#0A141E"}, Colors(doc, html))
	require.Empty(t, Colors(doc, ""))
}

func TestColorsCapped(t *testing.T) {
	var css strings.Builder
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&css, ".c%d { color: #%06X; }\n", i, i)
	}
	html := "<style>" + css.String() + "</style>"
	colors := Colors(mustDocument(t, html), html)
	require.Len(t, colors, MAX_HTML_COLORS)
	require.Equal(t, "#000001", colors[0])
}

func TestFonts(t *testing.T) {
	doc := mustDocument(t, `<head>
		<link href="https://fonts.googleapis.com/css2?family=Space+Grotesk:wght@400;700&family=Roboto&display=swap" rel="stylesheet">
		<style>
			body { font-family: 'Karla', sans-serif; }
			h1 { font-family: "Space Grotesk"; }
			code { font-family: var(--mono); }
		</style>
	</head>`)
	require.Equal(t, []string{"Space Grotesk", "Karla"}, Fonts(doc))
	require.Empty(t, Fonts(nil))
}

func TestPageText(t *testing.T) {
	doc := mustDocument(t, `<html><head><script>var tracking = "ignore me please";</script></head><body>
		<h1>Rockets for everyone</h1>
		<p>We build   reusable
		rockets.</p>
		<p>We build reusable rockets.</p>
		<a href="/">Home</a>
		<noscript>Enable javascript to continue</noscript>
	</body></html>`)

	text := PageText(doc)
	require.Equal(t, "Rockets for everyone\nWe build reusable rockets.", text)

	require.Equal(t, 1, doc.Find("script").Length(), "the document should not be modified")
	require.Empty(t, PageText(nil))
}
