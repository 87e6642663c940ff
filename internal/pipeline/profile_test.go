package pipeline

import (
	"diya-backend/internal/brand"
	"diya-backend/internal/brandfetch"
	"diya-backend/internal/components/telemetry"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestColorTagJSON(t *testing.T) {
	data, err := json.Marshal([]ColorTag{{Hex: "#FF6600", Label: LABEL_PRIMARY}})
	require.NoError(t, err)
	require.JSONEq(t, `[["#FF6600", "Primary"]]`, string(data))

	var tags []ColorTag
	err = json.Unmarshal([]byte(`[["#111111", "Text"], ["#222222"], "#333333"]`), &tags)
	require.NoError(t, err)
	require.Equal(t, []ColorTag{
		{Hex: "#111111", Label: "Text"},
		{Hex: "#222222"},
		{Hex: "#333333"},
	}, tags)

	require.Error(t, json.Unmarshal([]byte(`[[]]`), &tags))
	require.Error(t, json.Unmarshal([]byte(`[42]`), &tags))
}

func TestToProfile(t *testing.T) {
	strategy := brand.DefaultStrategy()
	assets := brand.BrandAssets{
		WebsiteURL:      "https://acme.com/",
		CompanyName:     "Acme",
		CompanySummary:  "Acme builds rockets.",
		MetaDescription: "",
		Logo:            &brand.ExtractedLogo{URL: "https://acme.com/logo.svg"},
		Colors: brand.ColorPalette{
			Primary:    "#FF6600",
			Accent:     "#3366CC",
			Background: "#FFFFFF",
			Text:       "#1A1A1A",
			AllColors:  []string{"#1A1A1A", "#ff6600", "#00AA55"},
		},
		Fonts: []brand.FontInfo{
			{Family: "Karla"},
			{Family: "karla"},
			{Family: "Space Grotesk"},
		},
		BrandVibe: []string{"bold", "technical", "optimistic", "fast", "loud"},
		Strategy:  &strategy,
	}

	profile := ToProfile(assets)
	expected := Profile{
		Name:        "Acme",
		Description: "Acme builds rockets.",
		Tagline:     "bold · technical · optimistic · fast",
		Colors: []ColorTag{
			{"#FF6600", LABEL_PRIMARY},
			{"#3366CC", LABEL_ACCENT},
			{"#FFFFFF", LABEL_BACKGROUND},
			{"#1A1A1A", LABEL_TEXT},
			{"#00AA55", LABEL_DETECTED},
		},
		Fonts: []string{"Karla", "Space Grotesk"},
		ContentSummary: "Acme builds rockets." +
			"\n\nBrand Voice: " + strategy.BrandVoice +
			"\nTarget Audience: " + strategy.TargetAudience,
		Images:        []string{},
		LogoURL:       "https://acme.com/logo.svg",
		Strategy:      &strategy,
		BrandVibe:     assets.BrandVibe,
		PagesAnalyzed: []string{"https://acme.com/"},
	}
	if diff := cmp.Diff(expected, profile); diff != "" {
		t.Fatalf("unexpected profile (-want +got):\n%s", diff)
	}
}

func TestToProfileMinimal(t *testing.T) {
	profile := ToProfile(brand.BrandAssets{CompanyName: "Acme", MetaDescription: "meta"})
	require.Equal(t, "meta", profile.Description)
	require.Empty(t, profile.Tagline)
	require.Empty(t, profile.LogoURL)
	require.NotNil(t, profile.Colors)
	require.NotNil(t, profile.BrandVibe)
	require.Nil(t, profile.Strategy)
}

func TestNameFromDomain(t *testing.T) {
	testCases := []struct {
		link     string
		expected string
	}{
		{"https://www.acme.co.uk/about", "Acme"},
		{"globex.com", "Globex"},
		{"http://localhost:8080", "Localhost"},
		{"INITECH.io/path", "Initech"},
		{"", "Your Brand"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, NameFromDomain(tc.link), tc.link)
	}
}

func TestFallbackProfile(t *testing.T) {
	profile := FallbackProfile("www.acme.com", errors.New("timeout"))
	require.Equal(t, "Acme", profile.Name)
	require.Equal(t, "Brand analysis for acme.com", profile.Description)
	require.Equal(t, []ColorTag{{"#000000", LABEL_DEFAULT}, {"#FFFFFF", LABEL_DEFAULT}}, profile.Colors)
	require.Equal(t, []string{DEFAULT_FONT}, profile.Fonts)
	require.Equal(t, "Unable to complete full AI analysis: timeout", profile.ContentSummary)
	require.Empty(t, profile.PagesAnalyzed)
}

func TestLookupName(t *testing.T) {
	require.Equal(t, "Acme", LookupName(Profile{Name: "Acme"}, "https://globex.com"))
	require.Equal(t, "Globex", LookupName(Profile{Name: "Unknown"}, "https://globex.com"))
	require.Equal(t, "Globex", LookupName(Profile{Name: "Unknown Company"}, "https://globex.com"))
	require.Equal(t, "Globex", LookupName(Profile{}, "globex.com"))
}

func TestEnrich(t *testing.T) {
	profile := Profile{
		Name:    "Acme",
		Tagline: "bold · technical",
		Colors:  []ColorTag{{"#FF6600", LABEL_PRIMARY}, {"#FFFFFF", LABEL_BACKGROUND}},
		Fonts:   []string{"Karla", "inter"},
		LogoURL: "https://acme.com/logo.svg",
	}
	assets := brandfetch.DefaultAssets()
	assets.Fetched = true
	assets.Name = "Acme Inc"
	assets.Logo.URL = "https://asset.brandfetch.io/acme.svg"
	assets.Colors[0].Value = "#ff6600"
	assets.Guidelines = brandfetch.Guidelines{
		Tagline:  "Rockets for everyone",
		Mission:  "Make space boring",
		Values:   []string{"Reuse"},
		Industry: "Aerospace",
	}

	tel := telemetry.NewMemoryAPI()
	enriched := Enrich(profile, assets, tel)

	require.Equal(t, "https://asset.brandfetch.io/acme.svg", enriched.LogoURL)
	require.Equal(t, []ColorTag{
		{"#FF6600", LABEL_PRIMARY},
		{"#FFFFFF", LABEL_BACKGROUND},
		{"#34D399", "Secondary"},
		{"#6EE7B7", "Tertiary"},
		{"#1F2937", "Text"},
	}, enriched.Colors)
	require.Equal(t, []string{"Karla", "inter", "Segoe UI"}, enriched.Fonts)
	require.Equal(t, "bold · technical", enriched.Tagline)
	require.Equal(t, "Aerospace", enriched.Industry)
	require.Equal(t, "Make space boring", enriched.Mission)
	require.Equal(t, []string{"Reuse"}, enriched.Values)
	require.False(t, tel.Has(telemetry.REPORT_WARNING, report_enrich_name_mismatch))

	require.Len(t, profile.Colors, 2, "the input profile should not be modified")
}

func TestEnrichNameMismatch(t *testing.T) {
	assets := brandfetch.DefaultAssets()
	assets.Fetched = true
	assets.Name = "Zylophonix"

	tel := telemetry.NewMemoryAPI()
	enriched := Enrich(Profile{Name: "Acme"}, assets, tel)
	require.True(t, tel.Has(telemetry.REPORT_WARNING, report_enrich_name_mismatch))
	require.Empty(t, enriched.Tagline)
	require.Empty(t, enriched.Industry)
}
