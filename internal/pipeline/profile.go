package pipeline

import (
	"diya-backend/internal/brand"
	"diya-backend/internal/brandfetch"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/scrapers/site"
	"diya-backend/lib/textutil"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	report_enrich_name_mismatch = "enrich.name-mismatch"
)

const (
	LABEL_PRIMARY    = "Primary"
	LABEL_SECONDARY  = "Secondary"
	LABEL_ACCENT     = "Accent"
	LABEL_BACKGROUND = "Background"
	LABEL_TEXT       = "Text"
	LABEL_DETECTED   = "Detected"
	LABEL_DEFAULT    = "Default"
)

// below this similarity the brand data API probably answered for another brand.
const nameMatchThreshold = 0.7

// ColorTag is a color and the role it plays, it is encoded as a [hex, label] pair.
type ColorTag struct {
	Hex   string
	Label string
}

func (c ColorTag) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Hex, c.Label})
}

func (c *ColorTag) UnmarshalJSON(data []byte) error {
	var pair []string
	err := json.Unmarshal(data, &pair)
	if err != nil {
		// a bare hex string is accepted too
		var hex string
		if json.Unmarshal(data, &hex) != nil {
			return fmt.Errorf("color tag: expected [hex, label] pair: %w", err)
		}
		pair = []string{hex}
	}
	if len(pair) == 0 {
		return fmt.Errorf("color tag: empty pair")
	}
	c.Hex = pair[0]
	c.Label = ""
	if len(pair) > 1 {
		c.Label = pair[1]
	}
	return nil
}

// Profile is the brand data the frontend edits and sends back for content generation.
type Profile struct {
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	Tagline        string                   `json:"tagline"`
	Colors         []ColorTag               `json:"colors"`
	Fonts          []string                 `json:"fonts"`
	ContentSummary string                   `json:"content_summary"`
	Images         []string                 `json:"images"`
	LogoURL        string                   `json:"logo_url"`
	Strategy       *brand.StrategicAnalysis `json:"strategy,omitempty"`
	BrandVibe      []string                 `json:"brand_vibe"`
	PagesAnalyzed  []string                 `json:"pages_analyzed"`
	Industry       string                   `json:"industry,omitempty"`
	Mission        string                   `json:"mission,omitempty"`
	Values         []string                 `json:"values,omitempty"`
}

func containsHexFold(tags []ColorTag, hex string) bool {
	for _, t := range tags {
		if strings.EqualFold(t.Hex, hex) {
			return true
		}
	}
	return false
}

// ToProfile converts extracted assets into a Profile.
func ToProfile(assets brand.BrandAssets) Profile {
	colors := []ColorTag{}
	push := func(hex, label string) {
		if hex != "" {
			colors = append(colors, ColorTag{Hex: hex, Label: label})
		}
	}
	push(assets.Colors.Primary, LABEL_PRIMARY)
	push(assets.Colors.Secondary, LABEL_SECONDARY)
	push(assets.Colors.Accent, LABEL_ACCENT)
	push(assets.Colors.Background, LABEL_BACKGROUND)
	push(assets.Colors.Text, LABEL_TEXT)
	for _, c := range assets.Colors.AllColors {
		if !containsHexFold(colors, c) {
			push(c, LABEL_DETECTED)
		}
	}

	fonts := []string{}
	for _, f := range assets.Fonts {
		if f.Family != "" && !textutil.ContainsFold(fonts, f.Family) {
			fonts = append(fonts, f.Family)
		}
	}

	logoURL := ""
	if assets.Logo != nil {
		logoURL = assets.Logo.URL
	}

	contentSummary := assets.CompanySummary
	if assets.Strategy != nil {
		if assets.Strategy.BrandVoice != "" {
			contentSummary += "\n\nBrand Voice: " + assets.Strategy.BrandVoice
		}
		if assets.Strategy.TargetAudience != "" {
			contentSummary += "\nTarget Audience: " + assets.Strategy.TargetAudience
		}
	}

	description := assets.MetaDescription
	if description == "" {
		description = assets.CompanySummary
	}

	vibe := assets.BrandVibe
	if vibe == nil {
		vibe = []string{}
	}
	tagline := ""
	if len(vibe) > 0 {
		tagline = strings.Join(vibe[:min(4, len(vibe))], " · ")
	}

	return Profile{
		Name:           assets.CompanyName,
		Description:    description,
		Tagline:        tagline,
		Colors:         colors,
		Fonts:          fonts,
		ContentSummary: contentSummary,
		Images:         []string{},
		LogoURL:        logoURL,
		Strategy:       assets.Strategy,
		BrandVibe:      vibe,
		PagesAnalyzed:  []string{assets.WebsiteURL},
	}
}

// Domain returns the host of a user supplied url (scheme optional) without "www.".
func Domain(link string) string {
	parsed, err := url.Parse(site.NormalizeURL(link))
	if err != nil || parsed.Host == "" {
		return strings.Split(strings.TrimSpace(link), "/")[0]
	}
	return strings.ReplaceAll(parsed.Host, "www.", "")
}

// NameFromDomain derives a display name from the first label of the domain,
// ex. "https://www.acme.co.uk/about" -> "Acme".
func NameFromDomain(link string) string {
	domain := Domain(link)
	label := strings.Split(domain, ".")[0]
	label = strings.Split(label, ":")[0]
	if label == "" {
		return "Your Brand"
	}
	return textutil.TitleWord(label)
}

// FallbackProfile is returned when a website could not be analyzed at all.
func FallbackProfile(link string, cause error) Profile {
	domain := Domain(link)
	reason := "unknown error"
	if cause != nil {
		reason = cause.Error()
	}
	return Profile{
		Name:        NameFromDomain(link),
		Description: "Brand analysis for " + domain,
		Colors: []ColorTag{
			{Hex: "#000000", Label: LABEL_DEFAULT},
			{Hex: "#FFFFFF", Label: LABEL_DEFAULT},
		},
		Fonts:          []string{DEFAULT_FONT},
		ContentSummary: "Unable to complete full AI analysis: " + reason,
		Images:         []string{},
		BrandVibe:      []string{},
		PagesAnalyzed:  []string{},
	}
}

// LookupName is the name a profile should be looked up by in the brand data API.
func LookupName(profile Profile, link string) string {
	name := strings.TrimSpace(profile.Name)
	lower := strings.ToLower(name)
	if name == "" || lower == "unknown" || lower == "unknown company" {
		return NameFromDomain(link)
	}
	return name
}

// Enrich merges brand data API results into a profile. Scraped colors and fonts
// keep precedence, the API only adds what is missing.
func Enrich(profile Profile, assets brandfetch.Assets, tel telemetry.API) Profile {
	if assets.Fetched && assets.Name != "" && profile.Name != "" {
		similarity := matchr.JaroWinkler(
			textutil.NormalizeName(profile.Name),
			textutil.NormalizeName(assets.Name),
			false,
		)
		if similarity < nameMatchThreshold {
			tel.ReportWarning(report_enrich_name_mismatch, profile.Name, assets.Name, similarity)
		}
	}

	if assets.Logo.URL != "" {
		profile.LogoURL = assets.Logo.URL
	}

	colors := append([]ColorTag{}, profile.Colors...)
	for _, c := range assets.Colors {
		if c.Value == "" || containsHexFold(colors, c.Value) {
			continue
		}
		colors = append(colors, ColorTag{Hex: c.Value, Label: textutil.TitleWord(c.Label)})
	}
	profile.Colors = colors

	fonts := append([]string{}, profile.Fonts...)
	for _, f := range assets.Fonts {
		if f.Value == "" || textutil.ContainsFold(fonts, f.Value) {
			continue
		}
		fonts = append(fonts, f.Value)
	}
	profile.Fonts = fonts

	guidelines := assets.Guidelines
	if profile.Tagline == "" && guidelines.Tagline != "" {
		profile.Tagline = guidelines.Tagline
	}
	if guidelines.Industry != "" {
		profile.Industry = guidelines.Industry
	}
	profile.Mission = guidelines.Mission
	profile.Values = guidelines.Values

	return profile
}
