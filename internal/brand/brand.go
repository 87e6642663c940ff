// Package brand contains the data model produced by brand extraction.
package brand

// ColorPalette is the set of brand colors, all values are upper-case #RRGGBB.
type ColorPalette struct {
	Primary    string   `json:"primary"`
	Secondary  string   `json:"secondary,omitempty"`
	Accent     string   `json:"accent,omitempty"`
	Background string   `json:"background"`
	Text       string   `json:"text"`
	AllColors  []string `json:"all_colors"`
}

type ExtractedLogo struct {
	URL        string `json:"url"`
	Format     string `json:"format"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	IsSVG      bool   `json:"is_svg"`
	Base64Data string `json:"base64_data,omitempty"`
}

const (
	FONT_SOURCE_CSS         = "CSS"
	FONT_SOURCE_AI_INFERRED = "AI Inferred"
)

type FontInfo struct {
	Family    string `json:"family"`
	Weight    string `json:"weight,omitempty"`
	Style     string `json:"style,omitempty"`
	Source    string `json:"source,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	IsBody    bool   `json:"is_body"`
	// Category is one of the font.CATEGORY_* constants, Fallback the family
	// to render with when Family is not available.
	Category string `json:"category"`
	Fallback string `json:"fallback"`
}

// StrategicAnalysis is the marketing persona synthesized by the model.
type StrategicAnalysis struct {
	BrandArchetype       string   `json:"brand_archetype"`
	BrandVoice           string   `json:"brand_voice"`
	ContentPillars       []string `json:"content_pillars"`
	VisualStyleGuide     []string `json:"visual_style_guide"`
	RecommendedPostTypes []string `json:"recommended_post_types"`
	CampaignIdeas        []string `json:"campaign_ideas"`
	TargetAudience       string   `json:"target_audience"`
	KeyStrengths         []string `json:"key_strengths"`
	DesignStyle          string   `json:"design_style"`
}

// BrandAssets is everything extracted from a single website.
type BrandAssets struct {
	WebsiteURL          string             `json:"website_url"`
	CompanyName         string             `json:"company_name"`
	CompanySummary      string             `json:"company_summary"`
	Logo                *ExtractedLogo     `json:"logo,omitempty"`
	Colors              ColorPalette       `json:"colors"`
	Fonts               []FontInfo         `json:"fonts"`
	FaviconURL          string             `json:"favicon_url"`
	MetaDescription     string             `json:"meta_description"`
	ExtractionTimestamp string             `json:"extraction_timestamp"`
	BrandVibe           []string           `json:"brand_vibe"`
	Strategy            *StrategicAnalysis `json:"strategy,omitempty"`
}
