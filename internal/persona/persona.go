// Package persona synthesizes a brand persona from the text of a website.
package persona

import (
	"context"
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/llm"
	"diya-backend/lib/textutil"
	"fmt"
	"strings"
)

const (
	report_analyzer_analyze = "analyzer.analyze"
)

// MAX_PAGE_TEXT is how much of the condensed page text is sent to the model.
const MAX_PAGE_TEXT = 4000

type Input struct {
	CompanyName string
	Description string
	PageText    string
	URL         string
}

// Analysis is the model's reading of a brand, every field may be empty.
type Analysis struct {
	CompanySummary string         `json:"company_summary"`
	BrandVibe      []string       `json:"brand_vibe"`
	BrandColors    []string       `json:"brand_colors"`
	BrandFonts     []string       `json:"brand_fonts"`
	Strategy       map[string]any `json:"strategy"`
}

func (a Analysis) Empty() bool {
	return a.CompanySummary == "" &&
		len(a.BrandVibe) == 0 &&
		len(a.BrandColors) == 0 &&
		len(a.BrandFonts) == 0 &&
		len(a.Strategy) == 0
}

type Analyzer struct {
	// nil when no api key is configured
	provider llm.Provider
	model    string
	tel      telemetry.API
}

// NewAnalyzer creates an analyzer which prompts `model`, a nil provider makes
// every analysis empty.
func NewAnalyzer(provider llm.Provider, model string, tel telemetry.API) Analyzer {
	assert.NotNil(tel)
	if model == "" {
		model = llm.DEFAULT_FAST_MODEL
	}
	return Analyzer{
		provider: provider,
		model:    model,
		tel:      telemetry.NewScopedAPI("persona", tel),
	}
}

// Analyze makes a single model call, an unconfigured provider yields an empty
// analysis and no error.
func (a Analyzer) Analyze(ctx context.Context, input Input) (Analysis, error) {
	if a.provider == nil {
		a.tel.ReportDebug("no llm provider configured, skipping analysis")
		return Analysis{}, nil
	}

	prompt := BuildPrompt(input)
	reply, err := a.provider.GenerateJSON(ctx, a.model, prompt)
	if err != nil {
		a.tel.ReportBroken(report_analyzer_analyze, fmt.Errorf("generate: %w", err), input.URL)
		return Analysis{}, err
	}

	var raw struct {
		CompanySummary any            `json:"company_summary"`
		BrandVibe      any            `json:"brand_vibe"`
		BrandColors    any            `json:"brand_colors"`
		BrandFonts     any            `json:"brand_fonts"`
		Strategy       map[string]any `json:"strategy"`
	}
	err = llm.DecodeJSON(reply, &raw)
	if err != nil {
		a.tel.ReportBroken(report_analyzer_analyze, fmt.Errorf("decode: %w", err), input.URL)
		return Analysis{}, err
	}

	summary, _ := raw.CompanySummary.(string)
	return Analysis{
		CompanySummary: strings.TrimSpace(summary),
		BrandVibe:      stringList(raw.BrandVibe),
		BrandColors:    stringList(raw.BrandColors),
		BrandFonts:     stringList(raw.BrandFonts),
		Strategy:       raw.Strategy,
	}, nil
}

// stringList keeps the string entries of a JSON list, anything else is dropped.
func stringList(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := []string{}
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// BuildPrompt renders the brand analysis prompt.
func BuildPrompt(input Input) string {
	pageText := textutil.Truncate(input.PageText, MAX_PAGE_TEXT)

	return fmt.Sprintf(`You are an elite CMO and Brand Strategist.
Analyze this company and generate a comprehensive brand profile.

Company: %s
Website: %s
Meta Description: %s

Page Content:
%s

Return a valid JSON object (no markdown code blocks, just raw JSON):
{
    "company_summary": "A concise 2-3 sentence summary of what this company does and their unique value proposition.",
    "brand_vibe": ["keyword1", "keyword2", "keyword3", "keyword4"],
    "brand_colors": ["#RRGGBB hex codes of the brand colors, if known"],
    "brand_fonts": ["Font families the brand uses, if known"],
    "strategy": {
        "brand_archetype": "The [Archetype] - one sentence why",
        "brand_voice": "Brief description of tone and personality",
        "content_pillars": ["Pillar 1: brief description", "Pillar 2: brief description", "Pillar 3: brief description", "Pillar 4: brief description"],
        "visual_style_guide": ["Directive 1", "Directive 2", "Directive 3"],
        "recommended_post_types": ["Type 1", "Type 2", "Type 3"],
        "campaign_ideas": ["Idea 1: Hook description", "Idea 2: Hook description", "Idea 3: Hook description"],
        "target_audience": "Demographics and psychographics in 1-2 sentences",
        "key_strengths": ["Strength 1", "Strength 2", "Strength 3"],
        "design_style": "Brief visual design style description"
    }
}

Be specific to this company. Avoid generic content. Keep answers concise and punchy.`,
		input.CompanyName,
		input.URL,
		input.Description,
		pageText,
	)
}
