package persona

import (
	"context"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/llm"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeWithoutProvider(t *testing.T) {
	analyzer := NewAnalyzer(nil, "", telemetry.NewMemoryAPI())
	analysis, err := analyzer.Analyze(context.Background(), Input{CompanyName: "Acme"})
	require.NoError(t, err)
	require.True(t, analysis.Empty())
}

func TestAnalyze(t *testing.T) {
	provider := &llm.MockProvider{
		Reply: func(model, prompt string) (string, error) {
			require.Equal(t, "models/gemini-2.0-flash", model)
			return "```json\n" + `{
				"company_summary": "  Acme builds rockets.  ",
				"brand_vibe": ["bold", 3, "", "daring"],
				"brand_colors": ["#FF6600"],
				"brand_fonts": "not a list",
				"strategy": {"brand_archetype": "The Hero"}
			}` + "\n```", nil
		},
	}
	analyzer := NewAnalyzer(provider, "models/gemini-2.0-flash", telemetry.NewMemoryAPI())

	analysis, err := analyzer.Analyze(context.Background(), Input{
		CompanyName: "Acme",
		Description: "Rockets for everyone",
		PageText:    strings.Repeat("x", MAX_PAGE_TEXT+500),
		URL:         "https://acme.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Acme builds rockets.", analysis.CompanySummary)
	require.Equal(t, []string{"bold", "daring"}, analysis.BrandVibe)
	require.Equal(t, []string{"#FF6600"}, analysis.BrandColors)
	require.Empty(t, analysis.BrandFonts)
	require.Equal(t, "The Hero", analysis.Strategy["brand_archetype"])

	prompts := provider.Prompts()
	require.Len(t, prompts, 1)
	require.Contains(t, prompts[0], "Company: Acme")
	require.Contains(t, prompts[0], "Website: https://acme.com")
	require.Contains(t, prompts[0], strings.Repeat("x", MAX_PAGE_TEXT))
	require.NotContains(t, prompts[0], strings.Repeat("x", MAX_PAGE_TEXT+1))
}

func TestAnalyzeFailures(t *testing.T) {
	tel := telemetry.NewMemoryAPI()
	provider := &llm.MockProvider{
		Reply: func(model, prompt string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	_, err := NewAnalyzer(provider, "", tel).Analyze(context.Background(), Input{})
	require.Error(t, err)
	require.True(t, tel.Has(telemetry.REPORT_BROKEN, report_analyzer_analyze))

	tel = telemetry.NewMemoryAPI()
	provider.Reply = func(model, prompt string) (string, error) {
		return "I cannot help with that.", nil
	}
	_, err = NewAnalyzer(provider, "", tel).Analyze(context.Background(), Input{})
	require.Error(t, err)
	require.True(t, tel.Has(telemetry.REPORT_BROKEN, report_analyzer_analyze))
}
