package brand

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// DefaultStrategy is used when the model did not return a strategy at all.
func DefaultStrategy() StrategicAnalysis {
	return StrategicAnalysis{
		BrandArchetype:       "The Creator",
		BrandVoice:           "Professional and trustworthy",
		ContentPillars:       []string{"Industry Trends", "Company Updates", "Thought Leadership", "Product Tips"},
		VisualStyleGuide:     []string{"Clean and modern", "Consistent use of brand colors"},
		RecommendedPostTypes: []string{"Educational", "Promotional"},
		CampaignIdeas:        []string{"Showcase unique value proposition", "Highlight customer success stories"},
		TargetAudience:       "General Professional Audience",
		KeyStrengths:         []string{"Innovation", "Reliability"},
		DesignStyle:          "Modern Professional",
	}
}

// StrategyFromRaw converts the loosely typed strategy object returned by the model.
// List fields may contain strings, {title, description} objects or arbitrary values.
// An empty or nil map yields DefaultStrategy.
func StrategyFromRaw(raw map[string]any) StrategicAnalysis {
	if len(raw) == 0 {
		return DefaultStrategy()
	}
	return StrategicAnalysis{
		BrandArchetype:       stringField(raw, "brand_archetype"),
		BrandVoice:           stringField(raw, "brand_voice"),
		ContentPillars:       NormalizeStrategyList(raw["content_pillars"]),
		VisualStyleGuide:     NormalizeStrategyList(raw["visual_style_guide"]),
		RecommendedPostTypes: NormalizeStrategyList(raw["recommended_post_types"]),
		CampaignIdeas:        NormalizeStrategyList(raw["campaign_ideas"]),
		TargetAudience:       stringField(raw, "target_audience"),
		KeyStrengths:         NormalizeStrategyList(raw["key_strengths"]),
		DesignStyle:          stringField(raw, "design_style"),
	}
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return stringify(v)
	}
}

// NormalizeStrategyList flattens a model-provided list into strings. Objects become
// "title: description" (or their non-empty values joined with ": " when they have neither).
// Anything that is not a list yields an empty, non-nil slice.
func NormalizeStrategyList(value any) []string {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			out = append(out, flattenObject(v))
		default:
			out = append(out, stringify(v))
		}
	}
	return out
}

func flattenObject(obj map[string]any) string {
	parts := []string{}
	if title, ok := obj["title"].(string); ok && title != "" {
		parts = append(parts, title)
	}
	if desc, ok := obj["description"].(string); ok && desc != "" {
		parts = append(parts, desc)
	}
	if len(parts) == 0 {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		// map iteration order is random, sort for a stable output
		sort.Strings(keys)
		for _, k := range keys {
			s := stringify(obj[k])
			if s != "" {
				parts = append(parts, s)
			}
		}
	}
	if len(parts) == 0 {
		return stringify(obj)
	}
	return strings.Join(parts, ": ")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool, float64, int, int64:
		return fmt.Sprint(t)
	default:
		marshalled, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(marshalled)
	}
}
