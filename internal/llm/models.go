package llm

import (
	"context"
	"diya-backend/internal/components/telemetry"
	"slices"
	"strings"
)

const (
	report_discover_models = "llm.discover-models"
)

const (
	DEFAULT_REASONING_MODEL = "models/gemini-1.5-pro"
	DEFAULT_FAST_MODEL      = "models/gemini-1.5-flash"
	DEFAULT_IMAGE_MODEL     = "gemini-2.0-flash-exp-image-generation"

	ACTION_GENERATE_CONTENT = "generateContent"
)

// Selection is the model picked for each kind of task.
type Selection struct {
	Fast      string `json:"fast"`
	Reasoning string `json:"reasoning"`
	Vision    string `json:"vision"`
	Image     string `json:"image"`
}

// DefaultSelection is used when models cannot be discovered.
func DefaultSelection() Selection {
	return Selection{
		Fast:      DEFAULT_FAST_MODEL,
		Reasoning: DEFAULT_REASONING_MODEL,
		Vision:    DEFAULT_REASONING_MODEL,
		Image:     DEFAULT_IMAGE_MODEL,
	}
}

type scoreRule struct {
	token string
	delta int
}

// newer versions first, then tier, then freshness, then penalties.
var scoreRules = []scoreRule{
	{"2.5", 300},
	{"2.0", 200},
	{"1.5", 100},
	{"1.0", 50},

	{"pro", 50},
	{"flash", 10},

	{"latest", 5},
	{"002", 3},
	{"001", 1},

	{"exp", -5},
	{"thinking", -10},
	{"legacy", -50},
}

// Score ranks a text model by its name, higher is better.
func Score(name string) int {
	name = strings.ToLower(name)
	score := 0
	for _, rule := range scoreRules {
		if strings.Contains(name, rule.token) {
			score += rule.delta
		}
	}
	return score
}

// ImagePriority ranks an image generation model by its name, lower is better.
func ImagePriority(name string) int {
	name = strings.ToLower(name)
	switch {
	case strings.Contains(name, "imagen-4"):
		return 1
	case strings.Contains(name, "imagen-3"):
		return 2
	case strings.Contains(name, "imagen-2"):
		return 3
	case strings.Contains(name, "gemini") && strings.Contains(name, "image-generation"):
		return 4
	case strings.Contains(name, "gemini") && strings.Contains(name, "flash-image"):
		return 5
	}
	return 10
}

// Categorized splits models into text models (gemini models that can generate
// content) and image models, both sorted best first.
func Categorized(models []ModelInfo) (text []ModelInfo, image []ModelInfo) {
	for _, m := range models {
		name := strings.ToLower(m.Name)
		switch {
		case strings.Contains(name, "gemini") && m.Supports(ACTION_GENERATE_CONTENT):
			text = append(text, m)
		case strings.Contains(name, "image") || strings.Contains(name, "imagen"):
			image = append(image, m)
		}
	}
	slices.SortStableFunc(text, func(a, b ModelInfo) int {
		return Score(b.Name) - Score(a.Name)
	})
	slices.SortStableFunc(image, func(a, b ModelInfo) int {
		return ImagePriority(a.Name) - ImagePriority(b.Name)
	})
	return text, image
}

// SelectModels picks the best model for each task out of `models`.
func SelectModels(models []ModelInfo) Selection {
	text, image := Categorized(models)
	selection := Selection{}

	for _, m := range text {
		if strings.Contains(strings.ToLower(m.Name), "pro") {
			selection.Reasoning = m.Name
			break
		}
	}
	if selection.Reasoning == "" && len(text) > 0 {
		selection.Reasoning = text[0].Name
	}
	if selection.Reasoning == "" {
		selection.Reasoning = DEFAULT_REASONING_MODEL
	}

	for _, m := range text {
		name := strings.ToLower(m.Name)
		if strings.Contains(name, "flash") && !strings.Contains(name, "thinking") {
			selection.Fast = m.Name
			break
		}
	}
	if selection.Fast == "" {
		selection.Fast = selection.Reasoning
	}

	// every gemini model accepts images
	selection.Vision = selection.Reasoning

	if len(image) > 0 {
		selection.Image = image[0].Name
	} else {
		for _, m := range text {
			if strings.Contains(strings.ToLower(m.Name), "image") {
				selection.Image = m.Name
				break
			}
		}
	}
	if selection.Image == "" {
		selection.Image = DEFAULT_IMAGE_MODEL
	}

	return selection
}

// Discover lists the models available to `provider` and selects from them,
// falling back to DefaultSelection if they cannot be listed.
func Discover(ctx context.Context, provider Provider, tel telemetry.API) Selection {
	models, err := provider.ListModels(ctx)
	if err != nil {
		tel.ReportWarning(report_discover_models, err)
		return DefaultSelection()
	}
	if len(models) == 0 {
		tel.ReportWarning(report_discover_models, "no models returned")
		return DefaultSelection()
	}
	tel.ReportCount(report_discover_models, int64(len(models)))

	selection := SelectModels(models)
	tel.ReportDebug("selected models", selection)
	return selection
}
