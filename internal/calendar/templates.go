package calendar

import (
	"fmt"
	"strings"
)

const (
	TONE_PROFESSIONAL  = "professional"
	TONE_CASUAL        = "casual"
	TONE_INSPIRATIONAL = "inspirational"
	TONE_EDUCATIONAL   = "educational"
	TONE_PLAYFUL       = "playful"
)

const (
	PLATFORM_INSTAGRAM = "instagram"
	PLATFORM_LINKEDIN  = "linkedin"
	PLATFORM_X         = "x"
	PLATFORM_FACEBOOK  = "facebook"
)

type platformFormat struct {
	titles    []string
	hashtags  bool
	maxLength int
}

var platformFormats = map[string]platformFormat{
	PLATFORM_INSTAGRAM: {
		titles:    []string{"Behind the Scenes", "Product Spotlight", "Customer Story", "Team Feature", "Tips & Tricks"},
		hashtags:  true,
		maxLength: 2200,
	},
	PLATFORM_LINKEDIN: {
		titles:    []string{"Industry Insights", "Team Achievement", "Thought Leadership", "Company Update", "Career Opportunities"},
		maxLength: 3000,
	},
	PLATFORM_X: {
		titles:    []string{"Quick Tip", "Daily Inspiration", "Hot Take", "Question for You", "Breaking News"},
		hashtags:  true,
		maxLength: 280,
	},
	PLATFORM_FACEBOOK: {
		titles:    []string{"Community Update", "Event Announcement", "Fan Feature", "Weekly Roundup", "Success Story"},
		maxLength: 5000,
	},
}

func formatFor(platform string) platformFormat {
	format, ok := platformFormats[platform]
	if !ok {
		return platformFormats[PLATFORM_INSTAGRAM]
	}
	return format
}

func toneIntro(tone, brandName string) string {
	switch tone {
	case TONE_CASUAL:
		return fmt.Sprintf("Hey friends! %s here with", brandName)
	case TONE_INSPIRATIONAL:
		return fmt.Sprintf("Dream big with %s.", brandName)
	case TONE_EDUCATIONAL:
		return fmt.Sprintf("Did you know? %s brings you", brandName)
	case TONE_PLAYFUL:
		return fmt.Sprintf("Guess what? %s has something fun!", brandName)
	default:
		return fmt.Sprintf("At %s, we believe in", brandName)
	}
}

// Content is the text of a single post.
type Content struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
}

// TemplateContent writes a post without a model, `postNumber` starts at 1.
func TemplateContent(brandName, platform, tone string, postNumber int) Content {
	format := formatFor(platform)
	title := format.titles[(postNumber-1)%len(format.titles)]

	caption := fmt.Sprintf(
		"%s excellence and innovation every day. %s - this is what drives us forward. Stay tuned for more updates!",
		toneIntro(tone, brandName),
		strings.ToLower(title),
	)
	if format.hashtags {
		caption += fmt.Sprintf("\n\n#%s #ContentCreation #SocialMedia", strings.ReplaceAll(brandName, " ", ""))
	}
	return Content{Title: title, Caption: caption}
}
