// Package calendar plans a week of social media posts for a brand.
package calendar

import (
	"context"
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/chrono"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/llm"
	"diya-backend/internal/pipeline"
	"diya-backend/lib/textutil"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	report_generator_post  = "generator.post"
	report_generator_total = "generator.total"
)

// SCHEDULE_LAYOUT is the local date-time format of Post.ScheduledDate.
const SCHEDULE_LAYOUT = "2006-01-02T15:04:05"

const maxSummaryLength = 2000

var postColors = []string{"pink", "green", "yellow", "purple", "blue"}

type Request struct {
	Brand        pipeline.Profile
	Platforms    []string
	PostsPerWeek int
	Tone         string
}

type Post struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Caption       string `json:"caption"`
	ImageURL      string `json:"image_url"`
	Platform      string `json:"platform"`
	ScheduledDate string `json:"scheduled_date"`
	Color         string `json:"color"`
}

// Generator writes post content with a model, falling back to templates per post.
type Generator struct {
	// nil when no api key is configured
	provider llm.Provider
	model    string
	time     chrono.API
	tel      telemetry.API
}

func NewGenerator(provider llm.Provider, model string, time chrono.API, tel telemetry.API) Generator {
	assert.NotNil(time)
	assert.NotNil(tel)
	if model == "" {
		model = llm.DEFAULT_FAST_MODEL
	}
	return Generator{
		provider: provider,
		model:    model,
		time:     time,
		tel:      telemetry.NewScopedAPI("calendar", tel),
	}
}

type slot struct {
	index    int
	platform string
	date     time.Time
}

func (g Generator) slots(req Request) []slot {
	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = []string{PLATFORM_INSTAGRAM}
	}
	count := req.PostsPerWeek
	if count <= 0 {
		count = DEFAULT_POSTS_PER_WEEK
	}
	count = min(count, MAX_POSTS_PER_WEEK)

	now := g.time.Now()
	offsets := DistributeAcrossWeek(count)
	out := make([]slot, count)
	for i := range out {
		out[i] = slot{
			index:    i,
			platform: strings.ToLower(platforms[i%len(platforms)]),
			// 9am to 12pm
			date: time.Date(
				now.Year(), now.Month(), now.Day()+offsets[i],
				9+i%4, 0, 0, 0,
				now.Location(),
			),
		}
	}
	return out
}

// Generate returns one post per slot of the week, posts never fail individually.
func (g Generator) Generate(ctx context.Context, req Request) []Post {
	brandName := CleanBrandName(req.Brand.Name)
	summary := req.Brand.ContentSummary
	if summary == "" {
		summary = req.Brand.Description
	}
	tone := strings.ToLower(strings.TrimSpace(req.Tone))
	if tone == "" {
		tone = TONE_PROFESSIONAL
	}

	slots := g.slots(req)
	posts := make([]Post, len(slots))

	wg := sync.WaitGroup{}
	for _, s := range slots {
		wg.Add(1)
		go func() {
			defer wg.Done()

			content := g.content(ctx, brandName, summary, s.platform, tone, s.index+1)
			image := ""
			if len(req.Brand.Images) > 0 {
				image = req.Brand.Images[s.index%len(req.Brand.Images)]
			}
			posts[s.index] = Post{
				ID:            uuid.NewString(),
				Title:         content.Title,
				Caption:       content.Caption,
				ImageURL:      image,
				Platform:      s.platform,
				ScheduledDate: s.date.Format(SCHEDULE_LAYOUT),
				Color:         postColors[s.index%len(postColors)],
			}
		}()
	}
	wg.Wait()

	g.tel.ReportCount(report_generator_total, int64(len(posts)))
	return posts
}

func (g Generator) content(ctx context.Context, brandName, summary, platform, tone string, postNumber int) Content {
	fallback := TemplateContent(brandName, platform, tone, postNumber)
	if g.provider == nil {
		return fallback
	}

	generated, err := g.generate(ctx, brandName, summary, platform, tone)
	if err != nil {
		g.tel.ReportWarning(report_generator_post, err, platform, postNumber)
		return fallback
	}
	if generated.Title == "" {
		generated.Title = fallback.Title
	}
	generated.Caption = textutil.Truncate(generated.Caption, formatFor(platform).maxLength)
	return generated
}

func (g Generator) generate(ctx context.Context, brandName, summary, platform, tone string) (Content, error) {
	reply, err := g.provider.GenerateJSON(ctx, g.model, BuildPostPrompt(brandName, summary, platform, tone))
	if err != nil {
		return Content{}, fmt.Errorf("generate: %w", err)
	}
	var content Content
	err = llm.DecodeJSON(reply, &content)
	if err != nil {
		return Content{}, fmt.Errorf("decode: %w", err)
	}
	content.Title = strings.TrimSpace(content.Title)
	content.Caption = strings.TrimSpace(content.Caption)
	if content.Caption == "" {
		return Content{}, errors.New("model returned an empty caption")
	}
	return content, nil
}

// BuildPostPrompt renders the prompt for a single post.
func BuildPostPrompt(brandName, summary, platform, tone string) string {
	return fmt.Sprintf(`You are a professional social media manager for the brand "%s".
Create highly relevant, engaging content based on the brand's summary: "%s".
Tone: %s.
Platform: %s.

Rules:
1. Always use the exact brand name "%s" in the text.
2. The content must be relevant to what the brand actually does, use the summary as the source of truth.
3. Do not invent generic facts.

Write a %s post for %s about a relevant topic for their audience.
Return a valid JSON object: {"title": "max 5 words", "caption": "text of appropriate length for the platform"}`,
		brandName,
		textutil.Truncate(summary, maxSummaryLength),
		tone,
		platform,
		brandName,
		platform,
		brandName,
	)
}
