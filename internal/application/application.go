// Package application builds the components both binaries run from a Config.
package application

import (
	"context"
	"diya-backend/internal/brandfetch"
	"diya-backend/internal/calendar"
	"diya-backend/internal/components/chrono"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/llm"
	"diya-backend/internal/persona"
	"diya-backend/internal/pipeline"
	"diya-backend/internal/scrapers/site"
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Components are the long lived parts of the backend.
type Components struct {
	Time chrono.API
	// nil when no llm api key is configured
	Provider  llm.Provider
	Models    llm.Selection
	Extractor *pipeline.Extractor
	BrandData *brandfetch.Client
	Generator calendar.Generator
}

// WithDefaults fills every unset field of `cfg` from DefaultConfig. Pointer
// fields are only defaulted when nil, so an explicit zero is kept.
func WithDefaults(cfg Config) (Config, error) {
	err := mergo.Merge(&cfg, DefaultConfig(), mergo.WithoutDereference)
	if err != nil {
		return cfg, fmt.Errorf("apply config defaults: %w", err)
	}
	return cfg, nil
}

func newDump(dir string) (telemetry.DumpOutput, error) {
	if dir == "" {
		return nil, nil
	}
	dump, err := telemetry.NewDirectoryDump(dir)
	if err != nil {
		return nil, fmt.Errorf("create dump directory: %w", err)
	}
	return dump, nil
}

func newProvider(ctx context.Context, cfg LLMConfig, tel telemetry.API) (llm.Provider, llm.Selection, error) {
	selection := llm.DefaultSelection()

	provider, err := llm.NewGenAIProvider(ctx, llm.GenAIConfig{
		APIKey:      cfg.ApiKey,
		BaseURL:     cfg.BaseUrl,
		Temperature: cfg.temperature(),
	})
	if errors.Is(err, llm.ErrNoAPIKey) {
		tel.ReportWarning("llm.provider", "no api key configured, brand synthesis and post writing use fallbacks")
		return nil, selection, nil
	}
	if err != nil {
		return nil, selection, err
	}

	if cfg.Discover {
		selection = llm.Discover(ctx, provider, tel)
	}
	if cfg.FastModel != "" {
		selection.Fast = cfg.FastModel
	}
	if cfg.ReasoningModel != "" {
		selection.Reasoning = cfg.ReasoningModel
	}
	return provider, selection, nil
}

func Build(ctx context.Context, cfg Config, tel telemetry.API) (Components, error) {
	cfg, err := WithDefaults(cfg)
	if err != nil {
		return Components{}, err
	}

	clock, err := chrono.NewStandardImpl(cfg.Timezone)
	if err != nil {
		return Components{}, fmt.Errorf("load timezone: %w", err)
	}

	dump, err := newDump(cfg.DumpDir)
	if err != nil {
		return Components{}, err
	}

	provider, models, err := newProvider(ctx, cfg.LLM, tel)
	if err != nil {
		return Components{}, err
	}

	siteClient := site.NewClient(site.Options{
		UserAgent:      cfg.Scraper.UserAgent,
		PageTimeout:    time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second,
		RateLimit:      cfg.Scraper.RateLimit,
		MaxStylesheets: cfg.Scraper.MaxStylesheets,
		Dump:           dump,
	}, tel)

	extractor := pipeline.NewExtractor(
		siteClient,
		persona.NewAnalyzer(provider, models.Fast, tel),
		clock,
		tel,
		pipeline.Options{ProbeLogo: !cfg.Scraper.SkipLogoProbe},
	)

	brandData := brandfetch.NewClient(brandfetch.Options{
		APIKey:  cfg.Brandfetch.ApiKey,
		BaseURL: cfg.Brandfetch.BaseUrl,
		Dump:    dump,
	}, tel)

	return Components{
		Time:      clock,
		Provider:  provider,
		Models:    models,
		Extractor: extractor,
		BrandData: brandData,
		Generator: calendar.NewGenerator(provider, models.Fast, clock, tel),
	}, nil
}
