// Package service exposes brand analysis and calendar generation over HTTP.
package service

import (
	"context"
	"diya-backend/internal/brand"
	"diya-backend/internal/brandfetch"
	"diya-backend/internal/calendar"
	"diya-backend/internal/components/assert"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/pipeline"
	"net/http"
)

const (
	report_analyze_extract = "analyze.extract"
	report_analyze_cache   = "analyze.cache"
	report_request_decode  = "request.decode"
	report_request_panic   = "request.panic"
)

// Extractor runs the brand extraction pipeline on a website.
//
// note: fault injection point
type Extractor interface {
	Extract(ctx context.Context, link string) (brand.BrandAssets, error)
}

// BrandData looks up a brand in the external brand data API.
//
// note: fault injection point
type BrandData interface {
	Fetch(ctx context.Context, name string) brandfetch.Assets
}

// Cache stores finished profiles by website.
//
// note: fault injection point
type Cache interface {
	Get(ctx context.Context, link string) (pipeline.Profile, error)
	Put(ctx context.Context, link string, profile pipeline.Profile) error
}

// CalendarGenerator writes the posts of a content calendar.
type CalendarGenerator interface {
	Generate(ctx context.Context, req calendar.Request) []calendar.Post
}

type Service struct {
	extractor Extractor
	brandData BrandData
	// nil when caching is disabled
	cache     Cache
	generator CalendarGenerator
	origins   []string
	tel       telemetry.API
}

type serviceConfig struct {
	cache   Cache
	origins []string
}

type Option func(cfg *serviceConfig)

// WithCache enables caching of url analyses.
func WithCache(cache Cache) Option {
	return func(cfg *serviceConfig) {
		cfg.cache = cache
	}
}

// WithCORSOrigins sets the origins allowed to call the api, "*" allows every origin.
func WithCORSOrigins(origins ...string) Option {
	return func(cfg *serviceConfig) {
		cfg.origins = origins
	}
}

func NewService(
	extractor Extractor,
	brandData BrandData,
	generator CalendarGenerator,
	tel telemetry.API,
	options ...Option,
) Service {
	assert.NotNil(extractor)
	assert.NotNil(brandData)
	assert.NotNil(generator)
	assert.NotNil(tel)

	cfg := serviceConfig{origins: []string{"*"}}
	for _, opt := range options {
		opt(&cfg)
	}

	return Service{
		extractor: extractor,
		brandData: brandData,
		cache:     cfg.cache,
		generator: generator,
		origins:   cfg.origins,
		tel:       telemetry.NewScopedAPI("service", tel),
	}
}

// Handler returns the routes of the service wrapped in its middleware.
func (s Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /brand/analyze", s.AnalyzeBrand)
	mux.HandleFunc("POST /calendar/generate", s.GenerateCalendar)
	mux.HandleFunc("GET /health", s.Health)

	return s.withRequestID(s.withRecovery(s.withCORS(mux)))
}

func (s Service) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
