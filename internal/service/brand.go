package service

import (
	"context"
	"diya-backend/internal/brandcache"
	"diya-backend/internal/pipeline"
	"errors"
	"net/http"
	"strings"
)

const (
	SOURCE_URL    = "url"
	SOURCE_MANUAL = "manual"
)

type AnalyzeRequest struct {
	Source string `json:"source"`
	URL    string `json:"url"`

	BrandName        string              `json:"brandName"`
	BrandDescription string              `json:"brandDescription"`
	Industry         string              `json:"industry"`
	Tagline          string              `json:"tagline"`
	Colors           []pipeline.ColorTag `json:"colors"`
	Fonts            []string            `json:"fonts"`
	LogoURL          string              `json:"logoUrl"`
}

type AnalyzeResponse struct {
	Success   bool             `json:"success"`
	BrandData pipeline.Profile `json:"brand_data"`
}

var (
	errURLRequired   = errors.New("url is required")
	errUnknownSource = errors.New("source must be \"url\" or \"manual\"")
)

func (s Service) AnalyzeBrand(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	err := decodeBody(w, r, &req)
	if err != nil {
		s.tel.ReportWarning(report_request_decode, err, r.URL.Path)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var profile pipeline.Profile
	switch strings.ToLower(strings.TrimSpace(req.Source)) {
	case SOURCE_URL:
		link := strings.TrimSpace(req.URL)
		if link == "" {
			writeError(w, http.StatusBadRequest, errURLRequired)
			return
		}
		profile = s.AnalyzeURL(r.Context(), link)
	case SOURCE_MANUAL:
		profile = ManualProfile(req)
	default:
		writeError(w, http.StatusBadRequest, errUnknownSource)
		return
	}

	if profile.ContentSummary == "" {
		profile.ContentSummary = profile.Description
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, BrandData: profile})
}

// AnalyzeURL builds the profile of a website. A website that cannot be analyzed
// yields a fallback profile, it is never an error.
func (s Service) AnalyzeURL(ctx context.Context, link string) pipeline.Profile {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, link)
		if err == nil {
			s.tel.ReportDebug("cache hit", link)
			return cached
		}
		if !errors.Is(err, brandcache.ErrNotFound) {
			s.tel.ReportBroken(report_analyze_cache, err, link)
		}
	}

	assets, err := s.extractor.Extract(ctx, link)
	if err != nil {
		s.tel.ReportWarning(report_analyze_extract, err, link)
		return pipeline.FallbackProfile(link, err)
	}

	profile := pipeline.ToProfile(assets)
	profile.Name = pipeline.LookupName(profile, link)
	profile = pipeline.Enrich(profile, s.brandData.Fetch(ctx, profile.Name), s.tel)

	if s.cache != nil {
		err = s.cache.Put(ctx, link, profile)
		if err != nil {
			s.tel.ReportBroken(report_analyze_cache, err, link)
		}
	}
	return profile
}

// ManualProfile is the profile of a brand described by hand.
func ManualProfile(req AnalyzeRequest) pipeline.Profile {
	colors := req.Colors
	if colors == nil {
		colors = []pipeline.ColorTag{}
	}
	fonts := req.Fonts
	if fonts == nil {
		fonts = []string{}
	}
	return pipeline.Profile{
		Name:          strings.TrimSpace(req.BrandName),
		Description:   strings.TrimSpace(req.BrandDescription),
		Industry:      strings.TrimSpace(req.Industry),
		Tagline:       strings.TrimSpace(req.Tagline),
		Colors:        colors,
		Fonts:         fonts,
		LogoURL:       strings.TrimSpace(req.LogoURL),
		Images:        []string{},
		BrandVibe:     []string{},
		PagesAnalyzed: []string{},
	}
}
