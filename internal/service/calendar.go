package service

import (
	"diya-backend/internal/calendar"
	"diya-backend/internal/pipeline"
	"errors"
	"net/http"
)

type GenerateCalendarRequest struct {
	BrandData *pipeline.Profile `json:"brand_data"`
	Platforms []string          `json:"platforms"`
	Frequency string            `json:"frequency"`
	Tone      string            `json:"tone"`
}

type GenerateCalendarResponse struct {
	Success bool            `json:"success"`
	Posts   []calendar.Post `json:"posts"`
	// same as posts, kept for older clients
	Calendar []calendar.Post `json:"calendar"`
}

var errBrandDataRequired = errors.New("brand data is required in the request body")

func (s Service) GenerateCalendar(w http.ResponseWriter, r *http.Request) {
	var req GenerateCalendarRequest
	err := decodeBody(w, r, &req)
	if err != nil {
		s.tel.ReportWarning(report_request_decode, err, r.URL.Path)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.BrandData == nil {
		writeError(w, http.StatusBadRequest, errBrandDataRequired)
		return
	}

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = []string{calendar.PLATFORM_INSTAGRAM}
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = "3/week"
	}
	tone := req.Tone
	if tone == "" {
		tone = calendar.TONE_PROFESSIONAL
	}

	posts := s.generator.Generate(r.Context(), calendar.Request{
		Brand:        *req.BrandData,
		Platforms:    platforms,
		PostsPerWeek: calendar.ParseFrequency(frequency),
		Tone:         tone,
	})
	writeJSON(w, http.StatusOK, GenerateCalendarResponse{
		Success:  true,
		Posts:    posts,
		Calendar: posts,
	})
}
