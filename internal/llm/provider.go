// Package llm talks to the generative model that synthesizes brand personas.
package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when a provider is created without credentials.
var ErrNoAPIKey = errors.New("llm: api key is not configured")

type ModelInfo struct {
	Name             string
	DisplayName      string
	SupportedActions []string
}

func (m ModelInfo) Supports(action string) bool {
	for _, a := range m.SupportedActions {
		if a == action {
			return true
		}
	}
	return false
}

// Provider is a generative model backend.
//
// note: fault injection point
type Provider interface {
	// GenerateJSON sends a single prompt and returns the raw text of the reply,
	// which the model was asked to format as JSON.
	GenerateJSON(ctx context.Context, model, prompt string) (string, error)
	ListModels(ctx context.Context) ([]ModelInfo, error)
}
