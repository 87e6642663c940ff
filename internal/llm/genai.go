package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GenAIConfig struct {
	APIKey string
	// overrides the API endpoint, used by tests
	BaseURL     string
	Temperature float32
}

// GenAIProvider is a Provider backed by the Gemini API.
type GenAIProvider struct {
	client      *genai.Client
	temperature float32
}

func NewGenAIProvider(ctx context.Context, config GenAIConfig) (*GenAIProvider, error) {
	if config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIProvider{client: client, temperature: config.Temperature}, nil
}

func (p *GenAIProvider) GenerateJSON(ctx context.Context, model, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if p.temperature > 0 {
		config.Temperature = genai.Ptr(p.temperature)
	}

	res, err := p.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content (%s): %w", model, err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("generate content (%s): empty response", model)
	}
	return text, nil
}

func (p *GenAIProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for model, err := range p.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		models = append(models, ModelInfo{
			Name:             model.Name,
			DisplayName:      model.DisplayName,
			SupportedActions: model.SupportedActions,
		})
	}
	return models, nil
}
