package llm

import (
	"context"
	"errors"
	"sync"
)

// MockProvider replies to every prompt through Reply and records the prompts it was sent.
type MockProvider struct {
	Reply  func(model, prompt string) (string, error)
	Models []ModelInfo
	// returned by ListModels when set
	ListErr error

	mutex   sync.Mutex
	prompts []string
}

func (m *MockProvider) GenerateJSON(ctx context.Context, model, prompt string) (string, error) {
	m.mutex.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mutex.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Reply == nil {
		return "", errors.New("mock provider: no reply configured")
	}
	return m.Reply(model, prompt)
}

func (m *MockProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Models, nil
}

func (m *MockProvider) Prompts() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
