package chain

import (
	"context"
	"sync"

	"supportchain/internal/llm"
)

// MockLLMClient is a configurable mock for chain tests. It records
// every prompt it receives so tests can assert on threading between
// stages.
type MockLLMClient struct {
	mu      sync.Mutex
	prompts []string

	CompleteFunc func(ctx context.Context, prompt string) (string, error)
}

var _ llm.LLMClient = (*MockLLMClient)(nil)

func (m *MockLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "ok", nil
}

func (m *MockLLMClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.Complete(ctx, userPrompt)
}

// CallCount returns how many completions were requested.
func (m *MockLLMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompt returns the i-th recorded prompt.
func (m *MockLLMClient) Prompt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompts[i]
}
