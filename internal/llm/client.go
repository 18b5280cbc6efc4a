// Package llm provides the language model client used by the triage
// chain. The concrete client speaks the Gemini REST API; callers depend
// on the LLMClient interface so tests can substitute scripted mocks.
package llm

import (
	"context"
	"errors"
)

// LLMClient is the completion interface all providers implement.
type LLMClient interface {
	// Complete sends a prompt and returns the completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a prompt with a system message.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Sentinel errors for client failure modes. Callers branch with errors.Is.
var (
	// ErrNotConfigured is returned when the client has no API key.
	// No network request is made in that case.
	ErrNotConfigured = errors.New("gemini client not initialized: check API key")

	// ErrEmptyResponse is returned when the service answers 200 but the
	// candidate text is missing or whitespace-only.
	ErrEmptyResponse = errors.New("received empty or invalid response text")
)
