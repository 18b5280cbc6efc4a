package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-2.5-flash"
)

// GeminiClient implements LLMClient for the Google Gemini API.
type GeminiClient struct {
	apiKey          string
	baseURL         string
	model           string
	temperature     float64
	maxOutputTokens int
	httpClient      *http.Client
	mu              sync.Mutex
	lastRequest     time.Time
}

// DefaultGeminiConfig returns sensible defaults. Temperature stays at 0
// so repeated runs over the same ticket produce the same chain.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:      apiKey,
		BaseURL:     defaultGeminiBaseURL,
		Model:       defaultGeminiModel,
		Timeout:     2 * time.Minute,
		Temperature: 0,
	}
}

// NewGeminiClient creates a new Gemini client with default config.
func NewGeminiClient(apiKey string) *GeminiClient {
	return NewGeminiClientWithConfig(DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a new Gemini client with custom config.
func NewGeminiClientWithConfig(config GeminiConfig) *GeminiClient {
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	return &GeminiClient{
		apiKey:          config.APIKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		temperature:     config.Temperature,
		maxOutputTokens: config.MaxOutputTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetModel overrides the model at runtime.
func (c *GeminiClient) SetModel(model string) {
	if m := strings.TrimSpace(model); m != "" {
		c.model = m
	}
}

// GetModel returns the model in use.
func (c *GeminiClient) GetModel() string {
	return c.model
}

// BaseURL returns the endpoint the client targets.
func (c *GeminiClient) BaseURL() string {
	return c.baseURL
}

// Configured reports whether an API key is present.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != ""
}

// Complete sends a prompt and returns the completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with an optional system message.
// The API key is checked before anything else; an unconfigured client
// never issues a request.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	// Rate limiting
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	temperature := c.temperature
	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: []GeminiPart{{Text: userPrompt}},
			},
		},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: c.maxOutputTokens,
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		reqBody.SystemInstruction = &GeminiContent{
			Parts: []GeminiPart{{Text: systemPrompt}},
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var result strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}

	response := strings.TrimSpace(result.String())
	if response == "" {
		return "", ErrEmptyResponse
	}

	return response, nil
}
