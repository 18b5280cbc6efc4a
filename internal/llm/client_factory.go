package llm

import (
	"fmt"
	"os"
	"strings"
)

// APIKeyEnvVar is the environment variable holding the Gemini credential.
const APIKeyEnvVar = "GEMINI_API_KEY"

// APIKeyFromEnv returns the API key from the environment, trimmed, or
// "" when unset.
func APIKeyFromEnv() string {
	return strings.TrimSpace(os.Getenv(APIKeyEnvVar))
}

// NewClientFromEnv creates a Gemini client from GEMINI_API_KEY. The
// error lets callers choose between failing fast and running degraded;
// a degraded run keeps going and every completion then returns
// ErrNotConfigured without touching the network.
func NewClientFromEnv() (LLMClient, error) {
	apiKey := APIKeyFromEnv()
	if apiKey == "" {
		return nil, fmt.Errorf("no API key found: set %s", APIKeyEnvVar)
	}
	return NewGeminiClient(apiKey), nil
}
