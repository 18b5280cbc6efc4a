// Package config loads supportchain configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all supportchain configuration.
type Config struct {
	// LLM configuration
	LLM LLMConfig `yaml:"llm"`

	// Chain behavior
	Chain ChainConfig `yaml:"chain"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the Gemini client.
type LLMConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	Timeout         string  `yaml:"timeout"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// ChainConfig configures chain run behavior.
type ChainConfig struct {
	// FailFast stops a run at the first failed stage instead of
	// continuing with a placeholder.
	FailFast bool `yaml:"fail_fast"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration. Temperature stays
// at 0 so identical queries produce identical chains.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       "gemini-2.5-flash",
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
			Timeout:     "120s",
			Temperature: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "supportchain.yaml"
	}
	return filepath.Join(cwd, "supportchain.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
}

// Configured reports whether an API key is present. A run without one
// proceeds degraded: every stage fails without touching the network.
func (c *Config) Configured() bool {
	return c.LLM.APIKey != ""
}

// GetLLMTimeout returns the LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration. API key presence is not
// checked here; a missing key degrades the run rather than blocking
// startup.
func (c *Config) Validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model not configured")
	}
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm base_url not configured")
	}
	if c.LLM.Timeout != "" {
		if _, err := time.ParseDuration(c.LLM.Timeout); err != nil {
			return fmt.Errorf("invalid llm timeout %q: %w", c.LLM.Timeout, err)
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature %v out of range [0, 2]", c.LLM.Temperature)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	return nil
}
