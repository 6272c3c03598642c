package huggingface

import (
	"fmt"
	"net/url"
	"time"

	"github.com/denizgun/symtriage/internal/ai"
)

const (
	DefaultBaseURL   = "https://api-inference.huggingface.co"
	DefaultModel     = "facebook/bart-large-cnn"
	DefaultMaxTokens = 1024
	DefaultTimeout   = 60 * time.Second
)

type Config struct {
	APIKey    string        `json:"api_key,omitempty"`
	BaseURL   string        `json:"base_url"`
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Timeout   time.Duration `json:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
		Timeout:   DefaultTimeout,
	}
}

func (c *Config) Validate() error {
	// The inference API accepts anonymous requests with tight quotas,
	// so a missing API key is allowed.
	if c.BaseURL == "" {
		return ai.NewConfigurationError("huggingface", "base_url", "base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return ai.NewConfigurationError("huggingface", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	if c.Model == "" {
		return ai.NewConfigurationError("huggingface", "model", "model is required")
	}

	if c.MaxTokens <= 0 {
		return ai.NewConfigurationError("huggingface", "max_tokens", "max tokens must be positive")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("huggingface", "timeout", "timeout must be positive")
	}

	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	if c.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.APIKey
	}

	return &ai.ProviderConfig{
		Name:         "huggingface",
		Type:         "huggingface",
		APIKey:       c.APIKey,
		BaseURL:      c.BaseURL,
		DefaultModel: c.Model,
		MaxTokens:    c.MaxTokens,
		Timeout:      c.Timeout,
		Headers:      headers,
	}
}

func FromProviderConfig(config *ai.ProviderConfig) *Config {
	if config == nil {
		return DefaultConfig()
	}

	c := &Config{
		APIKey:    config.APIKey,
		BaseURL:   config.BaseURL,
		Model:     config.DefaultModel,
		MaxTokens: config.MaxTokens,
		Timeout:   config.Timeout,
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	return c
}
