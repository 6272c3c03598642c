package ai

import (
	"context"
	"io"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// Name returns the provider name (e.g., "huggingface", "openai")
	Name() string

	// Complete performs text completion/analysis
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// MaxTokens returns the maximum context window size
	MaxTokens() int

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	// Close cleans up provider resources
	Close() error
}

// HealthChecker provides health checking capabilities
type HealthChecker interface {
	// HealthCheck verifies provider connectivity and status
	HealthCheck(ctx context.Context) error

	// IsHealthy returns current health status
	IsHealthy() bool
}

// Provider combines all provider capabilities
type Provider interface {
	LLMProvider
	HealthChecker
	io.Closer
}
