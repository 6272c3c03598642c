package ai

import (
	"testing"
	"time"
)

func TestCompletionRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     CompletionRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req: CompletionRequest{
				Prompt:      "Test prompt",
				MaxTokens:   100,
				Temperature: 0.7,
			},
			wantErr: false,
		},
		{
			name: "empty prompt",
			req: CompletionRequest{
				Prompt:    "",
				MaxTokens: 100,
			},
			wantErr: true,
		},
		{
			name: "negative max tokens",
			req: CompletionRequest{
				Prompt:    "Test",
				MaxTokens: -1,
			},
			wantErr: true,
		},
		{
			name: "invalid temperature",
			req: CompletionRequest{
				Prompt:      "Test",
				Temperature: 2.0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCompletionRequest(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateCompletionRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProviderConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  ProviderConfig
		wantErr bool
	}{
		{
			name: "valid config",
			config: ProviderConfig{
				Name:    "test-provider",
				Type:    "huggingface",
				APIKey:  "hf_test",
				Timeout: 30 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "empty name",
			config: ProviderConfig{
				Type:   "huggingface",
				APIKey: "hf_test",
			},
			wantErr: true,
		},
		{
			name: "empty type",
			config: ProviderConfig{
				Name:   "test",
				APIKey: "hf_test",
			},
			wantErr: true,
		},
		{
			name: "invalid timeout",
			config: ProviderConfig{
				Name:    "test",
				Type:    "huggingface",
				Timeout: -1 * time.Second,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProviderConfig(&tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProviderConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProviderError_Matching(t *testing.T) {
	loading := NewProviderError(ErrTypeModelLoading, "model warming up", "huggingface")
	if !IsModelLoadingError(loading) {
		t.Error("expected model loading error to match IsModelLoadingError")
	}

	network := NewProviderError(ErrTypeNetwork, "connection refused", "huggingface")
	if IsModelLoadingError(network) {
		t.Error("network error should not match IsModelLoadingError")
	}

	cfg := NewProviderError(ErrTypeConfiguration, "missing api key", "openai")
	if !IsConfigurationError(cfg) {
		t.Error("expected configuration error to match IsConfigurationError")
	}
}

func TestTokenUsage_Total(t *testing.T) {
	usage := &TokenUsage{
		PromptTokens:     100,
		CompletionTokens: 50,
		TotalTokens:      150,
	}

	if usage.TotalTokens != 150 {
		t.Errorf("TotalTokens = %d, expected 150", usage.TotalTokens)
	}

	// Test calculated total
	calculatedTotal := usage.PromptTokens + usage.CompletionTokens
	if calculatedTotal != usage.TotalTokens {
		t.Errorf("Calculated total %d != TotalTokens %d", calculatedTotal, usage.TotalTokens)
	}
}

// Validation helper functions (would be implemented in types.go)

func validateCompletionRequest(req *CompletionRequest) error {
	if req.Prompt == "" {
		return NewValidationError("prompt", req.Prompt, "prompt cannot be empty")
	}
	if req.MaxTokens < 0 {
		return NewValidationError("max_tokens", string(rune(req.MaxTokens)), "max_tokens cannot be negative")
	}
	if req.Temperature < 0 || req.Temperature > 1 {
		return NewValidationError("temperature", string(rune(int(req.Temperature*100))), "temperature must be between 0 and 1")
	}
	return nil
}

func validateProviderConfig(config *ProviderConfig) error {
	if config.Name == "" {
		return NewValidationError("name", config.Name, "name cannot be empty")
	}
	if config.Type == "" {
		return NewValidationError("type", config.Type, "type cannot be empty")
	}
	if config.Timeout < 0 {
		return NewValidationError("timeout", config.Timeout.String(), "timeout cannot be negative")
	}
	return nil
}
