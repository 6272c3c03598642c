package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/denizgun/symtriage/internal/ai"
)

type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	healthy bool
	mu      sync.RWMutex
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("huggingface", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	client := &http.Client{
		Timeout: config.Timeout,
	}

	p := &Provider{
		config:  config,
		client:  client,
		baseURL: baseURL,
		healthy: true,
	}

	return p, nil
}

func (p *Provider) Name() string {
	return "huggingface"
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	infReq := &InferenceRequest{
		Inputs: p.buildInput(req),
	}
	if req.MaxTokens > 0 {
		infReq.Parameters = &InferenceParams{MaxLength: req.MaxTokens}
	}

	body, err := json.Marshal(infReq)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "huggingface", err)
	}

	endpoint := p.baseURL.JoinPath("/models/", model)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "failed to create request", "huggingface", err)
	}

	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.setHealthy(false)
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "inference request failed", "huggingface", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(resp)
	}

	p.setHealthy(true)

	var outputs []InferenceOutput
	if err := json.NewDecoder(resp.Body).Decode(&outputs); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", "huggingface", err)
	}

	if len(outputs) == 0 || outputs[0].Text() == "" {
		return nil, ai.NewProviderError(ai.ErrTypeProvider, "empty inference output", "huggingface")
	}

	return toAIResponse(outputs, model, req.RequestID), nil
}

func (p *Provider) MaxTokens() int {
	return p.config.MaxTokens
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) HealthCheck(ctx context.Context) error {
	endpoint := p.baseURL.JoinPath("/models/", p.config.Model)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), http.NoBody)
	if err != nil {
		p.setHealthy(false)
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "failed to create health check request", "huggingface", err)
	}

	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		p.setHealthy(false)
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "health check request failed", "huggingface", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
		// 503 means the model exists but is still loading, the endpoint
		// itself is reachable.
		p.setHealthy(true)
		return nil
	case http.StatusUnauthorized:
		p.setHealthy(false)
		return ai.NewProviderError(ai.ErrTypeAuthentication, "invalid API key", "huggingface")
	default:
		p.setHealthy(false)
		return ai.NewProviderError(ai.ErrTypeProvider, fmt.Sprintf("health check failed with status %d", resp.StatusCode), "huggingface")
	}
}

func (p *Provider) IsHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.healthy
}

// buildInput concatenates system prompt, context, and prompt into the
// single inputs string the inference API expects.
func (p *Provider) buildInput(req *ai.CompletionRequest) string {
	input := req.Prompt
	if req.Context != "" {
		input = req.Context + "\n\n" + input
	}
	if req.SystemPrompt != "" {
		input = req.SystemPrompt + "\n\n" + input
	}
	return input
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	body, readErr := io.ReadAll(resp.Body)

	message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
	var errorResp ErrorResponse
	if readErr == nil {
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Message() != "" {
			message = errorResp.Message()
		}
	}

	var perr *ai.ProviderError
	switch resp.StatusCode {
	case http.StatusServiceUnavailable:
		perr = ai.NewProviderError(ai.ErrTypeModelLoading, message, "huggingface")
		if errorResp.EstimatedTime > 0 {
			perr.Details = map[string]any{"estimated_time": errorResp.EstimatedTime}
		}
	case http.StatusUnauthorized:
		perr = ai.NewProviderError(ai.ErrTypeAuthentication, message, "huggingface")
	case http.StatusNotFound:
		perr = ai.NewProviderError(ai.ErrTypeModelUnavailable, message, "huggingface")
	case http.StatusTooManyRequests:
		perr = ai.NewProviderError(ai.ErrTypeRateLimit, message, "huggingface")
	default:
		perr = ai.NewProviderError(ai.ErrTypeProvider, message, "huggingface")
	}

	perr.StatusCode = resp.StatusCode
	return perr
}

func (p *Provider) setHealthy(healthy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = healthy
}
