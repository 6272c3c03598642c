// Package client talks to the analysis API: one POST per submission plus
// a health probe.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/logger"
)

const defaultTimeout = 90 * time.Second

// GenericErrorMessage is surfaced when a failure response carries no
// usable error field.
const GenericErrorMessage = "Analysis request failed. Please try again."

// AnalyzeRequest is the JSON body sent to POST /api/analyze.
type AnalyzeRequest struct {
	Symptoms    []string        `json:"symptoms"`
	PatientInfo analyze.Patient `json:"patient_info"`
}

// HealthStatus is the response from GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RequestError carries the human-readable message extracted from a
// failure response body.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("analysis request failed (status %d): %s", e.StatusCode, e.Message)
}

// Client issues requests to a running analysis server.
type Client struct {
	baseURL *url.URL
	client  *http.Client
	logger  *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("server URL %q must include scheme and host", baseURL)
	}

	c := &Client{
		baseURL: parsed,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger.NewWithCallback("client", nil),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Analyze submits symptoms and patient info and returns the normalized
// report. Failure responses yield a *RequestError with the message
// extracted from the body, or a generic message when the body has none.
func (c *Client) Analyze(ctx context.Context, symptoms []string, patient analyze.Patient) (*analyze.Report, error) {
	reqBody := AnalyzeRequest{
		Symptoms:    symptoms,
		PatientInfo: patient,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyze request: %w", err)
	}

	endpoint := c.baseURL.JoinPath("/api/analyze")
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read analyze response: %w", err)
	}

	c.logger.DebugWithFields("analyze request completed", []logger.Field{
		logger.F("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(respBody),
		}
	}

	report, err := analyze.Normalize(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse analyze response: %w", err)
	}

	return report, nil
}

// Health probes GET /api/health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	endpoint := c.baseURL.JoinPath("/api/health")
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health check failed with status %d", resp.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}

	return &status, nil
}

// extractErrorMessage pulls the error field from a failure body, falling
// back to a generic message.
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return GenericErrorMessage
}
