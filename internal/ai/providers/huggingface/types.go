package huggingface

import (
	"encoding/json"
	"time"

	"github.com/denizgun/symtriage/internal/ai"
)

type InferenceRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters *InferenceParams  `json:"parameters,omitempty"`
	Options    *InferenceOptions `json:"options,omitempty"`
}

type InferenceParams struct {
	MaxLength   int     `json:"max_length,omitempty"`
	MinLength   int     `json:"min_length,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type InferenceOptions struct {
	WaitForModel bool `json:"wait_for_model,omitempty"`
	UseCache     bool `json:"use_cache,omitempty"`
}

// InferenceOutput is one element of the array the inference API returns.
// Summarization models emit summary_text, generation models generated_text.
type InferenceOutput struct {
	SummaryText   string `json:"summary_text,omitempty"`
	GeneratedText string `json:"generated_text,omitempty"`
}

// Text returns whichever output field the model populated.
func (o *InferenceOutput) Text() string {
	if o.SummaryText != "" {
		return o.SummaryText
	}
	return o.GeneratedText
}

type ErrorResponse struct {
	Error         json.RawMessage `json:"error"`
	EstimatedTime float64         `json:"estimated_time,omitempty"`
}

// Message flattens the error field, which the API returns either as a
// string or as a list of strings.
func (r *ErrorResponse) Message() string {
	if len(r.Error) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(r.Error, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(r.Error, &list); err == nil && len(list) > 0 {
		return list[0]
	}

	return string(r.Error)
}

func toAIResponse(outputs []InferenceOutput, model, requestID string) *ai.CompletionResponse {
	response := &ai.CompletionResponse{
		RequestID:    requestID,
		Model:        model,
		FinishReason: "stop",
		CreatedAt:    time.Now(),
		Usage:        &ai.TokenUsage{},
	}

	if len(outputs) > 0 {
		response.Content = outputs[0].Text()
	}

	return response
}
