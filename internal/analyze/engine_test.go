package analyze

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/denizgun/symtriage/internal/ai"
)

// mockProvider implements ai.Provider for engine tests.
type mockProvider struct {
	content string
	err     error
	lastReq *ai.CompletionRequest
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &ai.CompletionResponse{
		Content:      m.content,
		FinishReason: "stop",
		Model:        "mock-model",
		CreatedAt:    time.Now(),
		Usage:        &ai.TokenUsage{},
	}, nil
}

func (m *mockProvider) MaxTokens() int                    { return 4096 }
func (m *mockProvider) ValidateConfig() error             { return nil }
func (m *mockProvider) Close() error                      { return nil }
func (m *mockProvider) HealthCheck(context.Context) error { return nil }
func (m *mockProvider) IsHealthy() bool                   { return true }

func testPatient() Patient {
	return Patient{
		Age:            "42",
		Gender:         "female",
		MedicalHistory: "hypertension",
	}
}

func TestEngine_Analyze(t *testing.T) {
	provider := &mockProvider{content: "Likely tension headache given the history."}
	engine := NewEngine(provider, nil)

	diagnosis, err := engine.Analyze(context.Background(), []string{"headache", "fatigue"}, testPatient())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if !strings.Contains(diagnosis.Analysis, "Likely tension headache") {
		t.Error("analysis missing provider content")
	}
	if !strings.Contains(diagnosis.Analysis, "Medical Analysis Report") {
		t.Error("analysis missing report header")
	}
	if !strings.Contains(diagnosis.Analysis, "headache, fatigue") {
		t.Error("analysis missing symptom list")
	}
	if !strings.Contains(diagnosis.Analysis, "Hypertension") {
		t.Error("analysis missing detected history condition")
	}

	if len(diagnosis.SymptomsAnalyzed) != 2 {
		t.Errorf("SymptomsAnalyzed = %v", diagnosis.SymptomsAnalyzed)
	}
	if diagnosis.Recommendations["diet"] == "" {
		t.Error("missing diet recommendation")
	}
	if diagnosis.HistoryAnalysis == nil {
		t.Fatal("missing history analysis")
	}

	// The prompt should carry symptoms and demographics.
	if provider.lastReq == nil {
		t.Fatal("provider was not called")
	}
	if !strings.Contains(provider.lastReq.Prompt, "headache") {
		t.Error("prompt missing symptoms")
	}
	if provider.lastReq.SystemPrompt == "" {
		t.Error("prompt missing system instructions")
	}
}

func TestEngine_Analyze_TrimsBlankSymptoms(t *testing.T) {
	provider := &mockProvider{content: "ok"}
	engine := NewEngine(provider, nil)

	diagnosis, err := engine.Analyze(context.Background(), []string{"  cough  ", "   ", ""}, testPatient())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(diagnosis.SymptomsAnalyzed) != 1 || diagnosis.SymptomsAnalyzed[0] != "cough" {
		t.Errorf("SymptomsAnalyzed = %v, expected [cough]", diagnosis.SymptomsAnalyzed)
	}
}

func TestEngine_Analyze_RequiresSymptoms(t *testing.T) {
	engine := NewEngine(&mockProvider{content: "ok"}, nil)

	if _, err := engine.Analyze(context.Background(), nil, testPatient()); err == nil {
		t.Error("expected error for empty symptom list")
	}
	if _, err := engine.Analyze(context.Background(), []string{"   "}, testPatient()); err == nil {
		t.Error("expected error for blank-only symptoms")
	}
}

func TestEngine_Analyze_FallbackOnModelLoading(t *testing.T) {
	provider := &mockProvider{
		err: ai.NewProviderError(ai.ErrTypeModelLoading, "model loading", "huggingface"),
	}
	engine := NewEngine(provider, nil)

	diagnosis, err := engine.Analyze(context.Background(), []string{"fever"}, testPatient())
	if err != nil {
		t.Fatalf("Analyze() error = %v, expected offline fallback", err)
	}

	if !strings.Contains(diagnosis.Analysis, "Medical Analysis Report") {
		t.Error("fallback analysis missing report header")
	}
	if !strings.Contains(diagnosis.Analysis, "several conditions should be considered") {
		t.Error("fallback analysis missing offline differential text")
	}
	if diagnosis.Recommendations["stress"] == "" {
		t.Error("fallback missing stress recommendation")
	}
}

func TestEngine_Analyze_FallbackDisabled(t *testing.T) {
	provider := &mockProvider{
		err: ai.NewProviderError(ai.ErrTypeNetwork, "connection refused", "huggingface"),
	}
	engine := NewEngine(provider, &EngineOptions{
		MaxTokens:       512,
		Temperature:     0.3,
		DisableFallback: true,
	})

	if _, err := engine.Analyze(context.Background(), []string{"fever"}, testPatient()); err == nil {
		t.Error("expected provider error when fallback is disabled")
	}
}

func TestFallback(t *testing.T) {
	diagnosis := Fallback([]string{"dizziness"}, Patient{Age: "70", Gender: "male"})

	if !strings.Contains(diagnosis.Analysis, "Geriatric considerations") {
		t.Error("fallback missing age risk factors")
	}
	if !strings.Contains(diagnosis.Analysis, "Male-specific conditions") {
		t.Error("fallback missing gender considerations")
	}
	if !strings.Contains(diagnosis.Analysis, "dizziness") {
		t.Error("fallback missing symptoms")
	}
}
