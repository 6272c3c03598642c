package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/denizgun/symtriage/internal/ai"
	"github.com/denizgun/symtriage/internal/logger"
	"github.com/yildizm/go-promptfmt"
)

// EngineOptions tunes how the engine talks to its provider.
type EngineOptions struct {
	// MaxTokens caps the provider response length.
	MaxTokens int

	// Temperature used for completions.
	Temperature float64

	// DisableFallback returns provider errors to the caller instead of
	// generating an offline report.
	DisableFallback bool
}

// Engine produces medical analyses from symptoms and patient data. When
// the provider is unavailable it falls back to a locally generated
// report, so a submission always yields a diagnosis.
type Engine struct {
	provider ai.Provider
	options  *EngineOptions
	logger   *logger.Logger
}

// NewEngine creates an analysis engine backed by the given provider.
func NewEngine(provider ai.Provider, options *EngineOptions) *Engine {
	if options == nil {
		options = &EngineOptions{
			MaxTokens:   1024,
			Temperature: 0.3,
		}
	}

	return &Engine{
		provider: provider,
		options:  options,
		logger:   logger.NewWithCallback("analyze", nil),
	}
}

// SetLogger replaces the engine's logger, keeping verbose gating with the
// caller.
func (e *Engine) SetLogger(l *logger.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Analyze runs one analysis for the given symptoms and patient. Symptoms
// must contain at least one non-blank entry.
func (e *Engine) Analyze(ctx context.Context, symptoms []string, patient Patient) (*Diagnosis, error) {
	cleaned := nonBlank(symptoms)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("at least one symptom is required")
	}

	startTime := time.Now()
	prompt := e.buildPrompt(cleaned, patient)

	req := &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    e.options.MaxTokens,
		Temperature:  e.options.Temperature,
	}

	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		if ai.IsValidationError(err) || e.options.DisableFallback {
			return nil, err
		}

		if ai.IsModelLoadingError(err) {
			e.logger.Info("model still loading, using offline analysis")
		} else {
			e.logger.Warn("provider completion failed, using offline analysis: %v", err)
		}

		return Fallback(cleaned, patient), nil
	}

	e.logger.DebugWithFields("completion finished", []logger.Field{
		logger.F("provider", e.provider.Name()),
		logger.Duration(time.Since(startTime)),
	})

	history := AnalyzeHistory(patient.MedicalHistory)

	return &Diagnosis{
		Analysis:         composeReport(strings.TrimSpace(resp.Content), cleaned, patient, history),
		SymptomsAnalyzed: cleaned,
		PatientInfoUsed:  patient,
		HistoryAnalysis:  history,
		Recommendations:  Recommendations(),
	}, nil
}

// buildPrompt assembles the case description sent to the provider.
func (e *Engine) buildPrompt(symptoms []string, patient Patient) *promptfmt.Prompt {
	demographics := fmt.Sprintf("Age: %s\nGender: %s\nMedical History: %s",
		orNotProvided(patient.Age),
		orNotProvided(patient.Gender),
		orNotProvided(patient.MedicalHistory))

	return promptfmt.New().
		System("You are a clinical decision support assistant. Provide a detailed, structured preliminary medical analysis. Never present your output as a definitive diagnosis.").
		User("Medical case analysis for presenting symptoms: %s\n\nProvide a detailed medical analysis including:\n1. Differential diagnosis\n2. Risk factors\n3. Potential complications\n4. Recommended diagnostic tests\n5. Treatment considerations",
			strings.Join(symptoms, ", ")).
		AddContext("patient demographics", demographics).
		Build()
}

// Fallback generates a diagnosis locally when the provider is
// unreachable or its model has not finished loading.
func Fallback(symptoms []string, patient Patient) *Diagnosis {
	history := AnalyzeHistory(patient.MedicalHistory)

	differential := "Based on the presenting symptoms, several conditions should be considered:\n" +
		"   - Acute conditions requiring immediate attention\n" +
		"   - Chronic conditions requiring ongoing management\n" +
		"   - Systemic conditions affecting multiple organ systems"

	return &Diagnosis{
		Analysis:         composeReport(differential, symptoms, patient, history),
		SymptomsAnalyzed: symptoms,
		PatientInfoUsed:  patient,
		HistoryAnalysis:  history,
		Recommendations:  Recommendations(),
	}
}

// composeReport formats the full analysis text around the differential
// diagnosis section, whether model-generated or offline.
func composeReport(differential string, symptoms []string, patient Patient, history *HistoryAnalysis) string {
	var b strings.Builder

	section := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n\n")
	}

	b.WriteString("Medical Analysis Report\n")
	b.WriteString("=======================\n\n")

	section("Patient Information:\n-------------------\nAge: %s\nGender: %s",
		orNotProvided(patient.Age), orNotProvided(patient.Gender))

	section("Medical History Analysis:\n-----------------------\n%s", history.Summary)

	section("Presenting Symptoms:\n------------------\n%s", strings.Join(symptoms, ", "))

	b.WriteString("Clinical Assessment:\n------------------\n\n")

	section("1. Differential Diagnosis:\n   %s", differential)

	section("2. Risk Assessment:\n   - Age-related factors: %s\n   - Gender-specific considerations: %s\n   - Medical history impact: %s",
		AgeRiskFactors(patient.Age), GenderConsiderations(patient.Gender), history.RiskFactors)

	section("3. Potential Complications:\n   - Acute complications: %s\n   - Chronic implications: %s\n   - History-related complications: %s",
		acuteComplications(), chronicImplications(), history.Complications)

	section("4. Recommended Diagnostic Workup:\n   - Initial screening tests: %s\n   - Additional investigations: %s\n   - History-specific tests: %s",
		screeningTests(), additionalTests(), history.RecommendedTests)

	section("5. Treatment Considerations:\n   - Immediate interventions: %s\n   - Long-term management: %s\n   - History-based precautions: %s",
		immediateInterventions(), longTermManagement(), history.Precautions)

	section("6. Follow-up Recommendations:\n   - Monitoring parameters: %s\n   - Referral criteria: %s\n   - History-specific monitoring: %s",
		monitoringParameters(), referralCriteria(), history.Monitoring)

	b.WriteString("Important Notes:\n--------------\n")
	b.WriteString("- This is an AI-generated preliminary analysis and should not replace professional medical evaluation\n")
	b.WriteString("- Seek immediate medical attention if symptoms worsen or new symptoms develop\n")
	b.WriteString("- Regular follow-up with healthcare providers is essential\n")
	b.WriteString("- Maintain a symptom diary for better tracking\n")

	return b.String()
}

// Static assessment guidance shared by online and offline reports.

func acuteComplications() string {
	return "Monitor for signs of deterioration, systemic involvement, and emergency conditions"
}

func chronicImplications() string {
	return "Consider long-term health impact, quality of life factors, and chronic disease management"
}

func screeningTests() string {
	return "Basic blood work, vital signs monitoring, and relevant imaging studies"
}

func additionalTests() string {
	return "Specialized testing based on specific symptoms and risk factors"
}

func immediateInterventions() string {
	return "Supportive care, symptom management, and monitoring of vital signs"
}

func longTermManagement() string {
	return "Lifestyle modifications, preventive measures, and regular health monitoring"
}

func monitoringParameters() string {
	return "Vital signs, symptom progression, and response to interventions"
}

func referralCriteria() string {
	return "Refer to appropriate specialist if symptoms persist or worsen"
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

// nonBlank filters out entries that are empty after trimming.
func nonBlank(symptoms []string) []string {
	cleaned := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
