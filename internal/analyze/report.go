// Package analyze turns collected patient data into a textual medical
// analysis. It normalizes the polymorphic response shapes the backend may
// return and renders them for display.
package analyze

import (
	"encoding/json"
	"sort"
	"strings"
)

// Patient carries the demographic fields sent with every analysis request.
type Patient struct {
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	MedicalHistory string `json:"medical_history"`
}

// Report is the normalized form of an analysis response.
type Report struct {
	Text            string            `json:"text"`
	Recommendations map[string]string `json:"recommendations,omitempty"`
}

// Diagnosis is the canonical success payload produced by the analysis
// engine and returned by the server.
type Diagnosis struct {
	Analysis         string            `json:"analysis"`
	SymptomsAnalyzed []string          `json:"symptoms_analyzed"`
	PatientInfoUsed  Patient           `json:"patient_info_used"`
	HistoryAnalysis  *HistoryAnalysis  `json:"history_analysis,omitempty"`
	Recommendations  map[string]string `json:"recommendations,omitempty"`
}

// NoAnalysisText is shown when a response carries no analysis text in any
// of the known shapes.
const NoAnalysisText = "Analysis not available."

// Disclaimer is appended to every rendered report. It is fixed and not
// configurable.
const Disclaimer = "This AI-generated preliminary analysis is for informational purposes only " +
	"and should not replace professional medical evaluation. " +
	"Seek immediate medical attention if symptoms worsen or new symptoms develop."

// resultShape covers the object forms observed from the backend: a flat
// analysis field, a nested diagnosis (itself a string or an object), and
// an optional recommendations map at either level.
type resultShape struct {
	Analysis        string            `json:"analysis"`
	Diagnosis       json.RawMessage   `json:"diagnosis"`
	Recommendations map[string]string `json:"recommendations"`
}

// Normalize parses a successful response body into a Report. The body may
// be a bare JSON string, an object with an analysis field, or an object
// nesting the analysis under diagnosis. Unknown shapes normalize to
// NoAnalysisText rather than failing, so rendering stays total.
func Normalize(body []byte) (*Report, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return &Report{Text: NoAnalysisText}, nil
	}

	// Bare string response.
	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return &Report{Text: NoAnalysisText}, nil
		}
		return &Report{Text: s}, nil
	}

	var shape resultShape
	if err := json.Unmarshal([]byte(trimmed), &shape); err != nil {
		return nil, err
	}

	report := &Report{
		Text:            NoAnalysisText,
		Recommendations: shape.Recommendations,
	}

	if shape.Analysis != "" {
		report.Text = shape.Analysis
		return report, nil
	}

	if len(shape.Diagnosis) > 0 {
		if text, recs := normalizeDiagnosis(shape.Diagnosis); text != "" {
			report.Text = text
			if report.Recommendations == nil {
				report.Recommendations = recs
			}
		}
	}

	return report, nil
}

// normalizeDiagnosis unwraps the diagnosis field, which is either a plain
// string or an object carrying its own analysis and recommendations.
func normalizeDiagnosis(raw json.RawMessage) (string, map[string]string) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var nested resultShape
	if err := json.Unmarshal(raw, &nested); err != nil {
		return "", nil
	}

	return nested.Analysis, nested.Recommendations
}

// Render produces the display text for a report: the analysis body, a
// labeled recommendations section when present, and the disclaimer.
func Render(r *Report) string {
	var b strings.Builder

	text := r.Text
	if strings.TrimSpace(text) == "" {
		text = NoAnalysisText
	}
	b.WriteString(strings.TrimSpace(text))
	b.WriteString("\n")

	if len(r.Recommendations) > 0 {
		b.WriteString("\nLifestyle Recommendations:\n")
		for _, key := range sortedKeys(r.Recommendations) {
			b.WriteString("- ")
			b.WriteString(titleCase(key))
			b.WriteString(": ")
			b.WriteString(r.Recommendations[key])
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(Disclaimer)
	b.WriteString("\n")

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// titleCase upper-cases the first letter of each underscore or space
// separated word, so "heart_disease" becomes "Heart Disease".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
