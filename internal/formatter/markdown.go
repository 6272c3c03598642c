package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/denizgun/symtriage/internal/analyze"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(diagnosis *analyze.Diagnosis) ([]byte, error) {
	var b strings.Builder

	// Header with generation timestamp
	b.WriteString("# Symptom Analysis Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writePatientTable(&b, diagnosis.PatientInfoUsed)
	f.writeSymptoms(&b, diagnosis.SymptomsAnalyzed)
	f.writeHistory(&b, diagnosis)
	f.writeAssessment(&b, diagnosis.Analysis)
	f.writeRecommendations(&b, diagnosis.Recommendations)

	b.WriteString("---\n")
	b.WriteString("*" + analyze.Disclaimer + "*\n")

	return []byte(b.String()), nil
}

// writePatientTable writes the patient details as a table
func (f *markdownFormatter) writePatientTable(b *strings.Builder, patient analyze.Patient) {
	b.WriteString("## Patient\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Age | %s |\n", orUnknown(patient.Age))
	fmt.Fprintf(b, "| Gender | %s |\n", orUnknown(patient.Gender))
	fmt.Fprintf(b, "| Medical History | %s |\n\n", orUnknown(patient.MedicalHistory))
}

// writeSymptoms writes the analyzed symptom list
func (f *markdownFormatter) writeSymptoms(b *strings.Builder, symptoms []string) {
	b.WriteString("## Symptoms\n\n")
	for _, symptom := range symptoms {
		fmt.Fprintf(b, "- %s\n", symptom)
	}
	b.WriteString("\n")
}

// writeHistory writes detected conditions and their implications
func (f *markdownFormatter) writeHistory(b *strings.Builder, diagnosis *analyze.Diagnosis) {
	history := diagnosis.HistoryAnalysis
	if history == nil {
		return
	}

	b.WriteString("## Medical History\n\n")
	fmt.Fprintf(b, "%s\n\n", history.Summary)

	if history.RiskFactors != "" {
		fmt.Fprintf(b, "**Risk Factors**: %s\n\n", history.RiskFactors)
	}
	if history.Monitoring != "" {
		fmt.Fprintf(b, "**Monitoring**: %s\n\n", history.Monitoring)
	}
}

// writeAssessment writes the assessment body
func (f *markdownFormatter) writeAssessment(b *strings.Builder, analysis string) {
	b.WriteString("## Assessment\n\n")

	text := strings.TrimSpace(analysis)
	if text == "" {
		text = analyze.NoAnalysisText
	}
	b.WriteString(text + "\n\n")
}

// writeRecommendations writes lifestyle recommendations
func (f *markdownFormatter) writeRecommendations(b *strings.Builder, recommendations map[string]string) {
	if len(recommendations) == 0 {
		return
	}

	b.WriteString("## Lifestyle Recommendations\n\n")
	for _, key := range sortedRecommendationKeys(recommendations) {
		fmt.Fprintf(b, "- **%s**: %s\n", recommendationLabel(key), recommendations[key])
	}
	b.WriteString("\n")
}
