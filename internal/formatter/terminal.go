package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/denizgun/symtriage/internal/analyze"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(diagnosis *analyze.Diagnosis) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writePatient(&b, diagnosis.PatientInfoUsed)
	f.writeSymptoms(&b, diagnosis.SymptomsAnalyzed)
	f.writeHistory(&b, diagnosis)
	f.writeAnalysis(&b, diagnosis.Analysis)
	f.writeRecommendations(&b, diagnosis.Recommendations)
	f.writeDisclaimer(&b)

	return []byte(b.String()), nil
}

// writeHeader writes the boxed report title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Symptom Analysis"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writePatient writes patient details with tree-style formatting using go-termfmt
func (f *terminalFormatter) writePatient(b *strings.Builder, patient analyze.Patient) {
	symbol := termfmt.GetEmoji("info", f.opts)
	b.WriteString(symbol + " Patient\n")

	items := []termfmt.TreeItem{
		{Label: "Age", Value: orUnknown(patient.Age)},
		{Label: "Gender", Value: orUnknown(patient.Gender)},
		{Label: "Medical History", Value: orUnknown(patient.MedicalHistory), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeSymptoms lists the symptoms that were analyzed
func (f *terminalFormatter) writeSymptoms(b *strings.Builder, symptoms []string) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Symptoms Analyzed\n")

	for i, symptom := range symptoms {
		if i == len(symptoms)-1 {
			fmt.Fprintf(b, "└─ %s\n", symptom)
		} else {
			fmt.Fprintf(b, "├─ %s\n", symptom)
		}
	}
	b.WriteString("\n")
}

// writeHistory writes detected conditions and history implications
func (f *terminalFormatter) writeHistory(b *strings.Builder, diagnosis *analyze.Diagnosis) {
	if diagnosis.HistoryAnalysis == nil {
		return
	}

	conditions := analyze.DetectConditions(diagnosis.PatientInfoUsed.MedicalHistory)
	if len(conditions) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("warning", f.opts)
	b.WriteString(symbol + " Known Conditions\n")

	for i, condition := range conditions {
		emoji := getConditionEmoji(condition)
		label := recommendationLabel(condition)
		if i == len(conditions)-1 {
			fmt.Fprintf(b, "└─ %s %s\n", emoji, label)
		} else {
			fmt.Fprintf(b, "├─ %s %s\n", emoji, label)
		}
	}
	b.WriteString("\n")
}

// writeAnalysis writes the assessment body
func (f *terminalFormatter) writeAnalysis(b *strings.Builder, analysis string) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " Assessment\n")
	b.WriteString(strings.Repeat("─", 50) + "\n")

	text := strings.TrimSpace(analysis)
	if text == "" {
		text = analyze.NoAnalysisText
	}
	b.WriteString(text + "\n\n")
}

// writeRecommendations writes lifestyle recommendations with tree formatting
func (f *terminalFormatter) writeRecommendations(b *strings.Builder, recommendations map[string]string) {
	if len(recommendations) == 0 {
		return
	}

	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " Lifestyle Recommendations\n")

	keys := sortedRecommendationKeys(recommendations)
	items := make([]termfmt.TreeItem, 0, len(keys))
	for i, key := range keys {
		items = append(items, termfmt.TreeItem{
			Label: recommendationLabel(key),
			Value: recommendations[key],
			Last:  i == len(keys)-1,
		})
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeDisclaimer writes the fixed medical disclaimer
func (f *terminalFormatter) writeDisclaimer(b *strings.Builder) {
	symbol := termfmt.GetEmoji("warning", f.opts)
	b.WriteString(symbol + " " + analyze.Disclaimer + "\n")
}
