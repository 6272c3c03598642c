package formatter

import (
	"encoding/json"
	"time"

	"github.com/denizgun/symtriage/internal/analyze"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(diagnosis *analyze.Diagnosis) ([]byte, error) {
	output := &JSONOutput{
		GeneratedAt: time.Now().UTC(),
		Diagnosis:   diagnosis,
		Conditions:  analyze.DetectConditions(diagnosis.PatientInfoUsed.MedicalHistory),
		Disclaimer:  analyze.Disclaimer,
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput wraps a diagnosis with report metadata.
type JSONOutput struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Diagnosis   *analyze.Diagnosis `json:"diagnosis"`
	Conditions  []string           `json:"conditions,omitempty"`
	Disclaimer  string             `json:"disclaimer"`
}
