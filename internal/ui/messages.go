package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/client"
)

// Analyzer runs one analysis request. The HTTP client satisfies this; tests
// substitute a local implementation.
type Analyzer interface {
	Analyze(ctx context.Context, symptoms []string, patient analyze.Patient) (*analyze.Report, error)
}

// Common message types shared across UI models
type analysisCompleteMsg struct {
	report *analyze.Report
}

type analysisErrorMsg struct {
	err error
}

// CreateAnalysisCommand creates a tea command that performs one analysis
// request.
func CreateAnalysisCommand(analyzer Analyzer, symptoms []string, patient analyze.Patient) tea.Cmd {
	return func() tea.Msg {
		report, err := analyzer.Analyze(context.Background(), symptoms, patient)
		if err != nil {
			return analysisErrorMsg{err: err}
		}
		return analysisCompleteMsg{report: report}
	}
}

// failureMessage maps a request failure to the text shown inline on the
// symptoms step. Server-provided messages pass through; anything else gets
// the generic retry prompt.
func failureMessage(err error) string {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return client.GenericErrorMessage
}
