package formatter

import (
	"fmt"

	"github.com/denizgun/symtriage/internal/analyze"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(diagnosis *analyze.Diagnosis) ([]byte, error)
}

// New returns the formatter for the named output format.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "terminal", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
