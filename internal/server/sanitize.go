package server

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips any markup from free-text input. Symptom descriptions
// and history notes are rendered back to clients, so they must never carry
// HTML through the analysis pipeline.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	// StrictPolicy entity-escapes what it keeps; the stored form is plain text.
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func sanitizeAll(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		cleaned = append(cleaned, sanitizeText(v))
	}
	return cleaned
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
