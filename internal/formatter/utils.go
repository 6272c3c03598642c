package formatter

import (
	"sort"
	"strings"

	"github.com/yildizm/go-termfmt"
)

// recommendationLabels maps recommendation keys to display labels.
var recommendationLabels = map[string]string{
	"diet":     "Diet",
	"exercise": "Exercise",
	"stress":   "Stress Management",
}

// getConditionEmoji returns emoji for recognized history conditions using go-termfmt
func getConditionEmoji(condition string) string {
	opts := termfmt.DefaultOptions()
	switch condition {
	case "cancer", "heart_disease":
		return termfmt.GetEmoji("error", opts)
	case "diabetes", "hypertension", "respiratory":
		return termfmt.GetEmoji("warning", opts)
	default:
		return termfmt.GetEmoji("info", opts)
	}
}

// recommendationLabel returns the display label for a recommendation key.
// Unknown keys are title-cased from their snake_case form.
func recommendationLabel(key string) string {
	if label, ok := recommendationLabels[key]; ok {
		return label
	}
	parts := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// sortedRecommendationKeys keeps recommendation ordering stable across runs.
func sortedRecommendationKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orUnknown substitutes a placeholder for blank values.
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
