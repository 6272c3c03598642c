package analyze

import (
	"strconv"
	"strings"
)

// HistoryAnalysis summarizes what the patient's medical history implies
// for risk, complications, and follow-up.
type HistoryAnalysis struct {
	Summary          string `json:"summary"`
	RiskFactors      string `json:"risk_factors"`
	Complications    string `json:"complications"`
	RecommendedTests string `json:"recommended_tests"`
	Precautions      string `json:"precautions"`
	Monitoring       string `json:"monitoring"`
}

// conditionKeywords maps known condition categories to the phrases that
// indicate them in free-text medical history.
var conditionKeywords = map[string][]string{
	"diabetes":      {"diabetes", "diabetic", "blood sugar", "insulin"},
	"hypertension":  {"hypertension", "high blood pressure", "hbp"},
	"heart_disease": {"heart disease", "cardiac", "heart attack", "angina"},
	"respiratory":   {"asthma", "copd", "bronchitis", "pneumonia"},
	"arthritis":     {"arthritis", "joint pain", "rheumatoid", "osteoarthritis"},
	"mental_health": {"depression", "anxiety", "bipolar", "schizophrenia"},
	"allergies":     {"allergies", "allergic", "anaphylaxis"},
	"cancer":        {"cancer", "tumor", "malignancy", "oncology"},
}

// conditionOrder keeps detection output deterministic.
var conditionOrder = []string{
	"diabetes",
	"hypertension",
	"heart_disease",
	"respiratory",
	"arthritis",
	"mental_health",
	"allergies",
	"cancer",
}

// DetectConditions scans free-text medical history for known condition
// categories.
func DetectConditions(history string) []string {
	lowered := strings.ToLower(history)

	var detected []string
	for _, condition := range conditionOrder {
		for _, keyword := range conditionKeywords[condition] {
			if strings.Contains(lowered, keyword) {
				detected = append(detected, condition)
				break
			}
		}
	}
	return detected
}

// AnalyzeHistory produces a structured assessment of the patient's
// medical history.
func AnalyzeHistory(history string) *HistoryAnalysis {
	trimmed := strings.TrimSpace(history)
	if trimmed == "" || strings.EqualFold(trimmed, "not provided") {
		return &HistoryAnalysis{
			Summary:          "No medical history provided. Please provide medical history for better analysis.",
			RiskFactors:      "Unable to assess risk factors without medical history.",
			Complications:    "Unable to assess potential complications without medical history.",
			RecommendedTests: "Standard screening tests recommended based on age and gender.",
			Precautions:      "General precautions recommended. Specific precautions require medical history.",
			Monitoring:       "Standard monitoring parameters recommended.",
		}
	}

	conditions := DetectConditions(history)

	return &HistoryAnalysis{
		Summary:          conditionList(conditions, "Detected medical conditions:", "No specific medical conditions detected in the provided history."),
		RiskFactors:      conditionItems(conditions, "Additional risk factors based on medical history:", "related complications", "Standard risk factors based on age and gender apply."),
		Complications:    conditionItems(conditions, "Potential complications to monitor:", "related complications", "Standard complication monitoring recommended."),
		RecommendedTests: conditionItems(conditions, "Additional tests recommended based on medical history:", "specific monitoring", "Standard screening tests recommended."),
		Precautions:      conditionItems(conditions, "Additional precautions based on medical history:", "specific precautions", "Standard precautions recommended."),
		Monitoring:       conditionItems(conditions, "Additional monitoring parameters based on medical history:", "specific monitoring", "Standard monitoring parameters recommended."),
	}
}

func conditionList(conditions []string, header, empty string) string {
	if len(conditions) == 0 {
		return empty
	}

	var b strings.Builder
	b.WriteString(header)
	for _, c := range conditions {
		b.WriteString("\n- ")
		b.WriteString(titleCase(c))
	}
	return b.String()
}

func conditionItems(conditions []string, header, suffix, empty string) string {
	if len(conditions) == 0 {
		return empty
	}

	var b strings.Builder
	b.WriteString(header)
	for _, c := range conditions {
		b.WriteString("\n- ")
		b.WriteString(titleCase(c))
		b.WriteString("-")
		b.WriteString(suffix)
	}
	return b.String()
}

// AgeRiskFactors maps the patient's age band to its typical risk profile.
func AgeRiskFactors(age string) string {
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return "Age-specific risk factors cannot be determined"
	}

	switch {
	case n < 18:
		return "Pediatric considerations, developmental factors, growth monitoring"
	case n < 65:
		return "Adult risk factors, lifestyle-related conditions, occupational health"
	default:
		return "Geriatric considerations, age-related conditions, polypharmacy risks"
	}
}

// GenderConsiderations returns gender-specific clinical considerations.
func GenderConsiderations(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return "Male-specific conditions, hormonal factors, prostate health"
	case "female":
		return "Female-specific conditions, hormonal factors, reproductive health"
	default:
		return "General health considerations"
	}
}

// Lifestyle recommendations returned alongside every analysis.

func DietRecommendations() string {
	return "Balanced diet with emphasis on whole foods, adequate hydration, and appropriate portion sizes"
}

func ExerciseRecommendations() string {
	return "Regular moderate exercise as tolerated, with appropriate rest periods and gradual progression"
}

func StressManagement() string {
	return "Regular relaxation techniques, adequate sleep, and stress-reduction activities"
}

// Recommendations assembles the lifestyle recommendation map included in
// each diagnosis.
func Recommendations() map[string]string {
	return map[string]string{
		"diet":     DietRecommendations(),
		"exercise": ExerciseRecommendations(),
		"stress":   StressManagement(),
	}
}
