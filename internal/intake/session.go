// Package intake implements the multi-step intake workflow: patient
// demographics, then symptoms, then analysis. The Session holds all
// wizard state and enforces step gating, so UI layers only dispatch
// transitions and render.
package intake

import (
	"errors"
	"strings"

	"github.com/denizgun/symtriage/internal/analyze"
)

// Step identifies a wizard step. Transitions move strictly forward or
// backward by one step.
type Step int

const (
	StepPatient Step = iota
	StepSymptoms
	StepAnalysis
)

func (s Step) String() string {
	switch s {
	case StepPatient:
		return "patient"
	case StepSymptoms:
		return "symptoms"
	case StepAnalysis:
		return "analysis"
	default:
		return "unknown"
	}
}

// Gender is the patient gender selection.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PatientInfo is the demographic data collected on the first step.
type PatientInfo struct {
	Age            string
	Gender         Gender
	MedicalHistory string
}

// ToPatient converts to the wire form used by analysis requests.
func (p PatientInfo) ToPatient() analyze.Patient {
	return analyze.Patient{
		Age:            strings.TrimSpace(p.Age),
		Gender:         string(p.Gender),
		MedicalHistory: strings.TrimSpace(p.MedicalHistory),
	}
}

var (
	ErrAgeRequired          = errors.New("age is required")
	ErrGenderRequired       = errors.New("gender is required")
	ErrSymptomRequired      = errors.New("at least one symptom is required")
	ErrMinSymptoms          = errors.New("symptom list cannot be empty")
	ErrIndexOutOfRange      = errors.New("symptom index out of range")
	ErrAtFirstStep          = errors.New("already at the first step")
	ErrAtLastStep           = errors.New("already at the last step")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")

	// ErrSubmitRequired signals that advancing from the symptoms step
	// means submitting the intake rather than a plain transition.
	ErrSubmitRequired = errors.New("advancing from symptoms requires a submission")
)

// Session is the wizard state. After a submission starts, at most one of
// Loading, Err, and Result is active at any time.
type Session struct {
	Step     Step
	Patient  PatientInfo
	Symptoms []string

	Loading bool
	Err     string
	Result  *analyze.Report
}

// NewSession starts a fresh intake at the patient step with one empty
// symptom entry ready for editing.
func NewSession() *Session {
	return &Session{
		Step:     StepPatient,
		Symptoms: []string{""},
	}
}

// SetAge updates the patient's age.
func (s *Session) SetAge(age string) {
	s.Patient.Age = age
}

// SetGender updates the patient's gender.
func (s *Session) SetGender(g Gender) {
	s.Patient.Gender = g
}

// SetMedicalHistory updates the patient's free-text medical history.
func (s *Session) SetMedicalHistory(history string) {
	s.Patient.MedicalHistory = history
}

// AddSymptom appends an empty symptom entry for editing.
func (s *Session) AddSymptom() {
	s.Symptoms = append(s.Symptoms, "")
}

// EditSymptom replaces the symptom at index i.
func (s *Session) EditSymptom(i int, text string) error {
	if i < 0 || i >= len(s.Symptoms) {
		return ErrIndexOutOfRange
	}
	s.Symptoms[i] = text
	return nil
}

// RemoveSymptom deletes the symptom at index i. The list never shrinks
// below one entry.
func (s *Session) RemoveSymptom(i int) error {
	if len(s.Symptoms) <= 1 {
		return ErrMinSymptoms
	}
	if i < 0 || i >= len(s.Symptoms) {
		return ErrIndexOutOfRange
	}
	s.Symptoms = append(s.Symptoms[:i], s.Symptoms[i+1:]...)
	return nil
}

// NonBlankSymptoms returns the trimmed symptoms that survive submission
// filtering.
func (s *Session) NonBlankSymptoms() []string {
	out := make([]string, 0, len(s.Symptoms))
	for _, sym := range s.Symptoms {
		if trimmed := strings.TrimSpace(sym); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate checks whether the current step's requirements are met.
func (s *Session) Validate() error {
	switch s.Step {
	case StepPatient:
		if strings.TrimSpace(s.Patient.Age) == "" {
			return ErrAgeRequired
		}
		if s.Patient.Gender == GenderUnset {
			return ErrGenderRequired
		}
	case StepSymptoms:
		if len(s.NonBlankSymptoms()) == 0 {
			return ErrSymptomRequired
		}
	}
	return nil
}

// Advance moves forward one step. From the patient step it requires age
// and gender; from the symptoms step it validates and returns
// ErrSubmitRequired so the caller runs Begin/Finish/Fail instead. The
// session is unchanged whenever an error is returned.
func (s *Session) Advance() error {
	if err := s.Validate(); err != nil {
		return err
	}

	switch s.Step {
	case StepPatient:
		s.Step = StepSymptoms
		return nil
	case StepSymptoms:
		return ErrSubmitRequired
	default:
		return ErrAtLastStep
	}
}

// Retreat moves back one step. Leaving the analysis step clears the
// stored result and error so re-entry starts clean.
func (s *Session) Retreat() error {
	if s.Step == StepPatient {
		return ErrAtFirstStep
	}

	if s.Step == StepAnalysis {
		s.Result = nil
		s.Err = ""
	}

	s.Step--
	return nil
}

// Begin starts a submission: it validates the symptoms step, rejects a
// second submission while one is in flight, and clears any prior error
// and result before setting the loading flag.
func (s *Session) Begin() error {
	if s.Step != StepSymptoms {
		return ErrSubmitRequired
	}
	if s.Loading {
		return ErrSubmissionInProgress
	}
	if err := s.Validate(); err != nil {
		return err
	}

	s.Loading = true
	s.Err = ""
	s.Result = nil
	return nil
}

// Finish records a successful submission and advances to the analysis
// step.
func (s *Session) Finish(report *analyze.Report) {
	s.Loading = false
	s.Err = ""
	s.Result = report
	s.Step = StepAnalysis
}

// Fail records a failed submission. The wizard stays on the symptoms
// step with the error displayed inline.
func (s *Session) Fail(message string) {
	s.Loading = false
	s.Result = nil
	if message == "" {
		message = "Analysis request failed. Please try again."
	}
	s.Err = message
}
