package intake

import (
	"errors"
	"testing"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/google/go-cmp/cmp"
)

func completedPatientSession() *Session {
	s := NewSession()
	s.SetAge("42")
	s.SetGender(GenderFemale)
	return s
}

func symptomsStepSession(t *testing.T) *Session {
	t.Helper()
	s := completedPatientSession()
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() from patient step error = %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := NewSession()

	if s.Step != StepPatient {
		t.Errorf("Step = %v, expected StepPatient", s.Step)
	}
	if len(s.Symptoms) != 1 || s.Symptoms[0] != "" {
		t.Errorf("Symptoms = %v, expected one empty entry", s.Symptoms)
	}
	if s.Loading || s.Err != "" || s.Result != nil {
		t.Error("fresh session should have no submission state")
	}
}

func TestAdvance_PatientStepGating(t *testing.T) {
	tests := []struct {
		name    string
		age     string
		gender  Gender
		wantErr error
	}{
		{"missing both", "", GenderUnset, ErrAgeRequired},
		{"missing gender", "30", GenderUnset, ErrGenderRequired},
		{"missing age", "", GenderMale, ErrAgeRequired},
		{"whitespace age", "   ", GenderMale, ErrAgeRequired},
		{"complete", "30", GenderMale, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			s.SetAge(tt.age)
			s.SetGender(tt.gender)

			err := s.Advance()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Advance() error = %v, expected %v", err, tt.wantErr)
			}

			wantStep := StepPatient
			if tt.wantErr == nil {
				wantStep = StepSymptoms
			}
			if s.Step != wantStep {
				t.Errorf("Step = %v, expected %v", s.Step, wantStep)
			}
		})
	}
}

func TestAdvance_SymptomsStepGating(t *testing.T) {
	s := symptomsStepSession(t)

	// Only blank entries: advancing is rejected.
	if err := s.Advance(); !errors.Is(err, ErrSymptomRequired) {
		t.Errorf("Advance() error = %v, expected ErrSymptomRequired", err)
	}

	if err := s.EditSymptom(0, "   "); err != nil {
		t.Fatalf("EditSymptom() error = %v", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrSymptomRequired) {
		t.Errorf("whitespace-only symptom should not satisfy gating, got %v", err)
	}

	// With a real symptom, advancing signals submission.
	if err := s.EditSymptom(0, "headache"); err != nil {
		t.Fatalf("EditSymptom() error = %v", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrSubmitRequired) {
		t.Errorf("Advance() error = %v, expected ErrSubmitRequired", err)
	}
	if s.Step != StepSymptoms {
		t.Errorf("Step = %v, advancing from symptoms must not skip submission", s.Step)
	}
}

func TestSymptomListEditing(t *testing.T) {
	s := symptomsStepSession(t)

	s.AddSymptom()
	s.AddSymptom()
	if len(s.Symptoms) != 3 {
		t.Fatalf("len(Symptoms) = %d, expected 3", len(s.Symptoms))
	}

	for i, text := range []string{"fever", "cough", "  fatigue "} {
		if err := s.EditSymptom(i, text); err != nil {
			t.Fatalf("EditSymptom(%d) error = %v", i, err)
		}
	}

	if err := s.EditSymptom(5, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("EditSymptom out of range error = %v", err)
	}

	if err := s.RemoveSymptom(1); err != nil {
		t.Fatalf("RemoveSymptom() error = %v", err)
	}
	if diff := cmp.Diff([]string{"fever", "  fatigue "}, s.Symptoms); diff != "" {
		t.Errorf("Symptoms mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"fever", "fatigue"}, s.NonBlankSymptoms()); diff != "" {
		t.Errorf("NonBlankSymptoms mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveSymptom_MinimumCardinality(t *testing.T) {
	s := symptomsStepSession(t)

	if err := s.RemoveSymptom(0); !errors.Is(err, ErrMinSymptoms) {
		t.Errorf("RemoveSymptom() error = %v, expected ErrMinSymptoms", err)
	}
	if len(s.Symptoms) != 1 {
		t.Errorf("len(Symptoms) = %d, list must never drop below 1", len(s.Symptoms))
	}

	s.AddSymptom()
	if err := s.RemoveSymptom(0); err != nil {
		t.Errorf("RemoveSymptom() with two entries error = %v", err)
	}
	if err := s.RemoveSymptom(0); !errors.Is(err, ErrMinSymptoms) {
		t.Errorf("RemoveSymptom() back at one entry error = %v", err)
	}
}

func TestSubmissionLifecycle(t *testing.T) {
	s := symptomsStepSession(t)
	_ = s.EditSymptom(0, "headache")

	if err := s.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if !s.Loading || s.Err != "" || s.Result != nil {
		t.Error("after Begin() only the loading flag should be active")
	}

	// No concurrent submissions while loading.
	if err := s.Begin(); !errors.Is(err, ErrSubmissionInProgress) {
		t.Errorf("second Begin() error = %v, expected ErrSubmissionInProgress", err)
	}

	report := &analyze.Report{Text: "analysis text"}
	s.Finish(report)

	if s.Step != StepAnalysis {
		t.Errorf("Step = %v, expected StepAnalysis", s.Step)
	}
	if s.Loading || s.Err != "" {
		t.Error("after Finish() only the result should be active")
	}
	if s.Result != report {
		t.Error("Finish() did not store the report")
	}
}

func TestSubmissionFailure(t *testing.T) {
	s := symptomsStepSession(t)
	_ = s.EditSymptom(0, "headache")

	if err := s.Begin(); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	s.Fail("bad input")

	if s.Step != StepSymptoms {
		t.Errorf("Step = %v, failed submission must stay on symptoms", s.Step)
	}
	if s.Loading || s.Result != nil {
		t.Error("after Fail() only the error should be active")
	}
	if s.Err != "bad input" {
		t.Errorf("Err = %q, expected provider error text", s.Err)
	}

	// A retry clears the prior error.
	if err := s.Begin(); err != nil {
		t.Fatalf("Begin() after failure error = %v", err)
	}
	if s.Err != "" {
		t.Error("Begin() should clear the previous error")
	}
}

func TestFail_GenericMessage(t *testing.T) {
	s := symptomsStepSession(t)
	_ = s.EditSymptom(0, "headache")
	_ = s.Begin()

	s.Fail("")
	if s.Err == "" {
		t.Error("Fail with empty message should produce a generic error")
	}
}

func TestBegin_Gating(t *testing.T) {
	s := completedPatientSession()
	if err := s.Begin(); !errors.Is(err, ErrSubmitRequired) {
		t.Errorf("Begin() on patient step error = %v", err)
	}

	s = symptomsStepSession(t)
	if err := s.Begin(); !errors.Is(err, ErrSymptomRequired) {
		t.Errorf("Begin() without symptoms error = %v", err)
	}
}

func TestRetreat(t *testing.T) {
	s := NewSession()
	if err := s.Retreat(); !errors.Is(err, ErrAtFirstStep) {
		t.Errorf("Retreat() at first step error = %v", err)
	}

	s = symptomsStepSession(t)
	if err := s.Retreat(); err != nil {
		t.Fatalf("Retreat() error = %v", err)
	}
	if s.Step != StepPatient {
		t.Errorf("Step = %v, expected StepPatient", s.Step)
	}
}

func TestRetreat_FromAnalysisClearsResult(t *testing.T) {
	s := symptomsStepSession(t)
	_ = s.EditSymptom(0, "headache")
	_ = s.Begin()
	s.Finish(&analyze.Report{Text: "first result"})

	if err := s.Retreat(); err != nil {
		t.Fatalf("Retreat() error = %v", err)
	}
	if s.Step != StepSymptoms {
		t.Errorf("Step = %v, expected StepSymptoms", s.Step)
	}
	if s.Result != nil {
		t.Error("retreating from analysis must clear the result")
	}
	if s.Err != "" {
		t.Error("retreating from analysis must clear the error")
	}

	// Re-advancing requires a fresh submission, not the prior result.
	if err := s.Advance(); !errors.Is(err, ErrSubmitRequired) {
		t.Errorf("Advance() after retreat error = %v, expected ErrSubmitRequired", err)
	}
}

func TestPatientInfo_ToPatient(t *testing.T) {
	info := PatientInfo{
		Age:            " 42 ",
		Gender:         GenderOther,
		MedicalHistory: " asthma ",
	}

	patient := info.ToPatient()
	want := analyze.Patient{Age: "42", Gender: "other", MedicalHistory: "asthma"}
	if diff := cmp.Diff(want, patient); diff != "" {
		t.Errorf("ToPatient() mismatch (-want +got):\n%s", diff)
	}
}

func TestStep_String(t *testing.T) {
	tests := []struct {
		step     Step
		expected string
	}{
		{StepPatient, "patient"},
		{StepSymptoms, "symptoms"},
		{StepAnalysis, "analysis"},
		{Step(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.step.String(); got != tt.expected {
			t.Errorf("Step(%d).String() = %q, expected %q", tt.step, got, tt.expected)
		}
	}
}
