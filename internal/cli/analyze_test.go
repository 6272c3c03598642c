package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/denizgun/symtriage/internal/analyze"
)

func resetAnalyzeFlags() {
	analyzeSymptoms = nil
	analyzeAge = ""
	analyzeGender = ""
	analyzeHistory = ""
	analyzeFile = ""
}

func TestLoadIntakeFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "intake.json")

	content := `{
  "symptoms": ["headache", "fever"],
  "patient_info": {"age": "34", "gender": "female", "medical_history": "diabetes"}
}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write intake file: %v", err)
	}

	intake, err := loadIntakeFile(path)
	if err != nil {
		t.Fatalf("loadIntakeFile failed: %v", err)
	}

	want := &intakeFile{
		Symptoms: []string{"headache", "fever"},
		PatientInfo: analyze.Patient{
			Age:            "34",
			Gender:         "female",
			MedicalHistory: "diabetes",
		},
	}
	if diff := cmp.Diff(want, intake); diff != "" {
		t.Errorf("Intake mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIntakeFileErrors(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := loadIntakeFile(filepath.Join(tempDir, "missing.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(tempDir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := loadIntakeFile(path); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})
}

func TestCollectIntakeFlagsOnly(t *testing.T) {
	resetAnalyzeFlags()
	analyzeSymptoms = []string{"cough"}
	analyzeAge = "60"
	analyzeGender = "male"

	intake, err := collectIntake()
	if err != nil {
		t.Fatalf("collectIntake failed: %v", err)
	}
	if len(intake.Symptoms) != 1 || intake.Symptoms[0] != "cough" {
		t.Errorf("Unexpected symptoms: %v", intake.Symptoms)
	}
	if intake.PatientInfo.Age != "60" {
		t.Errorf("Unexpected age: %s", intake.PatientInfo.Age)
	}
}

func TestCollectIntakeFlagsOverrideFile(t *testing.T) {
	resetAnalyzeFlags()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "intake.json")
	content := `{"symptoms": ["fever"], "patient_info": {"age": "34", "gender": "female"}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write intake file: %v", err)
	}

	analyzeFile = path
	analyzeSymptoms = []string{"rash"}
	analyzeAge = "35"

	intake, err := collectIntake()
	if err != nil {
		t.Fatalf("collectIntake failed: %v", err)
	}

	if diff := cmp.Diff([]string{"fever", "rash"}, intake.Symptoms); diff != "" {
		t.Errorf("Symptoms mismatch (-want +got):\n%s", diff)
	}
	if intake.PatientInfo.Age != "35" {
		t.Errorf("Flag should override file age, got %s", intake.PatientInfo.Age)
	}
	if intake.PatientInfo.Gender != "female" {
		t.Errorf("Unset flag should keep file gender, got %s", intake.PatientInfo.Gender)
	}
}

func TestCollectIntakeRequiresSymptoms(t *testing.T) {
	resetAnalyzeFlags()
	analyzeAge = "34"

	if _, err := collectIntake(); err == nil {
		t.Error("Expected error without symptoms")
	}

	resetAnalyzeFlags()
	analyzeSymptoms = []string{"   "}
	if _, err := collectIntake(); err == nil {
		t.Error("Expected error for blank symptoms")
	}
}

func TestHasNonBlank(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		want     bool
	}{
		{"nil", nil, false},
		{"empty", []string{}, false},
		{"blank entries", []string{"", "  ", "\t"}, false},
		{"one real entry", []string{"", "fever"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasNonBlank(tt.symptoms); got != tt.want {
				t.Errorf("hasNonBlank(%v) = %v, want %v", tt.symptoms, got, tt.want)
			}
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.0.0", "abc123", "2026-01-01")

	if cmd.Use != "symtriage" {
		t.Errorf("Unexpected root command name: %s", cmd.Use)
	}

	expected := []string{"intake", "analyze", "serve", "watch", "config", "version"}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing subcommand %q", name)
		}
	}
}

func TestValidateWatchFilePath(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "intake.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid file", path, false},
		{"empty path", "", true},
		{"path traversal", "../../etc/passwd", true},
		{"directory", tempDir, true},
		{"missing file", filepath.Join(tempDir, "nope.json"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateWatchFilePath(tt.path)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error for %q", tt.path)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error for %q: %v", tt.path, err)
			}
		})
	}
}
