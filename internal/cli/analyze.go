package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/formatter"
)

var (
	analyzeSymptoms   []string
	analyzeAge        string
	analyzeGender     string
	analyzeHistory    string
	analyzeFile       string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a one-shot analysis without the wizard",
		Long: `Analyze symptoms non-interactively and print the report.

Symptoms come from repeated --symptom flags or from a JSON intake file
with the same shape the API accepts:

  {"symptoms": ["headache", "fever"],
   "patient_info": {"age": "34", "gender": "female", "medical_history": "diabetes"}}

Examples:
  symtriage analyze --symptom "headache" --symptom "fever" --age 34 --gender female
  symtriage analyze --file intake.json --output json
  symtriage analyze --file intake.json --output markdown > report.md`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().StringArrayVarP(&analyzeSymptoms, "symptom", "s", nil, "symptom description (repeatable)")
	cmd.Flags().StringVar(&analyzeAge, "age", "", "patient age")
	cmd.Flags().StringVar(&analyzeGender, "gender", "", "patient gender (male, female, other)")
	cmd.Flags().StringVar(&analyzeHistory, "history", "", "free-text medical history")
	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "JSON intake file")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 90*time.Second, "analysis timeout")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

// intakeFile mirrors the analyze API request body so saved intakes can be
// replayed from the command line.
type intakeFile struct {
	Symptoms    []string        `json:"symptoms"`
	PatientInfo analyze.Patient `json:"patient_info"`
}

func loadIntakeFile(path string) (*intakeFile, error) {
	// #nosec G304 - path comes from an explicit user flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file: %w", err)
	}

	var intake intakeFile
	if err := json.Unmarshal(data, &intake); err != nil {
		return nil, fmt.Errorf("failed to parse intake file: %w", err)
	}
	return &intake, nil
}

// collectIntake merges the intake file and flags. Flags win over file
// values for patient fields; symptom flags are appended.
func collectIntake() (*intakeFile, error) {
	intake := &intakeFile{}

	if analyzeFile != "" {
		loaded, err := loadIntakeFile(analyzeFile)
		if err != nil {
			return nil, err
		}
		intake = loaded
	}

	intake.Symptoms = append(intake.Symptoms, analyzeSymptoms...)
	if analyzeAge != "" {
		intake.PatientInfo.Age = analyzeAge
	}
	if analyzeGender != "" {
		intake.PatientInfo.Gender = analyzeGender
	}
	if analyzeHistory != "" {
		intake.PatientInfo.MedicalHistory = analyzeHistory
	}

	if !hasNonBlank(intake.Symptoms) {
		return nil, fmt.Errorf("at least one symptom is required (use --symptom or --file)")
	}
	return intake, nil
}

func hasNonBlank(symptoms []string) bool {
	for _, s := range symptoms {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	color.NoColor = !useColor() || color.NoColor

	intake, err := collectIntake()
	if err != nil {
		return err
	}

	cfg := GetGlobalConfig()
	engine, closeProvider, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	var s *spinner.Spinner
	if cfg.Output.ShowProgress {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
		s.Writer = os.Stderr
		s.Suffix = " Analyzing symptoms..."
		s.Start()
	}

	diagnosis, err := engine.Analyze(ctx, intake.Symptoms, intake.PatientInfo)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		printError(fmt.Sprintf("Analysis failed: %v", err))
		return err
	}
	printSuccess(fmt.Sprintf("Analyzed %d symptom(s)", len(diagnosis.SymptomsAnalyzed)))

	return writeDiagnosis(diagnosis)
}

func writeDiagnosis(diagnosis *analyze.Diagnosis) error {
	f, err := formatter.New(getOutputFormat(), useColor())
	if err != nil {
		return err
	}

	output, err := f.Format(diagnosis)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := os.WriteFile(analyzeOutputFile, output, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		printSuccess(fmt.Sprintf("Report saved to %s", analyzeOutputFile))
		return nil
	}

	fmt.Println(string(output))
	return nil
}

func printSuccess(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(os.Stderr, "✓ %s\n", msg)
}

func printError(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintf(os.Stderr, "✗ %s\n", msg)
}
