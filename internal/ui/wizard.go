// Package ui implements the interactive intake wizard. All gating and
// submission state lives in intake.Session; the wizard only dispatches
// transitions and renders the current step.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/intake"
)

const totalSteps = 3

// Wizard is the top-level TUI model.
type Wizard struct {
	session  *intake.Session
	analyzer Analyzer

	// Patient step form and its bound values. The form is rebuilt each
	// time the step is entered because a completed huh form cannot be
	// reused.
	form    *huh.Form
	age     string
	gender  string
	history string

	// Symptom step editors, kept index-aligned with session.Symptoms.
	inputs  []textinput.Model
	focused int

	spin   spinner.Model
	status string

	width    int
	height   int
	quitting bool
}

// NewWizard creates a wizard backed by the given analyzer.
func NewWizard(analyzer Analyzer) *Wizard {
	w := &Wizard{
		session:  intake.NewSession(),
		analyzer: analyzer,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	w.buildPatientForm()
	w.syncInputs()
	return w
}

// Run starts the wizard and blocks until it exits.
func Run(analyzer Analyzer) error {
	p := tea.NewProgram(NewWizard(analyzer), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			w.quitting = true
			return w, tea.Quit
		}

	case spinner.TickMsg:
		if w.session.Loading {
			var cmd tea.Cmd
			w.spin, cmd = w.spin.Update(msg)
			return w, cmd
		}
		return w, nil

	case analysisCompleteMsg:
		w.session.Finish(msg.report)
		return w, nil

	case analysisErrorMsg:
		w.session.Fail(failureMessage(msg.err))
		return w, nil
	}

	switch w.session.Step {
	case intake.StepPatient:
		return w.updatePatient(msg)
	case intake.StepSymptoms:
		return w.updateSymptoms(msg)
	default:
		return w.updateAnalysis(msg)
	}
}

// View implements tea.Model.
func (w *Wizard) View() string {
	if w.quitting {
		return "Take care! 👋\n"
	}

	var body string
	switch w.session.Step {
	case intake.StepPatient:
		body = w.viewPatient()
	case intake.StepSymptoms:
		body = w.viewSymptoms()
	default:
		body = w.viewAnalysis()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("SymTriage"),
		stepStyle.Render(w.stepIndicator()),
		"",
		body,
	)
}

func (w *Wizard) stepIndicator() string {
	return fmt.Sprintf("Step %d of %d: %s", int(w.session.Step)+1, totalSteps, w.session.Step)
}

// --- patient step ---

func (w *Wizard) buildPatientForm() {
	w.age = w.session.Patient.Age
	w.gender = string(w.session.Patient.Gender)
	w.history = w.session.Patient.MedicalHistory

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("age").
				Title("Age").
				Value(&w.age).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return intake.ErrAgeRequired
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("gender").
				Title("Gender").
				Options(
					huh.NewOption("Male", string(intake.GenderMale)),
					huh.NewOption("Female", string(intake.GenderFemale)),
					huh.NewOption("Other", string(intake.GenderOther)),
				).
				Value(&w.gender),

			huh.NewText().
				Key("history").
				Title("Medical History").
				Description("Known conditions, medications, prior events. Optional.").
				Value(&w.history),
		),
	).WithShowHelp(false).WithShowErrors(true)
}

func (w *Wizard) updatePatient(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.session.SetAge(w.age)
		w.session.SetGender(intake.Gender(w.gender))
		w.session.SetMedicalHistory(w.history)

		if err := w.session.Advance(); err != nil {
			w.status = err.Error()
			w.buildPatientForm()
			return w, w.form.Init()
		}
		w.status = ""
		w.syncInputs()
		return w, textinput.Blink
	}

	return w, cmd
}

func (w *Wizard) viewPatient() string {
	parts := []string{w.form.View()}
	if w.status != "" {
		parts = append(parts, errorStyle.Render(w.status))
	}
	parts = append(parts, hintStyle.Render("Tab: Next field | Enter: Continue | Ctrl+C: Quit"))
	return strings.Join(parts, "\n")
}

// --- symptoms step ---

// syncInputs rebuilds the text inputs from session state, preserving focus
// where possible.
func (w *Wizard) syncInputs() {
	inputs := make([]textinput.Model, len(w.session.Symptoms))
	for i, symptom := range w.session.Symptoms {
		ti := textinput.New()
		ti.Placeholder = "e.g. persistent cough"
		ti.CharLimit = 200
		ti.SetValue(symptom)
		inputs[i] = ti
	}

	if w.focused >= len(inputs) {
		w.focused = len(inputs) - 1
	}
	if w.focused < 0 {
		w.focused = 0
	}
	inputs[w.focused].Focus()
	w.inputs = inputs
}

func (w *Wizard) updateSymptoms(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.session.Loading {
		return w, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			if err := w.session.Retreat(); err == nil {
				w.status = ""
				w.buildPatientForm()
				return w, w.form.Init()
			}
			return w, nil

		case "ctrl+n":
			w.session.AddSymptom()
			w.focused = len(w.session.Symptoms) - 1
			w.syncInputs()
			return w, textinput.Blink

		case "ctrl+d":
			if err := w.session.RemoveSymptom(w.focused); err != nil {
				w.status = err.Error()
				return w, nil
			}
			w.status = ""
			w.syncInputs()
			return w, textinput.Blink

		case "tab", "down":
			w.moveFocus(1)
			return w, textinput.Blink

		case "shift+tab", "up":
			w.moveFocus(-1)
			return w, textinput.Blink

		case "enter":
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	w.inputs[w.focused], cmd = w.inputs[w.focused].Update(msg)
	_ = w.session.EditSymptom(w.focused, w.inputs[w.focused].Value())
	return w, cmd
}

func (w *Wizard) moveFocus(delta int) {
	w.inputs[w.focused].Blur()
	w.focused = (w.focused + delta + len(w.inputs)) % len(w.inputs)
	w.inputs[w.focused].Focus()
}

func (w *Wizard) submit() tea.Cmd {
	if err := w.session.Begin(); err != nil {
		w.status = err.Error()
		return nil
	}
	w.status = ""

	return tea.Batch(
		w.spin.Tick,
		CreateAnalysisCommand(w.analyzer, w.session.NonBlankSymptoms(), w.session.Patient.ToPatient()),
	)
}

func (w *Wizard) viewSymptoms() string {
	var b strings.Builder

	b.WriteString("Describe your symptoms, one per line.\n\n")
	for i, input := range w.inputs {
		marker := "  "
		if i == w.focused {
			marker = focusedStyle.Render("> ")
		}
		b.WriteString(marker + input.View() + "\n")
	}

	if w.session.Loading {
		b.WriteString("\n" + w.spin.View() + " Analyzing symptoms...\n")
	}
	if w.session.Err != "" {
		b.WriteString("\n" + errorStyle.Render(w.session.Err) + "\n")
	}
	if w.status != "" {
		b.WriteString("\n" + errorStyle.Render(w.status) + "\n")
	}

	b.WriteString("\n" + hintStyle.Render(
		"Enter: Analyze | Ctrl+N: Add | Ctrl+D: Remove | Tab: Next | Esc: Back"))
	return b.String()
}

// --- analysis step ---

func (w *Wizard) updateAnalysis(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "left":
			if err := w.session.Retreat(); err == nil {
				w.syncInputs()
				return w, textinput.Blink
			}
		case "q":
			w.quitting = true
			return w, tea.Quit
		}
	}
	return w, nil
}

func (w *Wizard) viewAnalysis() string {
	var b strings.Builder
	b.WriteString(analyze.Render(w.session.Result))
	b.WriteString("\n\n" + hintStyle.Render("Esc: Back to symptoms | q: Quit"))
	return b.String()
}
