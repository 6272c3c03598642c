package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/client"
	"github.com/denizgun/symtriage/internal/config"
	"github.com/denizgun/symtriage/internal/ui"
)

var (
	intakeServerURL string
	intakeOffline   bool
)

func newIntakeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Run the interactive intake wizard",
		Long: `Start the guided intake: patient details, then symptoms, then analysis.

By default the wizard submits to a symtriage server (see the serve command).
With --offline it runs the analysis in-process against the configured AI
provider instead.

Examples:
  symtriage intake
  symtriage intake --server http://localhost:5000
  symtriage intake --offline`,
		Args: cobra.NoArgs,
		RunE: runIntake,
	}

	cmd.Flags().StringVar(&intakeServerURL, "server", "", "analysis server URL (default from config)")
	cmd.Flags().BoolVar(&intakeOffline, "offline", false, "run analysis in-process instead of calling a server")

	return cmd
}

func runIntake(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if intakeOffline {
		engine, closeProvider, err := buildEngine(cfg)
		if err != nil {
			return err
		}
		defer closeProvider()
		return ui.Run(&engineAnalyzer{engine: engine})
	}

	serverURL := intakeServerURL
	if serverURL == "" {
		serverURL = cfg.Client.ServerURL
	}

	c, err := client.New(serverURL,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithLogger(GetLogger("client")),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis client: %w", err)
	}

	probeCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if _, err := c.Health(probeCtx); err != nil {
		return fmt.Errorf("analysis server at %s is not reachable (start one with 'symtriage serve', or use --offline): %w", serverURL, err)
	}

	return ui.Run(c)
}

// buildEngine constructs the analysis engine from the configured provider.
// The returned func releases the provider.
func buildEngine(cfg *config.Config) (*analyze.Engine, func(), error) {
	provider, err := createProvider(&cfg.AI)
	if err != nil {
		return nil, nil, err
	}

	engine := analyze.NewEngine(provider, nil)
	engine.SetLogger(GetLogger("analyze"))

	closeProvider := func() {
		if err := provider.Close(); err != nil && isVerbose() {
			fmt.Printf("Warning: failed to close provider: %v\n", err)
		}
	}
	return engine, closeProvider, nil
}

// engineAnalyzer adapts the in-process engine to the wizard's analyzer
// interface, flattening the diagnosis into the report form the wizard
// renders.
type engineAnalyzer struct {
	engine *analyze.Engine
}

func (a *engineAnalyzer) Analyze(ctx context.Context, symptoms []string, patient analyze.Patient) (*analyze.Report, error) {
	diagnosis, err := a.engine.Analyze(ctx, symptoms, patient)
	if err != nil {
		return nil, err
	}
	return &analyze.Report{
		Text:            diagnosis.Analysis,
		Recommendations: diagnosis.Recommendations,
	}, nil
}
