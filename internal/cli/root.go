// Package cli wires the symtriage commands: the interactive intake wizard,
// a one-shot analyze command, the HTTP server, and a file watcher.
package cli

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/denizgun/symtriage/internal/config"
	"github.com/denizgun/symtriage/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	outputFmt string
)

var (
	globalConfig     *config.Config
	globalConfigOnce sync.Once
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "symtriage",
		Short: "Preliminary symptom analysis from the terminal",
		Long: `SymTriage collects patient details and symptoms through a guided intake,
runs an AI-backed preliminary analysis, and renders a structured report
with lifestyle recommendations.

It ships an interactive wizard, a one-shot analyze command for scripted
use, and an HTTP server exposing the same analysis over a JSON API.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (terminal, json, markdown)")

	// Add subcommands
	rootCmd.AddCommand(newIntakeCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Printf("SymTriage %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig loads the configuration once and reuses it across
// commands. Load failures fall back to defaults.
func GetGlobalConfig() *config.Config {
	globalConfigOnce.Do(func() {
		loader := config.NewLoader()
		cfg, err := loader.LoadConfig(cfgFile)
		if err != nil {
			cfg = config.DefaultConfig()
		}
		globalConfig = cfg
	})
	return globalConfig
}

// GetLogger returns a component logger gated on the verbose flag.
func GetLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

func useColor() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return true
	}
}
