package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/denizgun/symtriage/internal/analyze"
)

var watchDebounce time.Duration

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Watch an intake file and re-run analysis on change",
		Long: `Monitor a JSON intake file and re-run the analysis whenever it changes.

Useful while iterating on a saved intake: edit the file in one terminal
and watch the report refresh in another. Press Ctrl+C to stop watching.

Examples:
  symtriage watch intake.json
  symtriage watch --output markdown intake.json`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "minimum delay between re-runs")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	cfg := GetGlobalConfig()
	engine, closeProvider, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	watcher, err := createWatcher(filename)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	// Analyze the current contents before waiting for changes.
	if err := analyzeIntakeFile(engine, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return runWatchLoop(watcher, engine, filename)
}

// runWatchLoop runs the main watch loop with signal handling
func runWatchLoop(watcher *fsnotify.Watcher, engine *analyze.Engine, filename string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	var lastRun time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			// Editors fire several write events per save.
			if time.Since(lastRun) < watchDebounce {
				continue
			}
			lastRun = time.Now()

			if err := analyzeIntakeFile(engine, filename); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// analyzeIntakeFile loads the intake file, runs the analysis, and prints
// the formatted report.
func analyzeIntakeFile(engine *analyze.Engine, filename string) error {
	intake, err := loadIntakeFile(filename)
	if err != nil {
		return err
	}
	if !hasNonBlank(intake.Symptoms) {
		return fmt.Errorf("intake file has no symptoms yet")
	}

	timeout := analyzeTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	diagnosis, err := engine.Analyze(ctx, intake.Symptoms, intake.PatientInfo)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("--- %s ---\n", time.Now().Format("15:04:05"))
	return writeDiagnosis(diagnosis)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
