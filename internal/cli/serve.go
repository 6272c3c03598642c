package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/denizgun/symtriage/internal/server"
)

var (
	serveHost string
	servePort int
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		Long: `Start the HTTP server exposing symptom analysis as a JSON API.

Endpoints:
  POST /api/analyze  run an analysis for submitted symptoms
  GET  /api/health   liveness probe

The server validates requests against its API schema and sanitizes all
free-text input. Press Ctrl+C to stop.

Examples:
  symtriage serve
  symtriage serve --port 8080
  symtriage serve --host 0.0.0.0 --port 5000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "bind address (default from config)")
	cmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	serverConfig := cfg.Server
	if serveHost != "" {
		serverConfig.Host = serveHost
	}
	if servePort != 0 {
		serverConfig.Port = servePort
	}

	engine, closeProvider, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	srv, err := server.New(serverConfig, engine, server.WithLogger(GetLogger("server")))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Listening on http://%s\n", serverConfig.Addr())
	return srv.ListenAndServe(ctx)
}
