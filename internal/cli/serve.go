package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ecazzaniga/fnolwatch/internal/adapters/otel"
	"github.com/ecazzaniga/fnolwatch/internal/api"
	"github.com/ecazzaniga/fnolwatch/internal/infrastructure/config"
	"github.com/ecazzaniga/fnolwatch/internal/query"
	"github.com/ecazzaniga/fnolwatch/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the local web dashboard server.

Examples:
  fnolwatch serve                                      # Default port 8080
  fnolwatch serve --port 3000                          # Custom port
  fnolwatch serve --api-url http://fnol-api:8000       # Custom backend`,
	RunE: runServe,
}

var (
	servePort   int
	serveAPIURL string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides FNOLWATCH_PORT)")
	serveCmd.Flags().StringVar(&serveAPIURL, "api-url", "", "FNOL backend base URL (overrides FNOLWATCH_API_URL)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDashboard()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if serveAPIURL != "" {
		cfg.Backend.URL = serveAPIURL
	}

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	var recorder query.Recorder = query.NopRecorder{}
	if otelCfg := otel.LoadConfig(); otelCfg.Enabled {
		exporter, err := otel.NewExporter(ctx, otelCfg)
		if err != nil {
			// Missing telemetry never blocks the dashboard.
			log.Printf("otel exporter disabled: %v", err)
		} else {
			defer exporter.Close(context.Background())
			recorder = exporter
		}
	}

	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	cache := query.New(query.Options{
		StaleAfter: cfg.StaleAfter,
		Recorder:   recorder,
	})
	defer cache.Close()

	server := web.NewServer(web.Config{
		Port:         cfg.Port,
		PageSize:     cfg.PageSize,
		PollInterval: cfg.PollInterval,
	}, client, cache)
	return server.Start(ctx)
}
