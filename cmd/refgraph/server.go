package refgraph

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/growthmesh/refgraph/pkg/config"
	"github.com/growthmesh/refgraph/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the refgraph HTTP server",
	Long: `Start the refgraph HTTP server to provide REST API access to the
referral network analysis pipeline.

The server provides endpoints for:
- Running analyses on inline or sourced snapshots
- Fetching and evicting cached analysis payloads
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Source flags
	serverCmd.Flags().String("source-driver", "file", "Snapshot source driver (file, neo4j)")
	serverCmd.Flags().String("snapshot-path", "", "Path to the snapshot JSON file (file driver)")
	serverCmd.Flags().String("neo4j-uri", "", "Neo4j URI (neo4j driver)")
	serverCmd.Flags().String("neo4j-username", "", "Neo4j username")
	serverCmd.Flags().String("neo4j-password", "", "Neo4j password")
	serverCmd.Flags().String("neo4j-database", "", "Neo4j database name")

	// Store flags
	serverCmd.Flags().String("store-path", "", "Directory for the payload cache")
	serverCmd.Flags().Bool("store-disabled", false, "Disable the payload cache")

	// Narrator flags
	serverCmd.Flags().String("narrator-api-key", "", "API key for the narrative summary model")
	serverCmd.Flags().String("narrator-model", "", "Model for the narrative summary")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for error telemetry")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	// Validate configuration
	if err := validateServerConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, flushTelemetry := newLogger(cfg)
	defer flushTelemetry()

	// Wire the snapshot source, the payload cache and the analyzer
	src, err := newSource(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot source: %w", err)
	}
	defer src.Close(context.Background())

	st, err := newStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open payload store: %w", err)
	}
	if st != nil {
		defer st.Close()
	}

	analyzer, err := newAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	// Create and setup server
	srv := server.New(cfg, analyzer, src, st, logger)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		logger.Info("server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Source flags
	if cmd.Flags().Changed("source-driver") {
		cfg.Source.Driver, _ = cmd.Flags().GetString("source-driver")
	}
	if cmd.Flags().Changed("snapshot-path") {
		cfg.Source.Path, _ = cmd.Flags().GetString("snapshot-path")
	}
	if cmd.Flags().Changed("neo4j-uri") {
		cfg.Source.URI, _ = cmd.Flags().GetString("neo4j-uri")
	}
	if cmd.Flags().Changed("neo4j-username") {
		cfg.Source.Username, _ = cmd.Flags().GetString("neo4j-username")
	}
	if cmd.Flags().Changed("neo4j-password") {
		cfg.Source.Password, _ = cmd.Flags().GetString("neo4j-password")
	}
	if cmd.Flags().Changed("neo4j-database") {
		cfg.Source.Database, _ = cmd.Flags().GetString("neo4j-database")
	}

	// Store flags
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	}
	if cmd.Flags().Changed("store-disabled") {
		disabled, _ := cmd.Flags().GetBool("store-disabled")
		cfg.Store.Enabled = !disabled
	}

	// Narrator flags
	if cmd.Flags().Changed("narrator-api-key") {
		cfg.Narrator.APIKey, _ = cmd.Flags().GetString("narrator-api-key")
		cfg.Narrator.Enabled = true
	}
	if cmd.Flags().Changed("narrator-model") {
		cfg.Narrator.Model, _ = cmd.Flags().GetString("narrator-model")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}

func validateServerConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}

	switch cfg.Source.Driver {
	case "file":
		if cfg.Source.Path == "" {
			return fmt.Errorf("snapshot path is required for the file driver")
		}
	case "neo4j":
		if cfg.Source.URI == "" {
			return fmt.Errorf("neo4j URI is required for the neo4j driver")
		}
	default:
		return fmt.Errorf("unsupported source driver: %s", cfg.Source.Driver)
	}

	if cfg.Store.Enabled && !cfg.Store.InMemory && cfg.Store.Path == "" {
		return fmt.Errorf("store path is required when the payload cache is enabled")
	}
	return nil
}
