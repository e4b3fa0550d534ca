package refgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/growthmesh/refgraph/pkg/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and print the payload",
	Long: `Run the full analysis pipeline once against the configured snapshot
source and print the resulting payload as JSON on stdout.`,
	RunE: runAnalyze,
}

var (
	analyzeSnapshotPath string
	analyzeOutputPath   string
	analyzeCompact      bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSnapshotPath, "snapshot", "", "Path to the snapshot JSON file (overrides config)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputPath, "output", "o", "", "Write the payload to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeCompact, "compact", false, "Print compact JSON without indentation")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if analyzeSnapshotPath != "" {
		cfg.Source.Driver = "file"
		cfg.Source.Path = analyzeSnapshotPath
	}

	logger, flushTelemetry := newLogger(cfg)
	defer flushTelemetry()

	src, err := newSource(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot source: %w", err)
	}
	defer src.Close(context.Background())

	analyzer, err := newAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	snapshot, err := src.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	payload, err := analyzer.Analyze(cmd.Context(), snapshot)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var raw []byte
	if analyzeCompact {
		raw, err = json.Marshal(payload)
	} else {
		raw, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	if analyzeOutputPath != "" {
		if err := os.WriteFile(analyzeOutputPath, raw, 0644); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
		logger.Info("payload written", "path", analyzeOutputPath)
		return nil
	}

	fmt.Println(string(raw))
	return nil
}
