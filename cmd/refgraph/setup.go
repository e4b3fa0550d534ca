package refgraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/growthmesh/refgraph"
	"github.com/growthmesh/refgraph/pkg/config"
	"github.com/growthmesh/refgraph/pkg/llm"
	refgraphLogger "github.com/growthmesh/refgraph/pkg/logger"
	"github.com/growthmesh/refgraph/pkg/source"
	"github.com/growthmesh/refgraph/pkg/store"
	"github.com/growthmesh/refgraph/pkg/telemetry"
)

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger. Terminal output goes through the
// color handler (or JSON when configured); when a telemetry path is set,
// error records are additionally mirrored into parquet files. The
// returned flush func writes any buffered telemetry and must run before
// exit.
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}

	var base slog.Handler
	if strings.EqualFold(cfg.Log.Format, "json") {
		base = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		base = refgraphLogger.NewColorHandler(os.Stderr, opts)
	}

	if cfg.Telemetry.ParquetPath == "" {
		return slog.New(base), func() {}
	}

	parquetHandler, err := telemetry.NewParquetHandler(base, cfg.Telemetry.ParquetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize error tracking: %v\n", err)
		return slog.New(base), func() {}
	}
	return slog.New(parquetHandler), func() { parquetHandler.Flush() }
}

// newSource builds the configured snapshot source, wrapped in a circuit
// breaker when one is enabled.
func newSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (source.Source, error) {
	var src source.Source
	switch cfg.Source.Driver {
	case "file":
		src = source.NewFileSource(cfg.Source.Path)
	case "neo4j":
		neo4jSrc, err := source.NewNeo4jSource(ctx, source.Neo4jConfig{
			URI:      cfg.Source.URI,
			Username: cfg.Source.Username,
			Password: cfg.Source.Password,
			Database: cfg.Source.Database,
		})
		if err != nil {
			return nil, fmt.Errorf("create neo4j source: %w", err)
		}
		src = neo4jSrc
	default:
		return nil, fmt.Errorf("unsupported source driver: %s", cfg.Source.Driver)
	}

	if cfg.CircuitBreaker.Enabled {
		src = source.NewBreakerSource(src, cfg.CircuitBreaker, logger)
	}
	return src, nil
}

// newStore opens the payload cache, or returns nil when it is disabled.
func newStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	if !cfg.Store.Enabled {
		return nil, nil
	}
	return store.New(store.Config{
		Path:     cfg.Store.Path,
		InMemory: cfg.Store.InMemory,
		TTL:      time.Duration(cfg.Store.TTL) * time.Second,
	}, logger)
}

// newNarrator builds the LLM narrator, or returns nil when it is
// disabled or has no API key.
func newNarrator(cfg *config.Config) llm.Client {
	if !cfg.Narrator.Enabled {
		return nil
	}
	llmCfg := llm.Config{
		APIKey:      cfg.Narrator.APIKey,
		BaseURL:     cfg.Narrator.BaseURL,
		Model:       cfg.Narrator.Model,
		Temperature: cfg.Narrator.Temperature,
	}
	if !llmCfg.Enabled() {
		return nil
	}
	return llm.NewOpenAIClient(llmCfg)
}

// newAnalyzer wires the analysis client from configuration.
func newAnalyzer(cfg *config.Config, logger *slog.Logger) (*refgraph.Client, error) {
	return refgraph.NewClient(&refgraph.Config{
		Timeout:  time.Duration(cfg.Analysis.Timeout) * time.Second,
		Narrator: newNarrator(cfg),
	}, logger)
}
