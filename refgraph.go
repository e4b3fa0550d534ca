package refgraph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/growthmesh/refgraph/pkg/graph"
	"github.com/growthmesh/refgraph/pkg/insights"
	"github.com/growthmesh/refgraph/pkg/llm"
	"github.com/growthmesh/refgraph/pkg/types"
)

var (
	// ErrNilSnapshot is returned when Analyze receives no snapshot.
	ErrNilSnapshot = errors.New("nil snapshot")
)

// Analyzer produces an analytics payload from one snapshot.
type Analyzer interface {
	Analyze(ctx context.Context, snapshot *types.Snapshot) (*types.AnalysisPayload, error)
}

// Config holds configuration for the analysis client.
type Config struct {
	// Timeout bounds one Analyze call. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
	// Narrator, when set, appends an LLM-written narrative summary to
	// the insight list.
	Narrator llm.Client
}

// Client is the main implementation of the Analyzer interface.
type Client struct {
	builder      *graph.Builder
	orchestrator *insights.Orchestrator
	config       *Config
	logger       *slog.Logger
}

// NewClient creates an analysis client. A nil config uses defaults; a
// nil logger falls back to slog.Default.
func NewClient(config *Config, logger *slog.Logger) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	var opts []insights.Option
	if config.Narrator != nil {
		opts = append(opts, insights.WithNarrator(config.Narrator))
	}

	return &Client{
		builder:      graph.NewBuilder(logger),
		orchestrator: insights.NewOrchestrator(logger, opts...),
		config:       config,
		logger:       logger,
	}, nil
}
