package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/growthmesh/refgraph/pkg/config"
	"github.com/growthmesh/refgraph/pkg/types"
)

// BreakerSource wraps a Source with circuit breaking so a failing
// upstream stops being hammered by every analysis request.
type BreakerSource struct {
	source Source
	cb     *gobreaker.CircuitBreaker
}

// NewBreakerSource creates a circuit-breaking wrapper around source.
func NewBreakerSource(source Source, cfg config.CircuitBreakerConfig, logger *slog.Logger) *BreakerSource {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        "snapshot-source",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("snapshot source circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerSource{
		source: source,
		cb:     gobreaker.NewCircuitBreaker(st),
	}
}

// Fetch implements Source.
func (b *BreakerSource) Fetch(ctx context.Context) (*types.Snapshot, error) {
	snap, err := b.cb.Execute(func() (interface{}, error) {
		return b.source.Fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return snap.(*types.Snapshot), nil
}

// Close implements Source.
func (b *BreakerSource) Close(ctx context.Context) error {
	return b.source.Close(ctx)
}
