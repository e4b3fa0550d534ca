// Package source fetches analysis snapshots from external collaborators.
// The analysis core never writes through a source; it only consumes the
// user and contact row sets a source returns.
package source

import (
	"context"
	"errors"

	"github.com/growthmesh/refgraph/pkg/types"
)

var (
	// ErrSnapshotUnavailable is returned when a source cannot produce a
	// snapshot.
	ErrSnapshotUnavailable = errors.New("snapshot unavailable")
)

// Source produces the row snapshot one analysis runs against.
type Source interface {
	// Fetch returns the current users and contacts.
	Fetch(ctx context.Context) (*types.Snapshot, error)

	// Close releases any held connections.
	Close(ctx context.Context) error
}
