package graph

import (
	"log/slog"

	"github.com/growthmesh/refgraph/pkg/types"
)

// Builder converts the two flat row sets of a snapshot into a node/edge
// graph. Missing references (unknown referrer, unknown creator) never
// fail the build; they simply produce no edge.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a new graph builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Build assembles a fresh graph from the snapshot rows. User nodes are
// keyed by email, so two accounts sharing an email collapse into one
// node; the collision is logged and the first row wins.
func (b *Builder) Build(contacts []types.ContactRow, users []types.UserRow) *types.Graph {
	g := types.NewGraph()

	for _, row := range users {
		node := types.NewUserNode(row)
		stored := g.AddNode(node)
		if stored != node {
			b.logger.Warn("duplicate user email collapses into one node",
				"email", row.Email, "kept_user_id", stored.ID, "dropped_row_id", row.ID)
		}
	}

	// Referral edges require both endpoints to exist already, so they
	// are wired in a second pass over the user rows.
	for _, row := range users {
		if row.ReferredBy == "" {
			continue
		}
		referred := g.UserByEmail(row.Email)
		referrer := g.UserByEmail(row.ReferredBy)
		if referred == nil || referrer == nil {
			continue
		}
		g.AddEdge(types.NewReferralEdge(referrer.ID, referred.ID, row.CreatedAt))
		referrer.Connections++
	}

	for _, row := range contacts {
		contact := g.AddNode(types.NewContactNode(row))
		if row.AddedBy == "" {
			continue
		}
		creator := g.UserByEmail(row.AddedBy)
		if creator == nil {
			// Orphan contacts stay in the graph as isolated nodes.
			continue
		}
		creator.ContactsAdded = append(creator.ContactsAdded, contact.ID)
		creator.Connections++
		g.AddEdge(types.NewCreatedContactEdge(creator.ID, contact.ID, row.ContactCreatedAt))
	}

	return g
}
