package types

import (
	"fmt"
	"time"
)

// EdgeType represents the variant of a network edge.
type EdgeType string

const (
	// ReferralEdgeType means "user A caused user B to join".
	ReferralEdgeType EdgeType = "referral"
	// CreatedContactEdgeType means "user A authored contact B's record".
	CreatedContactEdgeType EdgeType = "created_contact"
)

// Edge is a directed relationship between two nodes. Edges are never
// removed or deduplicated: duplicate referral rows in the snapshot
// produce duplicate edges.
type Edge struct {
	ID   string    `json:"id"`
	From string    `json:"from"`
	To   string    `json:"to"`
	Type EdgeType  `json:"type"`
	Date time.Time `json:"date"`
}

// NewReferralEdge creates a referral edge from referrer to referred user.
func NewReferralEdge(fromID, toID string, date time.Time) *Edge {
	return &Edge{
		ID:   fmt.Sprintf("ref_%s_%s", fromID, toID),
		From: fromID,
		To:   toID,
		Type: ReferralEdgeType,
		Date: date,
	}
}

// NewCreatedContactEdge creates an edge from a creator user to a contact.
func NewCreatedContactEdge(fromID, toID string, date time.Time) *Edge {
	return &Edge{
		ID:   fmt.Sprintf("created_%s_%s", fromID, toID),
		From: fromID,
		To:   toID,
		Type: CreatedContactEdgeType,
		Date: date,
	}
}

// Validate checks if the Edge has all required fields set.
func (e *Edge) Validate() error {
	if e.From == "" || e.To == "" {
		return ErrEmptyID
	}
	switch e.Type {
	case ReferralEdgeType, CreatedContactEdgeType:
		return nil
	default:
		return fmt.Errorf("unknown edge type %q", e.Type)
	}
}
