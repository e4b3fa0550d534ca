package types

import (
	"fmt"
	"time"
)

// NodeType represents the variant of a network node.
type NodeType string

const (
	// UserNodeType represents a registered user account.
	UserNodeType NodeType = "user"
	// ContactNodeType represents a contact record authored by a user.
	ContactNodeType NodeType = "contact"
)

// Node represents a node in the referral network graph. It is a tagged
// union: Type selects which of the variant field groups is meaningful.
type Node struct {
	ID          string    `json:"id"`
	Type        NodeType  `json:"type"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Connections int       `json:"connections"`
	Level       int       `json:"level"`
	CreatedAt   time.Time `json:"createdAt"`

	// User-specific fields
	ReferredBy    string   `json:"referredBy,omitempty"`
	ContactsAdded []string `json:"contactsAdded,omitempty"`
	Role          string   `json:"role,omitempty"`

	// Contact-specific fields
	Category       string `json:"category,omitempty"`
	Events         string `json:"events,omitempty"`
	EventRoles     string `json:"eventRoles,omitempty"`
	EventLocations string `json:"eventLocations,omitempty"`
	TotalEvents    int    `json:"totalEvents,omitempty"`
	AddedBy        string `json:"addedBy,omitempty"`
}

// UserNodeID derives the graph id for a user. Users are keyed by email,
// so two accounts sharing an email collapse into one node; the builder
// logs a warning when that happens instead of failing.
func UserNodeID(email string) string {
	return "user_" + email
}

// ContactNodeID derives the graph id for a contact. The numeric contact
// id keeps the contact id-space disjoint from the user id-space.
func ContactNodeID(contactID int64) string {
	return fmt.Sprintf("contact_%d", contactID)
}

// NewUserNode builds the user variant from a snapshot row.
func NewUserNode(row UserRow) *Node {
	return &Node{
		ID:         UserNodeID(row.Email),
		Type:       UserNodeType,
		Name:       row.DisplayName(),
		Email:      row.Email,
		CreatedAt:  row.CreatedAt,
		ReferredBy: row.ReferredBy,
		Role:       row.Role,
	}
}

// NewContactNode builds the contact variant from a snapshot row.
func NewContactNode(row ContactRow) *Node {
	return &Node{
		ID:             ContactNodeID(row.ContactID),
		Type:           ContactNodeType,
		Name:           row.Name,
		Email:          row.EmailAddress,
		CreatedAt:      row.ContactCreatedAt,
		Category:       row.Category,
		Events:         row.EventsAttended,
		EventRoles:     row.EventRoles,
		EventLocations: row.EventLocations,
		TotalEvents:    row.TotalEvents,
		AddedBy:        row.AddedBy,
	}
}

// IsRoot reports whether a user node has no referrer. Contact nodes are
// never roots.
func (n *Node) IsRoot() bool {
	switch n.Type {
	case UserNodeType:
		return n.ReferredBy == ""
	case ContactNodeType:
		return false
	default:
		return false
	}
}

// Validate checks if the Node has all required fields set.
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrEmptyID
	}
	switch n.Type {
	case UserNodeType, ContactNodeType:
		return nil
	default:
		return fmt.Errorf("unknown node type %q", n.Type)
	}
}
