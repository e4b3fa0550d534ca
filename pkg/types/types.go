package types

import (
	"errors"
	"time"
)

// Validation errors
var (
	ErrEmptyID    = errors.New("id cannot be empty")
	ErrEmptyEmail = errors.New("email cannot be empty")
	ErrEmptyName  = errors.New("name cannot be empty")
)

// ContextKey is the type used for refgraph context values.
type ContextKey string

const (
	// ContextKeyUserID identifies the requesting user for telemetry.
	ContextKeyUserID ContextKey = "refgraph_user_id"
	// ContextKeySessionID identifies the request session for telemetry.
	ContextKeySessionID ContextKey = "refgraph_session_id"
	// ContextKeyRequestSource identifies where the request originated.
	ContextKeyRequestSource ContextKey = "refgraph_request_source"
)

// UserRow is one user record from the upstream snapshot.
type UserRow struct {
	ID         int64     `json:"id" mapstructure:"id"`
	Email      string    `json:"email" mapstructure:"email"`
	ReferredBy string    `json:"referred_by,omitempty" mapstructure:"referred_by"`
	CreatedAt  time.Time `json:"created_at" mapstructure:"created_at"`
	Role       string    `json:"role" mapstructure:"role"`
	Name       string    `json:"name,omitempty" mapstructure:"name"`
}

// Validate checks if the UserRow has all required fields set.
func (r *UserRow) Validate() error {
	if r.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}

// DisplayName returns the user's name, falling back to the email address.
func (r *UserRow) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Email
}

// ContactRow is one contact record from the upstream snapshot. The event
// columns carry semicolon-joined text produced by the source aggregation.
type ContactRow struct {
	ContactID        int64     `json:"contact_id" mapstructure:"contact_id"`
	Name             string    `json:"name" mapstructure:"name"`
	EmailAddress     string    `json:"email_address" mapstructure:"email_address"`
	Category         string    `json:"category" mapstructure:"category"`
	ContactCreatedAt time.Time `json:"contact_created_at" mapstructure:"contact_created_at"`
	AddedBy          string    `json:"added_by,omitempty" mapstructure:"added_by"`
	EventsAttended   string    `json:"events_attended,omitempty" mapstructure:"events_attended"`
	EventRoles       string    `json:"event_roles,omitempty" mapstructure:"event_roles"`
	EventLocations   string    `json:"event_locations,omitempty" mapstructure:"event_locations"`
	TotalEvents      int       `json:"total_events" mapstructure:"total_events"`
}

// Validate checks if the ContactRow has all required fields set.
func (r *ContactRow) Validate() error {
	if r.ContactID == 0 {
		return ErrEmptyID
	}
	return nil
}

// Snapshot bundles the two row sets that make up one analysis input.
type Snapshot struct {
	Users    []UserRow    `json:"users"`
	Contacts []ContactRow `json:"contacts"`
}
