package source

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/growthmesh/refgraph/pkg/types"
)

// Neo4jSource fetches the snapshot rows from a Neo4j database where the
// upstream CRM persists its User and Contact nodes.
type Neo4jSource struct {
	driver   neo4j.DriverWithContext
	database string
}

// Neo4jConfig carries the connection settings for a Neo4jSource.
type Neo4jConfig struct {
	URI      string
	Username string
	Password string
	Database string
}

// NewNeo4jSource connects to the configured database and verifies
// connectivity before returning.
func NewNeo4jSource(ctx context.Context, cfg Neo4jConfig) (*Neo4jSource, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Neo4jSource{driver: driver, database: cfg.Database}, nil
}

// Fetch implements Source.
func (s *Neo4jSource) Fetch(ctx context.Context) (*types.Snapshot, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	snap := &types.Snapshot{}

	userQuery := `
		MATCH (u:User)
		RETURN u.id AS id, u.email AS email, u.name AS name,
		       u.referred_by AS referred_by, u.created_at AS created_at,
		       u.role AS role
	`
	result, err := session.Run(ctx, userQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query users: %v", ErrSnapshotUnavailable, err)
	}
	for result.Next(ctx) {
		record := result.Record()
		snap.Users = append(snap.Users, types.UserRow{
			ID:         getInt64(record, "id"),
			Email:      getString(record, "email"),
			Name:       getString(record, "name"),
			ReferredBy: getString(record, "referred_by"),
			CreatedAt:  parseTime(getString(record, "created_at")),
			Role:       getString(record, "role"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%w: read users: %v", ErrSnapshotUnavailable, err)
	}

	contactQuery := `
		MATCH (c:Contact)
		RETURN c.contact_id AS contact_id, c.name AS name,
		       c.email_address AS email_address, c.category AS category,
		       c.contact_created_at AS contact_created_at, c.added_by AS added_by,
		       c.events_attended AS events_attended, c.event_roles AS event_roles,
		       c.event_locations AS event_locations, c.total_events AS total_events
	`
	result, err = session.Run(ctx, contactQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: query contacts: %v", ErrSnapshotUnavailable, err)
	}
	for result.Next(ctx) {
		record := result.Record()
		snap.Contacts = append(snap.Contacts, types.ContactRow{
			ContactID:        getInt64(record, "contact_id"),
			Name:             getString(record, "name"),
			EmailAddress:     getString(record, "email_address"),
			Category:         getString(record, "category"),
			ContactCreatedAt: parseTime(getString(record, "contact_created_at")),
			AddedBy:          getString(record, "added_by"),
			EventsAttended:   getString(record, "events_attended"),
			EventRoles:       getString(record, "event_roles"),
			EventLocations:   getString(record, "event_locations"),
			TotalEvents:      int(getInt64(record, "total_events")),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("%w: read contacts: %v", ErrSnapshotUnavailable, err)
	}

	return snap, nil
}

// Close implements Source.
func (s *Neo4jSource) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func getString(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getInt64(record *neo4j.Record, key string) int64 {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
