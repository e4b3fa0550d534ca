package source

import (
	"time"

	"github.com/growthmesh/refgraph/pkg/types"
)

// userFileRow mirrors the upstream export's user shape.
type userFileRow struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	ReferredBy string `json:"referred_by"`
	CreatedAt  string `json:"created_at"`
	Role       string `json:"role"`
}

// contactFileRow mirrors the upstream export's contact shape.
type contactFileRow struct {
	ContactID        int64  `json:"contact_id"`
	Name             string `json:"name"`
	EmailAddress     string `json:"email_address"`
	Category         string `json:"category"`
	ContactCreatedAt string `json:"contact_created_at"`
	AddedBy          string `json:"added_by"`
	EventsAttended   string `json:"events_attended"`
	EventRoles       string `json:"event_roles"`
	EventLocations   string `json:"event_locations"`
	TotalEvents      int    `json:"total_events"`
}

// parseTime accepts the timestamp layouts seen in upstream exports.
// Unparseable values become the zero time rather than failing the
// whole snapshot.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (f *snapshotFile) toSnapshot() *types.Snapshot {
	snap := &types.Snapshot{}
	for _, u := range f.Users {
		snap.Users = append(snap.Users, types.UserRow{
			ID:         u.ID,
			Email:      u.Email,
			Name:       u.Name,
			ReferredBy: u.ReferredBy,
			CreatedAt:  parseTime(u.CreatedAt),
			Role:       u.Role,
		})
	}
	for _, c := range f.Contacts {
		snap.Contacts = append(snap.Contacts, types.ContactRow{
			ContactID:        c.ContactID,
			Name:             c.Name,
			EmailAddress:     c.EmailAddress,
			Category:         c.Category,
			ContactCreatedAt: parseTime(c.ContactCreatedAt),
			AddedBy:          c.AddedBy,
			EventsAttended:   c.EventsAttended,
			EventRoles:       c.EventRoles,
			EventLocations:   c.EventLocations,
			TotalEvents:      c.TotalEvents,
		})
	}
	return snap
}
