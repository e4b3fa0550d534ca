package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceFetch(t *testing.T) {
	t.Run("well-formed snapshot", func(t *testing.T) {
		path := writeSnapshotFile(t, `{
			"users": [
				{"id": 1, "email": "root@example.com", "created_at": "2025-04-01T00:00:00Z"},
				{"id": 2, "email": "mid@example.com", "referred_by": "root@example.com", "created_at": "2025-04-02 10:30:00"}
			],
			"contacts": [
				{"contact_id": 7, "name": "Contact A", "added_by": "root@example.com", "total_events": 3}
			]
		}`)

		snap, err := NewFileSource(path).Fetch(context.Background())
		require.NoError(t, err)

		require.Len(t, snap.Users, 2)
		assert.Equal(t, "root@example.com", snap.Users[0].Email)
		assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), snap.Users[0].CreatedAt)
		assert.Equal(t, "root@example.com", snap.Users[1].ReferredBy)
		assert.Equal(t, 10, snap.Users[1].CreatedAt.Hour())

		require.Len(t, snap.Contacts, 1)
		assert.Equal(t, int64(7), snap.Contacts[0].ContactID)
		assert.Equal(t, 3, snap.Contacts[0].TotalEvents)
	})

	t.Run("repairs malformed json", func(t *testing.T) {
		// Trailing comma, as produced by hand-edited exports.
		path := writeSnapshotFile(t, `{
			"users": [
				{"id": 1, "email": "root@example.com"},
			],
			"contacts": []
		}`)

		snap, err := NewFileSource(path).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, snap.Users, 1)
		assert.Equal(t, "root@example.com", snap.Users[0].Email)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource("/nonexistent/snapshot.json").Fetch(context.Background())
		assert.ErrorIs(t, err, ErrSnapshotUnavailable)
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeSnapshotFile(t, `{"users": [], "contacts": []}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFileSource(path).Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unparseable dates become zero time", func(t *testing.T) {
		path := writeSnapshotFile(t, `{
			"users": [{"id": 1, "email": "a@x.com", "created_at": "not a date"}],
			"contacts": []
		}`)
		snap, err := NewFileSource(path).Fetch(context.Background())
		require.NoError(t, err)
		assert.True(t, snap.Users[0].CreatedAt.IsZero())
	})
}
