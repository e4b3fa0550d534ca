package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthmesh/refgraph/pkg/types"
)

func chainFixture() ([]types.ContactRow, []types.UserRow) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []types.UserRow{
		{ID: 1, Email: "root@x.com", Name: "Root", CreatedAt: base},
		{ID: 2, Email: "mid@x.com", Name: "Mid", ReferredBy: "root@x.com", CreatedAt: base.Add(time.Hour)},
		{ID: 3, Email: "leaf@x.com", Name: "Leaf", ReferredBy: "mid@x.com", CreatedAt: base.Add(2 * time.Hour)},
	}
	contacts := []types.ContactRow{
		{ContactID: 10, Name: "C-Root", AddedBy: "root@x.com", ContactCreatedAt: base, TotalEvents: 3},
		{ContactID: 11, Name: "C-Leaf", AddedBy: "leaf@x.com", ContactCreatedAt: base, TotalEvents: 1},
	}
	return contacts, users
}

func TestBuildChainScenario(t *testing.T) {
	contacts, users := chainFixture()
	g := NewBuilder(nil).Build(contacts, users)

	assert.Len(t, g.Nodes, 5)
	assert.Len(t, g.Edges, 3)

	root := g.UserByEmail("root@x.com")
	require.NotNil(t, root)
	// 1 referral (mid) + 1 created contact.
	assert.Equal(t, 2, root.Connections)
	assert.Len(t, root.ContactsAdded, 1)

	leaf := g.UserByEmail("leaf@x.com")
	require.NotNil(t, leaf)
	assert.Equal(t, 1, leaf.Connections)

	mid := g.UserByEmail("mid@x.com")
	require.NotNil(t, mid)
	assert.Equal(t, 1, mid.Connections)
}

func TestBuildNoDanglingEdges(t *testing.T) {
	contacts, users := chainFixture()
	// Referrer that does not exist and a creator that does not exist.
	users = append(users, types.UserRow{ID: 4, Email: "stray@x.com", ReferredBy: "ghost@x.com"})
	contacts = append(contacts, types.ContactRow{ContactID: 12, Name: "Orphan", AddedBy: "ghost@x.com"})

	g := NewBuilder(nil).Build(contacts, users)

	for _, e := range g.Edges {
		assert.NotNil(t, g.NodeByID(e.From), "edge %s has dangling from", e.ID)
		assert.NotNil(t, g.NodeByID(e.To), "edge %s has dangling to", e.ID)
	}
}

func TestBuildOrphanContactIsIsolated(t *testing.T) {
	contacts := []types.ContactRow{{ContactID: 99, Name: "Nobody", AddedBy: "missing@x.com"}}
	g := NewBuilder(nil).Build(contacts, nil)

	orphan := g.NodeByID(types.ContactNodeID(99))
	require.NotNil(t, orphan)
	assert.Equal(t, 0, orphan.Connections)
	assert.Empty(t, g.Edges)
}

func TestBuildDuplicateReferralRowsKeepDuplicateEdges(t *testing.T) {
	users := []types.UserRow{
		{ID: 1, Email: "a@x.com"},
		{ID: 2, Email: "b@x.com", ReferredBy: "a@x.com"},
		{ID: 3, Email: "b@x.com", ReferredBy: "a@x.com"},
	}
	g := NewBuilder(nil).Build(nil, users)

	// The second b@x.com row collapses into the existing node but its
	// referral row still creates a second edge and a second increment.
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, 2, g.UserByEmail("a@x.com").Connections)
}

func TestBuildEmptySnapshot(t *testing.T) {
	g := NewBuilder(nil).Build(nil, nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}
