package refgraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthmesh/refgraph/pkg/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// chainSnapshot is the three-user referral chain with two contacts:
// root refers mid, mid refers leaf, root and leaf each add a contact.
func chainSnapshot() *types.Snapshot {
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return &types.Snapshot{
		Users: []types.UserRow{
			{ID: 1, Email: "root@example.com", Name: "Root", CreatedAt: base},
			{ID: 2, Email: "mid@example.com", Name: "Mid", ReferredBy: "root@example.com", CreatedAt: base.Add(time.Hour)},
			{ID: 3, Email: "leaf@example.com", Name: "Leaf", ReferredBy: "mid@example.com", CreatedAt: base.Add(2 * time.Hour)},
		},
		Contacts: []types.ContactRow{
			{ContactID: 1, Name: "Contact A", AddedBy: "root@example.com", TotalEvents: 3, ContactCreatedAt: base},
			{ContactID: 2, Name: "Contact B", AddedBy: "leaf@example.com", TotalEvents: 1, ContactCreatedAt: base},
		},
	}
}

func TestAnalyzeChainScenario(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	payload, err := client.Analyze(context.Background(), chainSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 3, payload.TotalUsers)
	assert.Equal(t, 2, payload.TotalContacts)
	assert.Equal(t, 5, payload.NetworkData.TotalNodes)
	assert.Equal(t, 3, payload.NetworkData.TotalEdges)

	byEmail := map[string]*types.Node{}
	for _, n := range payload.NetworkData.Nodes {
		if n.Type == types.UserNodeType {
			byEmail[n.Email] = n
		}
	}
	assert.Equal(t, 0, byEmail["root@example.com"].Level)
	assert.Equal(t, 1, byEmail["mid@example.com"].Level)
	assert.Equal(t, 2, byEmail["leaf@example.com"].Level)
	assert.Equal(t, 2, byEmail["root@example.com"].Connections)
	assert.Equal(t, 1, byEmail["leaf@example.com"].Connections)

	assert.Equal(t, 2, payload.NetworkMetrics.MaxLevel)
	assert.GreaterOrEqual(t, payload.NetworkMetrics.NetworkDensity, 0.0)
	assert.LessOrEqual(t, payload.NetworkMetrics.NetworkDensity, 1.0)

	require.NotEmpty(t, payload.TopInfluencers)
	assert.Equal(t, "root@example.com", payload.TopInfluencers[0].Email)

	require.Len(t, payload.ReferralChains, 1)
	assert.Equal(t, 3, payload.ReferralChains[0].Length)
	assert.Equal(t, "leaf@example.com", payload.ReferralChains[0].Chain[0].Email)
	assert.Equal(t, "root@example.com", payload.ReferralChains[0].Chain[2].Email)

	assert.NotEmpty(t, payload.AIInsights)
	assert.NotEmpty(t, payload.Timestamp)
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	payload, err := client.Analyze(context.Background(), &types.Snapshot{})
	require.NoError(t, err)

	assert.Equal(t, 0, payload.NetworkData.TotalNodes)
	assert.Equal(t, 0, payload.NetworkData.TotalEdges)
	assert.Equal(t, 0.0, payload.NetworkMetrics.NetworkDensity)
	assert.Equal(t, 0, payload.NetworkMetrics.MaxLevel)
	assert.NotNil(t, payload.TopInfluencers)
	assert.Empty(t, payload.TopInfluencers)
	assert.NotNil(t, payload.ReferralChains)
	assert.Empty(t, payload.ReferralChains)
}

func TestAnalyzeNilSnapshot(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	_, err = client.Analyze(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilSnapshot)
}

func TestAnalyzeNoDanglingEdges(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	snapshot := chainSnapshot()
	// An unknown creator and an unknown referrer must not create edges.
	snapshot.Contacts = append(snapshot.Contacts, types.ContactRow{
		ContactID: 99, Name: "Orphan", AddedBy: "ghost@example.com",
	})
	snapshot.Users = append(snapshot.Users, types.UserRow{
		ID: 4, Email: "stray@example.com", ReferredBy: "ghost@example.com",
	})

	payload, err := client.Analyze(context.Background(), snapshot)
	require.NoError(t, err)

	ids := map[string]struct{}{}
	for _, n := range payload.NetworkData.Nodes {
		ids[n.ID] = struct{}{}
	}
	for _, e := range payload.NetworkData.Edges {
		assert.Contains(t, ids, e.From)
		assert.Contains(t, ids, e.To)
	}

	orphan := payload.NetworkData.Nodes[len(payload.NetworkData.Nodes)-1]
	assert.Equal(t, types.ContactNodeType, orphan.Type)
	assert.Equal(t, 0, orphan.Connections)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Analyze(ctx, chainSnapshot())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeTimeout(t *testing.T) {
	client, err := NewClient(&Config{Timeout: time.Nanosecond}, testLogger())
	require.NoError(t, err)

	// The nanosecond deadline expires before the insight stage runs.
	_, err = client.Analyze(context.Background(), chainSnapshot())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyzeConcurrentCalls(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			_, err := client.Analyze(context.Background(), chainSnapshot())
			done <- err
		}()
	}
	for i := 0; i < 4; i++ {
		assert.NoError(t, <-done)
	}
}

func TestAnalyzeInsightShapeIsStable(t *testing.T) {
	client, err := NewClient(nil, testLogger())
	require.NoError(t, err)

	snapshot := &types.Snapshot{}
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		email := fmt.Sprintf("user%d@example.com", i)
		row := types.UserRow{ID: int64(i + 1), Email: email, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if i > 0 {
			row.ReferredBy = fmt.Sprintf("user%d@example.com", i-1)
		}
		snapshot.Users = append(snapshot.Users, row)
	}

	first, err := client.Analyze(context.Background(), snapshot)
	require.NoError(t, err)
	second, err := client.Analyze(context.Background(), snapshot)
	require.NoError(t, err)

	// Weights are reseeded per call: numbers may differ, shape may not.
	require.Equal(t, len(first.AIInsights), len(second.AIInsights))
	for i := range first.AIInsights {
		assert.Equal(t, first.AIInsights[i].Type, second.AIInsights[i].Type)
	}
	assert.Equal(t, first.NetworkMetrics, second.NetworkMetrics)
}
