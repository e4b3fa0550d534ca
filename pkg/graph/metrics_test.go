package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growthmesh/refgraph/pkg/types"
)

func TestComputeMetricsChainScenario(t *testing.T) {
	contacts, users := chainFixture()
	g := NewBuilder(nil).Build(contacts, users)
	AssignLevels(g)

	m := ComputeMetrics(g)

	assert.Equal(t, 5, m.TotalNodes)
	assert.Equal(t, 3, m.TotalEdges)
	assert.Equal(t, 3, m.TotalUsers)
	assert.Equal(t, 2, m.TotalContacts)
	assert.Equal(t, 2, m.MaxLevel)
	// connections: root=2, mid=1, leaf=1 over 3 users.
	assert.InDelta(t, 4.0/3.0, m.AverageConnectionsPerUser, 1e-9)
	// 3 edges over C(5,2)=10 possible pairs.
	assert.InDelta(t, 0.3, m.NetworkDensity, 1e-9)
}

func TestComputeMetricsEmptyGraph(t *testing.T) {
	m := ComputeMetrics(types.NewGraph())

	assert.Equal(t, 0, m.TotalNodes)
	assert.Equal(t, 0, m.TotalEdges)
	assert.Equal(t, 0.0, m.AverageConnectionsPerUser)
	assert.Equal(t, 0.0, m.NetworkDensity)
	assert.Equal(t, 0, m.MaxLevel)
}

func TestComputeMetricsDensityBounded(t *testing.T) {
	contacts, users := chainFixture()
	g := NewBuilder(nil).Build(contacts, users)
	m := ComputeMetrics(g)

	assert.GreaterOrEqual(t, m.NetworkDensity, 0.0)
	assert.LessOrEqual(t, m.NetworkDensity, 1.0)
}

func TestComputeMetricsSingleNode(t *testing.T) {
	g := types.NewGraph()
	g.AddNode(&types.Node{ID: "user_solo@x.com", Type: types.UserNodeType, Email: "solo@x.com"})

	m := ComputeMetrics(g)
	// Denominator floored at 1, so the value stays finite.
	assert.Equal(t, 0.0, m.NetworkDensity)
	assert.Equal(t, 1, m.TotalUsers)
}
