package graph

import (
	"github.com/growthmesh/refgraph/pkg/types"
)

// ComputeMetrics derives aggregate statistics from a finished graph.
// It is a pure function: degenerate inputs (empty graph, zero users)
// yield zeroed metrics rather than division errors.
func ComputeMetrics(g *types.Graph) types.NetworkMetrics {
	m := types.NetworkMetrics{
		TotalNodes: len(g.Nodes),
		TotalEdges: len(g.Edges),
	}

	var userConnections int
	for _, n := range g.Nodes {
		switch n.Type {
		case types.UserNodeType:
			m.TotalUsers++
			userConnections += n.Connections
		case types.ContactNodeType:
			m.TotalContacts++
		}
		if n.Level > m.MaxLevel {
			m.MaxLevel = n.Level
		}
	}

	if m.TotalUsers > 0 {
		m.AverageConnectionsPerUser = float64(userConnections) / float64(m.TotalUsers)
	}

	// Density normalizes against the undirected complete graph; the
	// denominator is floored at 1 so the value is always finite.
	possible := float64(m.TotalNodes) * float64(m.TotalNodes-1) / 2
	if possible < 1 {
		possible = 1
	}
	m.NetworkDensity = float64(m.TotalEdges) / possible

	return m
}
