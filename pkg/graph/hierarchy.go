package graph

import (
	"github.com/growthmesh/refgraph/pkg/types"
)

// AssignLevels walks the graph breadth-first from every root user and
// fixes each node's level at first dequeue, which is its minimum
// referral-distance from any root. Referral edges advance the level by
// one; created-contact edges keep it unchanged, so contacts inherit
// their creator's level.
//
// Nodes never reached from a root (a root-less referral cycle, or a
// user whose referrer is itself unreachable) keep the default level 0.
// That is deliberate policy, not an error. The visited set prevents
// re-enqueueing, so cyclic referral chains always terminate.
func AssignLevels(g *types.Graph) {
	type queued struct {
		node  *types.Node
		level int
	}

	var queue []queued
	for _, n := range g.Nodes {
		if n.Type == types.UserNodeType && n.IsRoot() {
			queue = append(queue, queued{node: n, level: 0})
		}
	}

	visited := make(map[string]struct{}, len(g.Nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if _, seen := visited[current.node.ID]; seen {
			continue
		}
		visited[current.node.ID] = struct{}{}
		current.node.Level = current.level

		for _, e := range g.OutEdges(current.node.ID) {
			target := g.NodeByID(e.To)
			if target == nil {
				continue
			}
			if _, seen := visited[target.ID]; seen {
				continue
			}
			switch e.Type {
			case types.ReferralEdgeType:
				queue = append(queue, queued{node: target, level: current.level + 1})
			case types.CreatedContactEdgeType:
				queue = append(queue, queued{node: target, level: current.level})
			}
		}
	}
}
