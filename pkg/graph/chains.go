package graph

import (
	"github.com/growthmesh/refgraph/pkg/types"
)

// maxReferralChains caps the number of chains returned to callers.
const maxReferralChains = 10

// ReferralChains reconstructs backward referral lineages. Each chain
// starts at a user and follows referredBy links towards the ultimate
// root, in walk order (start first, root last). Chains of length 1 are
// discarded; every node in a kept chain is marked visited so no user is
// reported in more than one chain. A node already seen in the chain
// under construction terminates the walk, so referral cycles cannot
// loop forever.
func ReferralChains(g *types.Graph) []types.ReferralChain {
	visited := make(map[string]struct{})
	var chains []types.ReferralChain

	for _, start := range g.UserNodes() {
		if len(chains) >= maxReferralChains {
			break
		}
		if _, seen := visited[start.ID]; seen {
			continue
		}

		chain := walkBack(g, start, visited)
		if len(chain) < 2 {
			continue
		}

		entries := make([]types.ChainEntry, len(chain))
		for i, n := range chain {
			visited[n.ID] = struct{}{}
			entries[i] = types.ChainEntry{
				Name:  n.Name,
				Email: n.Email,
				Type:  string(n.Type),
				Level: n.Level,
			}
		}
		chains = append(chains, types.ReferralChain{
			Length: len(entries),
			Chain:  entries,
		})
	}

	return chains
}

// walkBack follows referredBy links from start until it runs out of
// referrers, hits a cycle, or reaches a node already claimed by a
// previous chain.
func walkBack(g *types.Graph, start *types.Node, claimed map[string]struct{}) []*types.Node {
	inChain := map[string]struct{}{start.ID: {}}
	chain := []*types.Node{start}

	current := start
	for current.ReferredBy != "" {
		next := g.UserByEmail(current.ReferredBy)
		if next == nil {
			break
		}
		if _, seen := inChain[next.ID]; seen {
			break
		}
		if _, seen := claimed[next.ID]; seen {
			break
		}
		inChain[next.ID] = struct{}{}
		chain = append(chain, next)
		current = next
	}

	return chain
}
