package graph

import (
	"math"
	"sort"

	"github.com/growthmesh/refgraph/pkg/types"
)

// maxInfluencers caps the ranking returned to callers.
const maxInfluencers = 5

// TopInfluencers scores every connected user node and returns up to five
// ranked entries. The score blends direct connections, hierarchy
// seniority (levels 0-4 earn a bonus), and one hop of network reach:
//
//	score = connections + max(5-level, 0)*2 + reach*0.5
//
// where reach is the user's own connections plus the connections of every
// user they directly referred. Ties keep original iteration order.
func TopInfluencers(g *types.Graph) []types.Influencer {
	users := g.UserNodes()

	// One-hop reach needs the referred users of each email; index the
	// referral targets up front instead of rescanning per user.
	referredBy := make(map[string][]*types.Node)
	for _, u := range users {
		if u.ReferredBy != "" {
			referredBy[u.ReferredBy] = append(referredBy[u.ReferredBy], u)
		}
	}

	var ranked []types.Influencer
	for _, u := range users {
		if u.Connections == 0 {
			continue
		}

		reach := u.Connections
		for _, referred := range referredBy[u.Email] {
			reach += referred.Connections
		}

		levelBonus := 5 - u.Level
		if levelBonus < 0 {
			levelBonus = 0
		}

		score := float64(u.Connections) + float64(levelBonus)*2 + float64(reach)*0.5
		ranked = append(ranked, types.Influencer{
			Name:           u.Name,
			Email:          u.Email,
			Type:           string(u.Type),
			Connections:    u.Connections,
			Level:          u.Level,
			InfluenceScore: math.Round(score*10) / 10,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InfluenceScore > ranked[j].InfluenceScore
	})

	if len(ranked) > maxInfluencers {
		ranked = ranked[:maxInfluencers]
	}
	return ranked
}
