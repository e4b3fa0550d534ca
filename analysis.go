package refgraph

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/growthmesh/refgraph/pkg/graph"
	"github.com/growthmesh/refgraph/pkg/types"
)

// Analyze runs the full pipeline over one snapshot: graph construction,
// level assignment, metrics, influencer ranking, chain extraction, and
// the neural insight battery. Either the full payload is produced or
// the call fails; only the insight battery degrades internally.
func (c *Client) Analyze(ctx context.Context, snapshot *types.Snapshot) (*types.AnalysisPayload, error) {
	if snapshot == nil {
		return nil, ErrNilSnapshot
	}
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	g := c.builder.Build(snapshot.Contacts, snapshot.Users)
	graph.AssignLevels(g)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Metrics, ranking, and chain extraction are independent reads of
	// the finished graph.
	var (
		metrics     types.NetworkMetrics
		influencers []types.Influencer
		chains      []types.ReferralChain
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		metrics = graph.ComputeMetrics(g)
		return egCtx.Err()
	})
	eg.Go(func() error {
		influencers = graph.TopInfluencers(g)
		return egCtx.Err()
	})
	eg.Go(func() error {
		chains = graph.ReferralChains(g)
		return egCtx.Err()
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	aiInsights, err := c.orchestrator.Run(ctx, g)
	if err != nil {
		return nil, err
	}

	// Empty lists serialize as [] rather than null.
	if influencers == nil {
		influencers = []types.Influencer{}
	}
	if chains == nil {
		chains = []types.ReferralChain{}
	}

	nodes := g.Nodes
	if nodes == nil {
		nodes = []*types.Node{}
	}
	edges := g.Edges
	if edges == nil {
		edges = []*types.Edge{}
	}

	payload := &types.AnalysisPayload{
		TotalContacts: len(snapshot.Contacts),
		TotalUsers:    len(snapshot.Users),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		NetworkData: types.NetworkData{
			Nodes:      nodes,
			Edges:      edges,
			TotalNodes: len(g.Nodes),
			TotalEdges: len(g.Edges),
		},
		NetworkMetrics: metrics,
		AIInsights:     aiInsights,
		TopInfluencers: influencers,
		ReferralChains: chains,
	}

	c.logger.Info("analysis complete",
		"users", payload.TotalUsers,
		"contacts", payload.TotalContacts,
		"nodes", payload.NetworkData.TotalNodes,
		"edges", payload.NetworkData.TotalEdges,
		"insights", len(aiInsights),
		"duration", time.Since(start))

	return payload, nil
}
