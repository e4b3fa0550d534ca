// Package refgraph turns a flat snapshot of users and contacts into
// referral network analytics.
//
// The pipeline builds an in-memory graph from the snapshot rows,
// assigns hierarchy levels by breadth-first traversal from the root
// users, computes aggregate metrics, ranks influencers, extracts
// referral chains, and runs a set of small neural models that score
// engagement risk, forecast signups, recognize contact activity
// patterns, flag structural anomalies, and generate synthetic profiles.
//
// # Basic Usage
//
//	client, err := refgraph.NewClient(nil, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	payload, err := client.Analyze(ctx, &types.Snapshot{
//		Users:    users,
//		Contacts: contacts,
//	})
//
// Every call builds its own graph and its own model instances, so
// concurrent Analyze calls share no state. Neural weights are
// reinitialized per call without seeding: exact insight numbers vary
// run to run while the payload's structure stays fixed.
package refgraph
