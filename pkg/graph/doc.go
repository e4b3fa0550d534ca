// Package graph builds the in-memory referral network from snapshot rows
// and runs the structural analytics over it: hierarchy level assignment,
// aggregate metrics, influence ranking, and referral chain extraction.
package graph
