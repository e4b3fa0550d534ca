package graph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthmesh/refgraph/pkg/types"
)

func TestReferralChainsChainScenario(t *testing.T) {
	contacts, users := chainFixture()
	g := NewBuilder(nil).Build(contacts, users)
	AssignLevels(g)

	chains := ReferralChains(g)
	require.Len(t, chains, 1)

	chain := chains[0]
	assert.Equal(t, 3, chain.Length)
	// Walk order: starting node first, root last.
	assert.Equal(t, "root@x.com", chain.Chain[2].Email)
	assert.Equal(t, 0, chain.Chain[2].Level)
	assert.Equal(t, 2, chain.Chain[0].Level)
}

func TestReferralChainsTerminatesOnCycle(t *testing.T) {
	users := []types.UserRow{
		{ID: 1, Email: "a@x.com", ReferredBy: "b@x.com"},
		{ID: 2, Email: "b@x.com", ReferredBy: "a@x.com"},
	}
	g := NewBuilder(nil).Build(nil, users)

	chains := ReferralChains(g)
	require.Len(t, chains, 1)
	assert.Equal(t, 2, chains[0].Length)
}

func TestReferralChainsUserAppearsAtMostOnce(t *testing.T) {
	// Two branches share the same root: b->root and c->root. The root
	// may only be claimed by one chain.
	users := []types.UserRow{
		{ID: 1, Email: "root@x.com"},
		{ID: 2, Email: "b@x.com", ReferredBy: "root@x.com"},
		{ID: 3, Email: "c@x.com", ReferredBy: "root@x.com"},
	}
	g := NewBuilder(nil).Build(nil, users)

	chains := ReferralChains(g)
	seen := make(map[string]int)
	for _, c := range chains {
		for _, entry := range c.Chain {
			seen[entry.Email]++
		}
	}
	for email, count := range seen {
		assert.Equal(t, 1, count, "user %s in multiple chains", email)
	}
}

func TestReferralChainsDiscardsSingletons(t *testing.T) {
	users := []types.UserRow{
		{ID: 1, Email: "alone@x.com"},
		{ID: 2, Email: "ghost-ref@x.com", ReferredBy: "nobody@x.com"},
	}
	g := NewBuilder(nil).Build(nil, users)

	assert.Empty(t, ReferralChains(g))
}

func TestReferralChainsCappedAtTen(t *testing.T) {
	var users []types.UserRow
	for i := 0; i < 15; i++ {
		root := fmt.Sprintf("root%d@x.com", i)
		child := fmt.Sprintf("child%d@x.com", i)
		users = append(users,
			types.UserRow{ID: int64(i * 2), Email: root},
			types.UserRow{ID: int64(i*2 + 1), Email: child, ReferredBy: root},
		)
	}
	g := NewBuilder(nil).Build(nil, users)

	chains := ReferralChains(g)
	assert.Len(t, chains, 10)
}
