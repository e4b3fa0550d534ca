package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/growthmesh/refgraph/pkg/types"
)

func TestNormalization(t *testing.T) {
	t.Run("connections scale and clamp", func(t *testing.T) {
		assert.Equal(t, 0.3, NormalizeConnections(3))
		assert.Equal(t, 1.0, NormalizeConnections(25))
	})

	t.Run("level scale and clamp", func(t *testing.T) {
		assert.Equal(t, 0.4, NormalizeLevel(2))
		assert.Equal(t, 1.0, NormalizeLevel(9))
	})

	t.Run("contacts added scale and clamp", func(t *testing.T) {
		assert.Equal(t, 0.2, NormalizeContactsAdded(1))
		assert.Equal(t, 1.0, NormalizeContactsAdded(12))
	})
}

func TestUserFeatureVector(t *testing.T) {
	user := &types.Node{
		Type:          types.UserNodeType,
		Connections:   4,
		Level:         1,
		ContactsAdded: []string{"contact_1", "contact_2"},
	}
	assert.Equal(t, []float64{0.4, 0.2, 0.4}, UserFeatureVector(user))
}

func TestSignupStep(t *testing.T) {
	referred := &types.Node{Email: "a@example.com", ReferredBy: "root@example.com"}
	root := &types.Node{Email: "root@example.com"}

	assert.Equal(t, []float64{float64(len("a@example.com")) / 20, 1}, SignupStep(referred))
	assert.Equal(t, 0.0, SignupStep(root)[1])
}

func TestUsersByCreation(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	newest := &types.Node{Email: "c@x.com", CreatedAt: base.Add(2 * time.Hour)}
	oldest := &types.Node{Email: "a@x.com", CreatedAt: base}
	middle := &types.Node{Email: "b@x.com", CreatedAt: base.Add(time.Hour)}

	input := []*types.Node{newest, oldest, middle}
	ordered := UsersByCreation(input)

	assert.Equal(t, []*types.Node{oldest, middle, newest}, ordered)
	// Input order untouched.
	assert.Equal(t, newest, input[0])
}

func TestContactActivityGrid(t *testing.T) {
	t.Run("empty contacts give a zero grid", func(t *testing.T) {
		grid := ContactActivityGrid(nil)
		assert.Len(t, grid, 8)
		for _, row := range grid {
			assert.Len(t, row, 8)
			for _, v := range row {
				assert.Equal(t, 0.0, v)
			}
		}
	})

	t.Run("row-major fill with baseline", func(t *testing.T) {
		contacts := []*types.Node{
			{Type: types.ContactNodeType, TotalEvents: 5},
			{Type: types.ContactNodeType, TotalEvents: 0},
		}
		grid := ContactActivityGrid(contacts)
		assert.InDelta(t, 1.1, grid[0][0], 1e-9)
		assert.InDelta(t, 0.1, grid[0][1], 1e-9)
		assert.Equal(t, 0.0, grid[0][2])
	})

	t.Run("extra contacts ignored", func(t *testing.T) {
		contacts := make([]*types.Node, 70)
		for i := range contacts {
			contacts[i] = &types.Node{Type: types.ContactNodeType, TotalEvents: 1}
		}
		grid := ContactActivityGrid(contacts)
		assert.InDelta(t, 0.3, grid[7][7], 1e-9)
	})
}
