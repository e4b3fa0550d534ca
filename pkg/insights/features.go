package insights

import (
	"sort"

	"github.com/growthmesh/refgraph/pkg/types"
)

// Feature scaling constants. The engagement and anomaly models share
// the same three-feature user vector; the forecaster reads a two-feature
// sequence; the pattern model reads a fixed 8x8 contact grid.
const (
	connectionsScale   = 10.0
	levelScale         = 5.0
	contactsAddedScale = 5.0
	emailLengthScale   = 20.0
	eventCountScale    = 5.0
	gridSize           = 8
	gridBaseline       = 0.1
)

// NormalizeConnections maps a connection count into [0, 1].
func NormalizeConnections(connections int) float64 {
	return clampUnit(float64(connections) / connectionsScale)
}

// NormalizeLevel maps a hierarchy level into [0, 1].
func NormalizeLevel(level int) float64 {
	return clampUnit(float64(level) / levelScale)
}

// NormalizeContactsAdded maps an authored-contact count into [0, 1].
func NormalizeContactsAdded(count int) float64 {
	return clampUnit(float64(count) / contactsAddedScale)
}

// UserFeatureVector builds the three-feature engagement vector for a
// user node: scaled connections, scaled level, scaled contacts added.
func UserFeatureVector(user *types.Node) []float64 {
	return []float64{
		NormalizeConnections(user.Connections),
		NormalizeLevel(user.Level),
		NormalizeContactsAdded(len(user.ContactsAdded)),
	}
}

// SignupStep builds the two-feature sequence step for a user: scaled
// email length and a referred flag.
func SignupStep(user *types.Node) []float64 {
	referred := 0.0
	if user.ReferredBy != "" {
		referred = 1.0
	}
	return []float64{float64(len(user.Email)) / emailLengthScale, referred}
}

// UsersByCreation returns the user nodes ordered by creation time,
// oldest first. Ties keep the input order.
func UsersByCreation(users []*types.Node) []*types.Node {
	ordered := append([]*types.Node(nil), users...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}

// ContactActivityGrid projects contact nodes onto a fixed 8x8 grid in
// row-major order. Each filled cell holds the contact's scaled event
// count plus a small baseline so active contacts never read as zero;
// contacts beyond the 64th are ignored and unfilled cells stay zero.
func ContactActivityGrid(contacts []*types.Node) [][]float64 {
	grid := make([][]float64, gridSize)
	for y := range grid {
		grid[y] = make([]float64, gridSize)
	}
	for i, c := range contacts {
		if i >= gridSize*gridSize {
			break
		}
		grid[i/gridSize][i%gridSize] = float64(c.TotalEvents)/eventCountScale + gridBaseline
	}
	return grid
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
