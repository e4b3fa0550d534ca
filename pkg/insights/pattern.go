package insights

import (
	"fmt"

	"github.com/growthmesh/refgraph/pkg/neural"
	"github.com/growthmesh/refgraph/pkg/types"
)

// patternInsight projects the contact nodes onto the activity grid and
// runs the fixed convolution bank over it, reporting per-filter
// activation and sparsity plus the dominant filter.
func patternInsight(contacts []*types.Node) (*types.Insight, error) {
	grid := ContactActivityGrid(contacts)

	cnn := neural.NewCNN()
	result, err := cnn.Forward(grid)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}

	dominant := result.DominantFilter()

	return &types.Insight{
		Type:  "pattern_recognition",
		Title: "Contact Activity Patterns",
		Description: fmt.Sprintf(
			"Convolved %d contacts onto an %dx%d activity grid; dominant pattern: %s.",
			min(len(contacts), gridSize*gridSize), gridSize, gridSize, dominant),
		Importance: types.ImportanceLow,
		Data: map[string]interface{}{
			"dominantPattern":  dominant,
			"filterFeatures":   result.Features,
			"contactsAnalyzed": min(len(contacts), gridSize*gridSize),
		},
	}, nil
}
