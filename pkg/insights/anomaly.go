package insights

import (
	"fmt"
	"math"

	"github.com/growthmesh/refgraph/pkg/neural"
	"github.com/growthmesh/refgraph/pkg/types"
)

const (
	anomalyThreshold   = 0.5
	maxFlaggedUsers    = 5
	anomalyLatentWidth = 2
)

type anomalyEntry struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Error float64 `json:"reconstructionError"`
}

// anomalyInsight scores every user's feature vector through a fresh,
// untrained autoencoder and flags reconstruction errors above the
// threshold. The raw error is the anomaly signal; no training happens.
func anomalyInsight(users []*types.Node) (*types.Insight, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("anomaly: %w", neural.ErrNoSamples)
	}

	ae, err := neural.NewAutoencoder([]int{3, anomalyLatentWidth})
	if err != nil {
		return nil, fmt.Errorf("anomaly: %w", err)
	}

	var flagged []anomalyEntry
	var flaggedTotal int
	var errorSum float64
	for _, u := range users {
		res, err := ae.Reconstruct(UserFeatureVector(u))
		if err != nil {
			return nil, fmt.Errorf("anomaly: %w", err)
		}
		errorSum += res.Loss
		if res.Loss > anomalyThreshold {
			flaggedTotal++
			if len(flagged) < maxFlaggedUsers {
				flagged = append(flagged, anomalyEntry{
					Name:  u.Name,
					Email: u.Email,
					Error: math.Round(res.Loss*1000) / 1000,
				})
			}
		}
	}
	avgError := errorSum / float64(len(users))

	importance := types.ImportanceLow
	if flaggedTotal > 0 {
		importance = types.ImportanceHigh
	}

	return &types.Insight{
		Type:  "anomaly_detection",
		Title: "Structural Anomaly Detection",
		Description: fmt.Sprintf(
			"Flagged %d of %d users with reconstruction error above %.1f (population average %.3f).",
			flaggedTotal, len(users), anomalyThreshold, avgError),
		Importance: importance,
		Data: map[string]interface{}{
			"flaggedCount": flaggedTotal,
			"flaggedUsers": flagged,
			"averageError": avgError,
			"threshold":    anomalyThreshold,
		},
	}, nil
}
