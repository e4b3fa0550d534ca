package insights

import (
	"fmt"
	"math"

	"github.com/growthmesh/refgraph/pkg/neural"
	"github.com/growthmesh/refgraph/pkg/types"
)

// Engagement model tuning. The epoch cap pairs with the simplified
// delta rule in pkg/neural; the tier cutoffs grade the sigmoid output.
const (
	engagementEpochs     = 500
	highRiskThreshold    = 0.3
	mediumRiskThreshold  = 0.7
	maxReportedRiskUsers = 5
)

type riskEntry struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Score float64 `json:"score"`
}

// engagementInsight trains a fresh 3-6-4-1 feedforward network on the
// user feature vectors, labeling a user engaged iff they have at least
// one connection, then re-scores every user into risk tiers.
func engagementInsight(users []*types.Node) (*types.Insight, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("engagement: %w", neural.ErrNoSamples)
	}

	net, err := neural.NewFeedforward([]int{3, 6, 4, 1})
	if err != nil {
		return nil, fmt.Errorf("engagement: %w", err)
	}

	samples := make([]neural.Sample, 0, len(users))
	for _, u := range users {
		label := 0.0
		if u.Connections > 0 {
			label = 1.0
		}
		samples = append(samples, neural.Sample{
			Input:  UserFeatureVector(u),
			Target: []float64{label},
		})
	}

	epochs, loss, err := net.Train(samples, engagementEpochs)
	if err != nil {
		return nil, fmt.Errorf("engagement: %w", err)
	}

	var high, medium, low int
	var highRisk []riskEntry
	for _, u := range users {
		out, err := net.Forward(UserFeatureVector(u))
		if err != nil {
			return nil, fmt.Errorf("engagement: %w", err)
		}
		score := out[0]
		switch {
		case score < highRiskThreshold:
			high++
			if len(highRisk) < maxReportedRiskUsers {
				highRisk = append(highRisk, riskEntry{
					Name:  u.Name,
					Email: u.Email,
					Score: math.Round(score*1000) / 1000,
				})
			}
		case score < mediumRiskThreshold:
			medium++
		default:
			low++
		}
	}

	importance := types.ImportanceMedium
	if high > 0 {
		importance = types.ImportanceHigh
	}

	return &types.Insight{
		Type:  "engagement_prediction",
		Title: "Engagement Risk Prediction",
		Description: fmt.Sprintf(
			"Scored %d users after %d training epochs (final loss %.4f): %d high risk, %d medium, %d low.",
			len(users), epochs, loss, high, medium, low),
		Importance: importance,
		Data: map[string]interface{}{
			"usersScored":   len(users),
			"epochs":        epochs,
			"finalLoss":     loss,
			"highRisk":      high,
			"mediumRisk":    medium,
			"lowRisk":       low,
			"highRiskUsers": highRisk,
		},
	}, nil
}
