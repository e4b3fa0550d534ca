package insights

import (
	"fmt"
	"math"

	"github.com/growthmesh/refgraph/pkg/neural"
	"github.com/growthmesh/refgraph/pkg/types"
)

const (
	maxRealSamples    = 20
	syntheticProfiles = 10
	ganNoiseWidth     = 3
)

// SyntheticProfile is one generated profile with features scaled back
// into their original value ranges.
type SyntheticProfile struct {
	Connections   float64 `json:"connections"`
	Level         float64 `json:"level"`
	ContactsAdded float64 `json:"contactsAdded"`
}

// syntheticInsight runs one adversarial training step against up to 20
// real user vectors and emits 10 generated profiles for display.
func syntheticInsight(users []*types.Node) (*types.Insight, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("synthetic: %w", neural.ErrNoSamples)
	}

	gan, err := neural.NewGAN(ganNoiseWidth, 3)
	if err != nil {
		return nil, fmt.Errorf("synthetic: %w", err)
	}

	real := make([][]float64, 0, maxRealSamples)
	for _, u := range users {
		if len(real) == maxRealSamples {
			break
		}
		real = append(real, UserFeatureVector(u))
	}

	step, err := gan.TrainStep(real)
	if err != nil {
		return nil, fmt.Errorf("synthetic: %w", err)
	}

	generated, err := gan.Generate(syntheticProfiles)
	if err != nil {
		return nil, fmt.Errorf("synthetic: %w", err)
	}

	profiles := make([]SyntheticProfile, 0, len(generated))
	for _, g := range generated {
		profiles = append(profiles, SyntheticProfile{
			Connections:   round1(g[0] * connectionsScale),
			Level:         round1(g[1] * levelScale),
			ContactsAdded: round1(g[2] * contactsAddedScale),
		})
	}

	return &types.Insight{
		Type:  "synthetic_generation",
		Title: "Synthetic Profile Generation",
		Description: fmt.Sprintf(
			"Generated %d synthetic profiles; discriminator accuracy %.0f%% over %d samples.",
			len(profiles), step.DiscriminatorAccuracy*100, step.SamplesSeen),
		Importance: types.ImportanceLow,
		Data: map[string]interface{}{
			"profiles":              profiles,
			"discriminatorAccuracy": step.DiscriminatorAccuracy,
			"generatorLoss":         step.GeneratorLoss,
			"realSamples":           len(real),
		},
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
