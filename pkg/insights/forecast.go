package insights

import (
	"fmt"
	"math"

	"github.com/growthmesh/refgraph/pkg/neural"
	"github.com/growthmesh/refgraph/pkg/types"
)

const (
	forecastWindow = 5
	forecastHidden = 4
	forecastScale  = 10.0
)

// forecastInsight orders users by creation time, slides a five-user
// window over the sequence, and runs an LSTM forward pass over every
// window. The last output of the final window, scaled and rounded,
// becomes a rough future-signup count.
func forecastInsight(users []*types.Node) (*types.Insight, error) {
	ordered := UsersByCreation(users)
	if len(ordered) < forecastWindow {
		return nil, fmt.Errorf("forecast: need at least %d users, have %d", forecastWindow, len(ordered))
	}

	lstm, err := neural.NewLSTM(2, forecastHidden)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	windows := len(ordered) - forecastWindow + 1
	var last *neural.LSTMResult
	for i := 0; i < windows; i++ {
		sequence := make([][]float64, 0, forecastWindow)
		for _, u := range ordered[i : i+forecastWindow] {
			sequence = append(sequence, SignupStep(u))
		}
		last, err = lstm.Forward(sequence)
		if err != nil {
			return nil, fmt.Errorf("forecast: %w", err)
		}
	}

	futureSignups := int(math.Abs(math.Round(last.LastOutput() * forecastScale)))

	return &types.Insight{
		Type:  "growth_forecast",
		Title: "Signup Growth Forecast",
		Description: fmt.Sprintf(
			"Projected roughly %d upcoming signups from %d signup windows of %d users.",
			futureSignups, windows, forecastWindow),
		Importance: types.ImportanceMedium,
		Data: map[string]interface{}{
			"futureSignups": futureSignups,
			"windows":       windows,
			"windowSize":    forecastWindow,
			"usersAnalyzed": len(ordered),
		},
	}, nil
}
