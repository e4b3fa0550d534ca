package neural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeedforward(t *testing.T) {
	t.Run("rejects single layer", func(t *testing.T) {
		_, err := NewFeedforward([]int{3})
		assert.ErrorIs(t, err, ErrBadArchitecture)
	})

	t.Run("rejects zero width", func(t *testing.T) {
		_, err := NewFeedforward([]int{3, 0, 1})
		assert.ErrorIs(t, err, ErrBadArchitecture)
	})

	t.Run("reports layer widths", func(t *testing.T) {
		n, err := NewFeedforward([]int{3, 6, 4, 1})
		require.NoError(t, err)
		assert.Equal(t, 3, n.InputSize())
		assert.Equal(t, 1, n.OutputSize())
	})
}

func TestFeedforwardForward(t *testing.T) {
	n, err := NewFeedforward([]int{2, 4, 1})
	require.NoError(t, err)

	t.Run("output is sigmoid bounded", func(t *testing.T) {
		out, err := n.Forward([]float64{0.5, 0.8})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Greater(t, out[0], 0.0)
		assert.Less(t, out[0], 1.0)
	})

	t.Run("rejects width mismatch", func(t *testing.T) {
		_, err := n.Forward([]float64{0.5})
		assert.Error(t, err)
	})

	t.Run("deterministic for fixed weights", func(t *testing.T) {
		a, err := n.Forward([]float64{0.1, 0.2})
		require.NoError(t, err)
		b, err := n.Forward([]float64{0.1, 0.2})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestFeedforwardTrain(t *testing.T) {
	t.Run("rejects empty sample set", func(t *testing.T) {
		n, err := NewFeedforward([]int{2, 3, 1})
		require.NoError(t, err)
		_, _, err = n.Train(nil, 100)
		assert.ErrorIs(t, err, ErrNoSamples)
	})

	t.Run("rejects target width mismatch", func(t *testing.T) {
		n, err := NewFeedforward([]int{2, 3, 1})
		require.NoError(t, err)
		_, _, err = n.Train([]Sample{{Input: []float64{0.1, 0.2}, Target: []float64{1, 0}}}, 10)
		assert.Error(t, err)
	})

	t.Run("runs requested epochs and reports loss", func(t *testing.T) {
		n, err := NewFeedforward([]int{2, 4, 1})
		require.NoError(t, err)
		samples := []Sample{
			{Input: []float64{0.9, 0.1}, Target: []float64{1}},
			{Input: []float64{0.1, 0.9}, Target: []float64{0}},
		}
		epochs, loss, err := n.Train(samples, 50)
		require.NoError(t, err)
		assert.LessOrEqual(t, epochs, 50)
		assert.GreaterOrEqual(t, loss, 0.0)
	})

	t.Run("early-stops on a trivially satisfied target", func(t *testing.T) {
		n, err := NewFeedforward([]int{1, 2, 1})
		require.NoError(t, err)
		out, err := n.Forward([]float64{0.5})
		require.NoError(t, err)

		// Targeting the network's own current output keeps the squared
		// error below the stop threshold from epoch one.
		epochs, loss, err := n.Train([]Sample{{Input: []float64{0.5}, Target: out}}, 500)
		require.NoError(t, err)
		assert.Equal(t, 1, epochs)
		assert.Less(t, loss, lossThreshold)
	})
}
