package neural

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGANGenerate(t *testing.T) {
	g, err := NewGAN(3, 5)
	require.NoError(t, err)

	samples, err := g.Generate(4)
	require.NoError(t, err)
	require.Len(t, samples, 4)
	for _, s := range samples {
		require.Len(t, s, 5)
		for _, v := range s {
			assert.Greater(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestGANTrainStep(t *testing.T) {
	g, err := NewGAN(3, 2)
	require.NoError(t, err)

	t.Run("rejects empty real set", func(t *testing.T) {
		_, err := g.TrainStep(nil)
		assert.ErrorIs(t, err, ErrNoSamples)
	})

	t.Run("accuracy bounded and samples counted", func(t *testing.T) {
		real := [][]float64{{0.9, 0.1}, {0.8, 0.2}, {0.7, 0.3}}
		res, err := g.TrainStep(real)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.DiscriminatorAccuracy, 0.0)
		assert.LessOrEqual(t, res.DiscriminatorAccuracy, 1.0)
		assert.Equal(t, 6, res.SamplesSeen)
		assert.False(t, math.IsNaN(res.GeneratorLoss))
		assert.False(t, math.IsInf(res.GeneratorLoss, 0))
	})
}
