package neural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutoencoder(t *testing.T) {
	t.Run("rejects single layer", func(t *testing.T) {
		_, err := NewAutoencoder([]int{4})
		assert.ErrorIs(t, err, ErrBadArchitecture)
	})
}

func TestAutoencoderReconstruct(t *testing.T) {
	a, err := NewAutoencoder([]int{4, 3, 2})
	require.NoError(t, err)

	t.Run("shapes mirror the architecture", func(t *testing.T) {
		res, err := a.Reconstruct([]float64{0.1, 0.5, 0.9, 0.3})
		require.NoError(t, err)
		assert.Len(t, res.Encoded, 2)
		assert.Len(t, res.Decoded, 4)
		assert.GreaterOrEqual(t, res.Loss, 0.0)
	})

	t.Run("rejects width mismatch", func(t *testing.T) {
		_, err := a.Reconstruct([]float64{0.1, 0.5})
		assert.Error(t, err)
	})

	t.Run("identical inputs score identically", func(t *testing.T) {
		input := []float64{0.2, 0.4, 0.6, 0.8}
		first, err := a.Reconstruct(input)
		require.NoError(t, err)
		second, err := a.Reconstruct(input)
		require.NoError(t, err)
		assert.Equal(t, first.Loss, second.Loss)
		assert.Equal(t, first.Encoded, second.Encoded)
	})
}
