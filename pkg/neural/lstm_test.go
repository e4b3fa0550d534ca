package neural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLSTM(t *testing.T) {
	t.Run("rejects non-positive widths", func(t *testing.T) {
		_, err := NewLSTM(0, 4)
		assert.ErrorIs(t, err, ErrBadArchitecture)
		_, err = NewLSTM(2, -1)
		assert.ErrorIs(t, err, ErrBadArchitecture)
	})
}

func TestLSTMForward(t *testing.T) {
	l, err := NewLSTM(2, 3)
	require.NoError(t, err)

	t.Run("one output per step", func(t *testing.T) {
		seq := [][]float64{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}}
		res, err := l.Forward(seq)
		require.NoError(t, err)
		assert.Len(t, res.Outputs, 3)
		assert.Len(t, res.Hidden, 3)
		assert.Len(t, res.Cell, 3)
		assert.Equal(t, res.Outputs[2], res.Hidden)
	})

	t.Run("outputs stay in tanh range", func(t *testing.T) {
		res, err := l.Forward([][]float64{{1, 1}, {1, 1}})
		require.NoError(t, err)
		for _, step := range res.Outputs {
			for _, v := range step {
				assert.GreaterOrEqual(t, v, -1.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	})

	t.Run("rejects step width mismatch", func(t *testing.T) {
		_, err := l.Forward([][]float64{{0.1, 0.2}, {0.3}})
		assert.Error(t, err)
	})

	t.Run("empty sequence yields zero state", func(t *testing.T) {
		res, err := l.Forward(nil)
		require.NoError(t, err)
		assert.Empty(t, res.Outputs)
		assert.Equal(t, 0.0, res.LastOutput())
	})

	t.Run("state carries across steps", func(t *testing.T) {
		same := []float64{0.5, 0.5}
		res, err := l.Forward([][]float64{same, same})
		require.NoError(t, err)
		// Identical inputs produce different outputs once the hidden
		// state is non-zero.
		assert.NotEqual(t, res.Outputs[0], res.Outputs[1])
	})
}

func TestLSTMResultLastOutput(t *testing.T) {
	res := &LSTMResult{Outputs: [][]float64{{0.1, 0.2}, {0.3, 0.7}}}
	assert.Equal(t, 0.7, res.LastOutput())
}
