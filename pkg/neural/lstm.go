package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// LSTM is a single-layer recurrent cell with forget, input, and output
// gates plus a candidate cell state, each computed over the
// concatenation of the current input and previous hidden state. It is
// inference-only: no training step exists, the gate weights stay at
// their initial values for the life of the instance.
type LSTM struct {
	inputSize  int
	hiddenSize int

	wForget    [][]float64
	wInput     [][]float64
	wOutput    [][]float64
	wCandidate [][]float64

	bForget    []float64
	bInput     []float64
	bOutput    []float64
	bCandidate []float64
}

// LSTMResult holds the per-step outputs and the final recurrent state.
type LSTMResult struct {
	Outputs [][]float64
	Hidden  []float64
	Cell    []float64
}

// LastOutput returns the final element of the final step's output, the
// value the forecaster reads. Zero for an empty sequence.
func (r *LSTMResult) LastOutput() float64 {
	if len(r.Outputs) == 0 {
		return 0
	}
	last := r.Outputs[len(r.Outputs)-1]
	if len(last) == 0 {
		return 0
	}
	return last[len(last)-1]
}

// NewLSTM constructs a cell for the given input and hidden widths.
func NewLSTM(inputSize, hiddenSize int) (*LSTM, error) {
	if inputSize <= 0 || hiddenSize <= 0 {
		return nil, fmt.Errorf("%w: input %d, hidden %d", ErrBadArchitecture, inputSize, hiddenSize)
	}

	l := &LSTM{inputSize: inputSize, hiddenSize: hiddenSize}
	concat := inputSize + hiddenSize
	scale := math.Sqrt(2.0 / float64(concat+hiddenSize))

	l.wForget = gateMatrix(hiddenSize, concat, scale)
	l.wInput = gateMatrix(hiddenSize, concat, scale)
	l.wOutput = gateMatrix(hiddenSize, concat, scale)
	l.wCandidate = gateMatrix(hiddenSize, concat, scale)
	l.bForget = make([]float64, hiddenSize)
	l.bInput = make([]float64, hiddenSize)
	l.bOutput = make([]float64, hiddenSize)
	l.bCandidate = make([]float64, hiddenSize)
	return l, nil
}

func gateMatrix(rows, cols int, scale float64) [][]float64 {
	m := make([][]float64, rows)
	for j := range m {
		row := make([]float64, cols)
		for i := range row {
			row[i] = (rand.Float64()*2 - 1) * scale
		}
		m[j] = row
	}
	return m
}

// Forward processes a sequence of input vectors and returns the per-step
// hidden outputs plus the final hidden and cell state.
func (l *LSTM) Forward(sequence [][]float64) (*LSTMResult, error) {
	hidden := make([]float64, l.hiddenSize)
	cell := make([]float64, l.hiddenSize)
	outputs := make([][]float64, 0, len(sequence))

	for step, input := range sequence {
		if len(input) != l.inputSize {
			return nil, fmt.Errorf("step %d width %d does not match input size %d", step, len(input), l.inputSize)
		}

		concat := make([]float64, 0, l.inputSize+l.hiddenSize)
		concat = append(concat, input...)
		concat = append(concat, hidden...)

		newHidden := make([]float64, l.hiddenSize)
		newCell := make([]float64, l.hiddenSize)
		for j := 0; j < l.hiddenSize; j++ {
			forget := sigmoid(dot(l.wForget[j], concat) + l.bForget[j])
			in := sigmoid(dot(l.wInput[j], concat) + l.bInput[j])
			out := sigmoid(dot(l.wOutput[j], concat) + l.bOutput[j])
			candidate := math.Tanh(dot(l.wCandidate[j], concat) + l.bCandidate[j])

			newCell[j] = forget*cell[j] + in*candidate
			newHidden[j] = out * math.Tanh(newCell[j])
		}

		hidden = newHidden
		cell = newCell
		outputs = append(outputs, append([]float64(nil), hidden...))
	}

	return &LSTMResult{Outputs: outputs, Hidden: hidden, Cell: cell}, nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
