package neural

import (
	"errors"
	"fmt"
)

// ErrGridTooSmall is returned when the input grid cannot fit one 3x3
// filter application.
var ErrGridTooSmall = errors.New("input grid must be square and at least 3x3")

// Filter is one hand-chosen 3x3 convolution kernel.
type Filter struct {
	Name   string
	Kernel [3][3]float64
}

// FilterFeature summarizes one filter's response to an input grid.
type FilterFeature struct {
	Name string `json:"name"`
	// Activation is the mean of the pooled feature map.
	Activation float64 `json:"activation"`
	// Sparsity is the fraction of zero entries in the pooled map.
	Sparsity float64 `json:"sparsity"`
}

// CNNResult holds the per-filter feature maps and summary features.
type CNNResult struct {
	Maps     [][][]float64
	Features []FilterFeature
}

// DominantFilter returns the name of the filter with the highest mean
// activation, or the empty string when no features exist.
func (r *CNNResult) DominantFilter() string {
	best := ""
	bestActivation := -1.0
	for _, f := range r.Features {
		if f.Activation > bestActivation {
			bestActivation = f.Activation
			best = f.Name
		}
	}
	return best
}

// CNN convolves a fixed bank of four filters over a square input grid:
// two edge detectors, a Laplacian-like kernel, and a box blur. Each map
// is ReLU-activated and 2x2 max-pooled. The filter bank is not
// learnable.
type CNN struct {
	filters []Filter
}

// NewCNN constructs the fixed filter bank.
func NewCNN() *CNN {
	return &CNN{filters: []Filter{
		{Name: "vertical_edge", Kernel: [3][3]float64{{-1, 0, 1}, {-1, 0, 1}, {-1, 0, 1}}},
		{Name: "horizontal_edge", Kernel: [3][3]float64{{-1, -1, -1}, {0, 0, 0}, {1, 1, 1}}},
		{Name: "laplacian", Kernel: [3][3]float64{{0, -1, 0}, {-1, 4, -1}, {0, -1, 0}}},
		{Name: "box_blur", Kernel: [3][3]float64{
			{1.0 / 9, 1.0 / 9, 1.0 / 9},
			{1.0 / 9, 1.0 / 9, 1.0 / 9},
			{1.0 / 9, 1.0 / 9, 1.0 / 9},
		}},
	}}
}

// Filters exposes the configured bank for reporting.
func (c *CNN) Filters() []Filter { return c.filters }

// Forward runs every filter over the grid and derives activation and
// sparsity features per filter.
func (c *CNN) Forward(grid [][]float64) (*CNNResult, error) {
	size := len(grid)
	if size < 3 {
		return nil, ErrGridTooSmall
	}
	for i, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrGridTooSmall, i, len(row), size)
		}
	}

	result := &CNNResult{}
	for _, f := range c.filters {
		conv := convolve(grid, f.Kernel)
		pooled := maxPool(conv)
		result.Maps = append(result.Maps, pooled)
		result.Features = append(result.Features, FilterFeature{
			Name:       f.Name,
			Activation: meanOf(pooled),
			Sparsity:   sparsityOf(pooled),
		})
	}
	return result, nil
}

// convolve applies the kernel with valid padding and ReLU activation.
func convolve(grid [][]float64, kernel [3][3]float64) [][]float64 {
	outSize := len(grid) - 2
	out := make([][]float64, outSize)
	for y := 0; y < outSize; y++ {
		row := make([]float64, outSize)
		for x := 0; x < outSize; x++ {
			var sum float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					sum += grid[y+ky][x+kx] * kernel[ky][kx]
				}
			}
			row[x] = relu(sum)
		}
		out[y] = row
	}
	return out
}

// maxPool downsamples with 2x2 windows, stride 2. A trailing odd row or
// column is dropped.
func maxPool(m [][]float64) [][]float64 {
	outSize := len(m) / 2
	if outSize == 0 {
		// Too small to pool; keep the map as-is.
		return m
	}
	out := make([][]float64, outSize)
	for y := 0; y < outSize; y++ {
		row := make([]float64, outSize)
		for x := 0; x < outSize; x++ {
			max := m[y*2][x*2]
			for _, v := range []float64{m[y*2][x*2+1], m[y*2+1][x*2], m[y*2+1][x*2+1]} {
				if v > max {
					max = v
				}
			}
			row[x] = max
		}
		out[y] = row
	}
	return out
}

func meanOf(m [][]float64) float64 {
	var sum float64
	var count int
	for _, row := range m {
		for _, v := range row {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func sparsityOf(m [][]float64) float64 {
	var zeros, count int
	for _, row := range m {
		for _, v := range row {
			if v == 0 {
				zeros++
			}
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(zeros) / float64(count)
}
