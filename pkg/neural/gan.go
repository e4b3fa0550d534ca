package neural

import (
	"math"
	"math/rand"
)

// GAN pairs a feedforward generator (noise in, feature vector out) with
// a feedforward discriminator (feature vector in, real/fake probability
// out). TrainStep is a single simplified adversarial round: it measures
// discriminator accuracy over a mix of real and generated samples and
// reports a synthetic generator loss derived from the mean fake score.
// No gradient flows into either network.
type GAN struct {
	generator     *Feedforward
	discriminator *Feedforward
	noiseSize     int
}

// GANResult summarizes one training step.
type GANResult struct {
	DiscriminatorAccuracy float64
	GeneratorLoss         float64
	SamplesSeen           int
}

// NewGAN constructs the pair. featureSize is the width of real samples;
// noiseSize is the generator's input width.
func NewGAN(noiseSize, featureSize int) (*GAN, error) {
	generator, err := NewFeedforward([]int{noiseSize, featureSize * 2, featureSize})
	if err != nil {
		return nil, err
	}
	discriminator, err := NewFeedforward([]int{featureSize, featureSize * 2, 1})
	if err != nil {
		return nil, err
	}
	return &GAN{generator: generator, discriminator: discriminator, noiseSize: noiseSize}, nil
}

// Generate produces n synthetic feature vectors from random noise.
func (g *GAN) Generate(n int) ([][]float64, error) {
	samples := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		noise := make([]float64, g.noiseSize)
		for j := range noise {
			noise[j] = rand.Float64()
		}
		out, err := g.generator.Forward(noise)
		if err != nil {
			return nil, err
		}
		samples = append(samples, out)
	}
	return samples, nil
}

// TrainStep scores the discriminator over the real samples and an equal
// number of generated fakes. Real samples count as correctly classified
// above 0.5, fakes below 0.5.
func (g *GAN) TrainStep(real [][]float64) (*GANResult, error) {
	if len(real) == 0 {
		return nil, ErrNoSamples
	}

	fakes, err := g.Generate(len(real))
	if err != nil {
		return nil, err
	}

	var correct int
	var fakeScoreSum float64
	for _, sample := range real {
		score, err := g.discriminator.Forward(sample)
		if err != nil {
			return nil, err
		}
		if score[0] > 0.5 {
			correct++
		}
	}
	for _, fake := range fakes {
		score, err := g.discriminator.Forward(fake)
		if err != nil {
			return nil, err
		}
		fakeScoreSum += score[0]
		if score[0] < 0.5 {
			correct++
		}
	}

	total := len(real) + len(fakes)
	meanFake := fakeScoreSum / float64(len(fakes))

	return &GANResult{
		DiscriminatorAccuracy: float64(correct) / float64(total),
		// Synthetic loss, not a true gradient-derived quantity: low
		// mean fake scores (easily spotted fakes) read as high loss.
		GeneratorLoss: -math.Log(meanFake + 1e-9),
		SamplesSeen:   total,
	}, nil
}
