package neural

// Autoencoder composes two feedforward sub-networks with mirrored layer
// sizes. It is used as a fixed scorer: weights stay at their random
// initialization and the reconstruction error alone carries the signal,
// so identical inputs always score identically within one instance.
type Autoencoder struct {
	encoder *Feedforward
	decoder *Feedforward
}

// Reconstruction is the result of one encode/decode pass.
type Reconstruction struct {
	Encoded []float64
	Decoded []float64
	// Loss is the sum of squared differences between input and decoded
	// output, always >= 0.
	Loss float64
}

// NewAutoencoder builds an encoder from the given sizes (input first,
// latent last) and a decoder with the sizes reversed.
func NewAutoencoder(encoderSizes []int) (*Autoencoder, error) {
	encoder, err := NewFeedforward(encoderSizes)
	if err != nil {
		return nil, err
	}

	decoderSizes := make([]int, len(encoderSizes))
	for i, s := range encoderSizes {
		decoderSizes[len(encoderSizes)-1-i] = s
	}
	decoder, err := NewFeedforward(decoderSizes)
	if err != nil {
		return nil, err
	}

	return &Autoencoder{encoder: encoder, decoder: decoder}, nil
}

// Reconstruct encodes and decodes the input and reports the squared
// reconstruction error.
func (a *Autoencoder) Reconstruct(input []float64) (*Reconstruction, error) {
	encoded, err := a.encoder.Forward(input)
	if err != nil {
		return nil, err
	}
	decoded, err := a.decoder.Forward(encoded)
	if err != nil {
		return nil, err
	}

	var loss float64
	for i := range input {
		diff := input[i] - decoded[i]
		loss += diff * diff
	}

	return &Reconstruction{Encoded: encoded, Decoded: decoded, Loss: loss}, nil
}
