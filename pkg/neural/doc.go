// Package neural implements the small from-scratch learning models used
// by the insight pipeline: a trainable feedforward network, an
// inference-only LSTM, a fixed-filter CNN, an autoencoder scorer, and a
// minimal GAN.
//
// These are deliberately simplified models for structural pattern
// extraction, not production-grade predictors. Weights are freshly
// randomized per instance and never persisted, so numeric outputs vary
// run to run while output shape stays stable.
package neural
