package nn

import (
	"math"
	"math/rand"
)

// Distribution supplies the random samples used to initialize weights and
// biases. It is external to the core: New draws each entry independently
// and identically from whatever the caller provides and never looks
// inside it again.
type Distribution interface {
	// Sample draws one value from the distribution.
	Sample() float64
}

// Uniform samples uniformly from [Low, High).
type Uniform struct {
	Low  float64
	High float64
}

// Sample draws one value from the distribution.
func (u Uniform) Sample() float64 {
	//nolint:gosec // math/rand for weight initialization (not security-critical)
	return u.Low + rand.Float64()*(u.High-u.Low)
}

// Normal samples from a Gaussian with the given mean and standard
// deviation.
type Normal struct {
	Mean   float64
	Stddev float64
}

// Sample draws one value from the distribution.
func (n Normal) Sample() float64 {
	//nolint:gosec // math/rand for weight initialization (not security-critical)
	return n.Mean + rand.NormFloat64()*n.Stddev
}

// Xavier samples from the Glorot uniform distribution
// U(-sqrt(6/(fan_in+fan_out)), sqrt(6/(fan_in+fan_out))), which keeps the
// variance of activations roughly constant across layers.
type Xavier struct {
	FanIn  int
	FanOut int
}

// Sample draws one value from the distribution.
func (x Xavier) Sample() float64 {
	bound := math.Sqrt(6.0 / float64(x.FanIn+x.FanOut))
	//nolint:gosec // math/rand for weight initialization (not security-critical)
	return (rand.Float64()*2.0 - 1.0) * bound
}

// Constant always returns Value. Useful for deterministic tests.
type Constant struct {
	Value float64
}

// Sample draws one value from the distribution.
func (c Constant) Sample() float64 {
	return c.Value
}
