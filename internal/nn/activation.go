package nn

import (
	"math"

	"github.com/flintml/flint/internal/tensor"
)

// Activation selects the elementwise function applied after a Dense or
// Conv2D layer. It is chosen per layer at construction and validated
// there; forward propagation never sees an unknown value.
type Activation int

// Supported activation functions.
const (
	// Identity leaves the pre-activation untouched.
	Identity Activation = iota
	// Sigmoid applies 1 / (1 + exp(-z)) elementwise.
	Sigmoid
	// ReLU applies max(0, z) elementwise.
	ReLU
	// Softmax applies exp(z_i) / sum_j exp(z_j) over the whole vector
	// (per feature map for convolutional outputs), not elementwise.
	Softmax
)

// String returns a human-readable name for the activation.
func (a Activation) String() string {
	switch a {
	case Identity:
		return "identity"
	case Sigmoid:
		return "sigmoid"
	case ReLU:
		return "relu"
	case Softmax:
		return "softmax"
	default:
		return "unknown"
	}
}

func (a Activation) valid() bool {
	return a >= Identity && a <= Softmax
}

// applyActivation transforms v in place.
//
// Softmax is a vector function: it subtracts the maximum before
// exponentiating for numerical stability, then normalizes by the sum.
func applyActivation[F tensor.Float](a Activation, v []F) {
	switch a {
	case Identity:
		// no-op
	case Sigmoid:
		for i, z := range v {
			v[i] = F(1.0 / (1.0 + math.Exp(-float64(z))))
		}
	case ReLU:
		for i, z := range v {
			if z < 0 {
				v[i] = 0
			}
		}
	case Softmax:
		maxVal := v[0]
		for _, z := range v[1:] {
			if z > maxVal {
				maxVal = z
			}
		}
		var sum float64
		for i, z := range v {
			e := math.Exp(float64(z - maxVal))
			v[i] = F(e)
			sum += e
		}
		for i := range v {
			v[i] = F(float64(v[i]) / sum)
		}
	}
}

// PoolOp selects the window reduction applied by a Pool2D layer.
type PoolOp int

// Supported pooling operators.
const (
	// MaxPool takes the maximum of each window.
	MaxPool PoolOp = iota
	// MeanPool takes the arithmetic mean of each window.
	MeanPool
)

// String returns a human-readable name for the pooling operator.
func (p PoolOp) String() string {
	switch p {
	case MaxPool:
		return "max"
	case MeanPool:
		return "mean"
	default:
		return "unknown"
	}
}

func (p PoolOp) valid() bool {
	return p == MaxPool || p == MeanPool
}

// reduce folds one pooling window into a single value.
// window is never empty: the feature-map size formula guarantees at least
// one element per window.
func reduceWindow[F tensor.Float](p PoolOp, window []F) F {
	switch p {
	case MaxPool:
		maxVal := window[0]
		for _, z := range window[1:] {
			if z > maxVal {
				maxVal = z
			}
		}
		return maxVal
	case MeanPool:
		var sum F
		for _, z := range window {
			sum += z
		}
		return sum / F(len(window))
	default:
		panic("nn: unreachable pool op") // constructors validate PoolOp
	}
}
