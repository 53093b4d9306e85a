package optim

import (
	"math"

	"github.com/flintml/flint/internal/tensor"
)

// RMSProp implements root-mean-square propagation.
//
// Update rule:
//
//	accum = decay * accum + (1-decay) * gradient²
//	param = param - lr * gradient / sqrt(accum + eps)
//
// The accumulated squared gradient scales each parameter's step size
// individually, shrinking steps along steep directions.
type RMSProp[F tensor.Float] struct {
	lr    float64
	decay float64
	eps   float64

	accumW []*tensor.Tensor[F]
	accumB []*tensor.Tensor[F]
}

// RMSPropConfig holds configuration for the RMSProp optimizer.
// Zero values select the defaults.
type RMSPropConfig struct {
	LR    float64 // Learning rate (default: 0.01)
	Decay float64 // Squared-gradient decay factor (default: 0.9)
	Eps   float64 // Term for numerical stability (default: 1e-8)
}

// NewRMSProp creates a new RMSProp optimizer. Accumulators are allocated
// on the first Step, shaped like the network's parameters, starting at
// zero.
func NewRMSProp[F tensor.Float](config RMSPropConfig) *RMSProp[F] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Decay == 0 {
		config.Decay = 0.9
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &RMSProp[F]{lr: config.LR, decay: config.Decay, eps: config.Eps}
}

// Step applies one RMSProp update to every parameter tensor.
func (r *RMSProp[F]) Step(weights, biases, gradW, gradB []*tensor.Tensor[F]) error {
	r.accumW = ensureState(r.accumW, weights)
	r.accumB = ensureState(r.accumB, biases)

	for i := range weights {
		if weights[i] == nil {
			continue
		}
		r.apply(weights[i], gradW[i], r.accumW[i])
		r.apply(biases[i], gradB[i], r.accumB[i])
	}
	return nil
}

func (r *RMSProp[F]) apply(param, grad, accum *tensor.Tensor[F]) {
	p := param.Data()
	gd := grad.Data()
	a := accum.Data()
	for i := range p {
		g := float64(gd[i])
		acc := r.decay*float64(a[i]) + (1.0-r.decay)*g*g
		a[i] = F(acc)
		p[i] -= F(r.lr * g / math.Sqrt(acc+r.eps))
	}
}

// LearningRate returns the learning rate.
func (r *RMSProp[F]) LearningRate() float64 {
	return r.lr
}

// Decay returns the squared-gradient decay factor.
func (r *RMSProp[F]) Decay() float64 {
	return r.decay
}

// Accum returns the per-layer accumulated squared gradients for weights
// and biases, or nil slices before the first Step.
func (r *RMSProp[F]) Accum() (w, b []*tensor.Tensor[F]) {
	return r.accumW, r.accumB
}
