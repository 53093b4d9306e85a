package optim

import (
	"github.com/flintml/flint/internal/tensor"
)

// Momentum implements gradient descent with momentum.
//
// Update rule:
//
//	velocity = gamma * velocity + lr * gradient
//	param    = param - velocity
//
// The velocity accumulates a decaying sum of past gradients, which
// accelerates descent along consistent directions and dampens
// oscillations.
type Momentum[F tensor.Float] struct {
	lr    float64
	gamma float64

	velocityW []*tensor.Tensor[F]
	velocityB []*tensor.Tensor[F]
}

// MomentumConfig holds configuration for the Momentum optimizer.
// Zero values select the defaults.
type MomentumConfig struct {
	LR    float64 // Learning rate (default: 0.01)
	Gamma float64 // Velocity decay factor (default: 0.9, range [0, 1))
}

// NewMomentum creates a new Momentum optimizer. Velocities are allocated
// on the first Step, shaped like the network's parameters, starting at
// zero.
func NewMomentum[F tensor.Float](config MomentumConfig) *Momentum[F] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Gamma == 0 {
		config.Gamma = 0.9
	}
	return &Momentum[F]{lr: config.LR, gamma: config.Gamma}
}

// Step applies one momentum update to every parameter tensor.
func (m *Momentum[F]) Step(weights, biases, gradW, gradB []*tensor.Tensor[F]) error {
	m.velocityW = ensureState(m.velocityW, weights)
	m.velocityB = ensureState(m.velocityB, biases)

	for i := range weights {
		if weights[i] == nil {
			continue
		}
		m.apply(weights[i], gradW[i], m.velocityW[i])
		m.apply(biases[i], gradB[i], m.velocityB[i])
	}
	return nil
}

func (m *Momentum[F]) apply(param, grad, velocity *tensor.Tensor[F]) {
	p := param.Data()
	g := grad.Data()
	v := velocity.Data()
	for i := range p {
		v[i] = F(m.gamma*float64(v[i]) + m.lr*float64(g[i]))
		p[i] -= v[i]
	}
}

// LearningRate returns the learning rate.
func (m *Momentum[F]) LearningRate() float64 {
	return m.lr
}

// Gamma returns the velocity decay factor.
func (m *Momentum[F]) Gamma() float64 {
	return m.gamma
}

// Velocity returns the per-layer weight and bias velocity tensors, or nil
// slices before the first Step.
func (m *Momentum[F]) Velocity() (w, b []*tensor.Tensor[F]) {
	return m.velocityW, m.velocityB
}
