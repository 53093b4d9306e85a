package optim

import (
	"github.com/flintml/flint/internal/tensor"
)

// SGD implements plain stochastic gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// SGD keeps no auxiliary state; every step depends only on the current
// gradient.
type SGD[F tensor.Float] struct {
	lr float64
}

// SGDConfig holds configuration for the SGD optimizer.
// Zero values select the defaults.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD[F tensor.Float](config SGDConfig) *SGD[F] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[F]{lr: config.LR}
}

// Step applies one gradient-descent update to every parameter tensor.
// Layers without parameters (nil entries) are skipped.
func (s *SGD[F]) Step(weights, biases, gradW, gradB []*tensor.Tensor[F]) error {
	for i := range weights {
		if weights[i] == nil {
			continue
		}
		s.apply(weights[i], gradW[i])
		s.apply(biases[i], gradB[i])
	}
	return nil
}

func (s *SGD[F]) apply(param, grad *tensor.Tensor[F]) {
	p := param.Data()
	g := grad.Data()
	for i := range p {
		p[i] -= F(s.lr * float64(g[i]))
	}
}

// LearningRate returns the learning rate.
func (s *SGD[F]) LearningRate() float64 {
	return s.lr
}
