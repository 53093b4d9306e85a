package nn

import (
	"fmt"

	"github.com/flintml/flint/internal/tensor"
)

// Loss scores a prediction against a target. It is opaque to the core:
// only the gradient oracle ever evaluates it.
type Loss[F tensor.Float] func(pred, target *tensor.Tensor[F]) float64

// GradientOracle computes per-parameter gradients for a given loss and
// sample. It stands in for whatever differentiation mechanism the caller
// has (autodiff, hand-derived backward passes, finite differences); the
// core neither implements nor validates the differentiation itself, only
// the shapes of what comes back.
//
// The returned gradW and gradB must mirror weights and biases exactly:
// same length, same per-layer shapes, nil at parameter-free layers.
type GradientOracle[F tensor.Float] interface {
	Gradient(weights, biases []*tensor.Tensor[F], loss Loss[F], x, y *tensor.Tensor[F]) (gradW, gradB []*tensor.Tensor[F], err error)
}

// GradientFunc adapts a plain function to the GradientOracle interface.
type GradientFunc[F tensor.Float] func(weights, biases []*tensor.Tensor[F], loss Loss[F], x, y *tensor.Tensor[F]) (gradW, gradB []*tensor.Tensor[F], err error)

// Gradient calls f.
func (f GradientFunc[F]) Gradient(weights, biases []*tensor.Tensor[F], loss Loss[F], x, y *tensor.Tensor[F]) ([]*tensor.Tensor[F], []*tensor.Tensor[F], error) {
	return f(weights, biases, loss, x, y)
}

// Step performs one full training round: it asks the oracle for gradients
// at the network's current parameters and applies them through the
// configured optimizer. It is a convenience for callers; the two halves
// can equally be driven separately via oracle.Gradient and net.Update.
func Step[F tensor.Float](net *Network[F], oracle GradientOracle[F], loss Loss[F], x, y *tensor.Tensor[F]) error {
	if oracle == nil {
		return fmt.Errorf("%w: nil gradient oracle", ErrConfiguration)
	}
	gradW, gradB, err := oracle.Gradient(net.Weights(), net.Biases(), loss, x, y)
	if err != nil {
		return fmt.Errorf("gradient oracle: %w", err)
	}
	return net.Update(gradW, gradB)
}
