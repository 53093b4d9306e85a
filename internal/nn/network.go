// Package nn implements the network core of the Flint library.
//
// This package provides the building blocks for small feed-forward and
// convolutional networks:
//   - Layer variants: Dense, Conv2D, Pool2D (pure data, closed set)
//   - Network: ordered layers plus their weight and bias tensors
//   - Forward: heterogeneous-layer forward propagation
//   - Distribution: the initialization sampler boundary
//   - GradientOracle: the external differentiation boundary
//
// The package deliberately does not implement backpropagation: gradients
// enter through Network.Update, shaped exactly like the parameters.
package nn

import (
	"fmt"

	"github.com/flintml/flint/internal/tensor"
)

// Optimizer applies one parameter-update step. Implementations live in
// the optim package; Network only requires that a step either fully
// succeeds or returns an error before mutating anything.
//
// The weights/biases/gradW/gradB slices are indexed by layer; entries for
// parameter-free layers (Pool2D) are nil and must be skipped.
type Optimizer[F tensor.Float] interface {
	// Step mutates weights and biases in place using the supplied
	// gradients, updating the optimizer's own accumulators as it goes.
	// Gradients are read-only and already shape-checked by the caller.
	Step(weights, biases, gradW, gradB []*tensor.Tensor[F]) error

	// LearningRate returns the static learning rate (step size for Adam).
	LearningRate() float64
}

// Network is an ordered sequence of layers together with their parameter
// tensors and, once configured, one optimizer.
//
// Weight and bias slices are parallel to the layer slice:
//   - Dense:  weight {out, in}, bias {out}
//   - Conv2D: weight {out_channels, in_channels, k, k}, bias {out_channels}
//   - Pool2D: both nil (no learnable parameters)
//
// Parameters are created once by New and mutated only through Update.
// A single Network must not be driven by concurrent Update calls; distinct
// Networks share no state.
type Network[F tensor.Float] struct {
	layers  []Layer
	weights []*tensor.Tensor[F]
	biases  []*tensor.Tensor[F]
	opt     Optimizer[F]
}

// New constructs a network from the given layer sequence, sampling every
// weight and bias entry independently from dist.
//
// Consecutive layers must be compatible: a Dense layer's In must equal the
// previous Dense layer's Out, and a Conv2D layer's InChannels must equal
// the channel count produced by the preceding Conv2D/Pool2D chain.
// Violations return ErrConfiguration. Compatibility that depends on the
// runtime input (the flattened size of a spatial volume feeding a Dense
// layer) is checked by Forward instead.
func New[F tensor.Float](layers []Layer, dist Distribution) (*Network[F], error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: network needs at least one layer", ErrConfiguration)
	}
	if dist == nil {
		return nil, fmt.Errorf("%w: nil init distribution", ErrConfiguration)
	}

	for i, layer := range layers {
		if layer == nil {
			return nil, fmt.Errorf("%w: layer %d is nil", ErrConfiguration, i)
		}
		if err := layer.validate(); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	if err := checkChain(layers); err != nil {
		return nil, err
	}

	net := &Network[F]{
		layers:  layers,
		weights: make([]*tensor.Tensor[F], len(layers)),
		biases:  make([]*tensor.Tensor[F], len(layers)),
	}
	for i, layer := range layers {
		switch l := layer.(type) {
		case Dense:
			net.weights[i] = sample[F](dist, tensor.Shape{l.Out, l.In})
			net.biases[i] = sample[F](dist, tensor.Shape{l.Out})
		case Conv2D:
			net.weights[i] = sample[F](dist, tensor.Shape{l.OutChannels, l.InChannels, l.KernelSize, l.KernelSize})
			net.biases[i] = sample[F](dist, tensor.Shape{l.OutChannels})
		case Pool2D:
			// no learnable parameters
		}
	}
	return net, nil
}

// checkChain validates consecutive layer compatibility that is knowable
// without the runtime input shape.
func checkChain(layers []Layer) error {
	// Channel count flowing through the spatial chain. -1 means "set by
	// the network input" (a leading Pool2D), so nothing to check yet.
	channels := -1
	// Flat vector length after a Dense layer; 0 while in the spatial part.
	flatSize := 0

	for i, layer := range layers {
		switch l := layer.(type) {
		case Dense:
			if flatSize > 0 && l.In != flatSize {
				return fmt.Errorf("%w: layer %d: dense in=%d but previous layer produces %d values",
					ErrConfiguration, i, l.In, flatSize)
			}
			flatSize = l.Out
			channels = -1
		case Conv2D:
			if flatSize > 0 {
				return fmt.Errorf("%w: layer %d: conv2d cannot follow a dense layer (flat output has no spatial geometry)",
					ErrConfiguration, i)
			}
			if channels > 0 && l.InChannels != channels {
				return fmt.Errorf("%w: layer %d: conv2d in_channels=%d but previous layer produces %d channels",
					ErrConfiguration, i, l.InChannels, channels)
			}
			channels = l.OutChannels
		case Pool2D:
			if flatSize > 0 {
				return fmt.Errorf("%w: layer %d: pool2d cannot follow a dense layer (flat output has no spatial geometry)",
					ErrConfiguration, i)
			}
			// pooling preserves the channel count
		}
	}
	return nil
}

// sample fills a fresh tensor with i.i.d. draws from dist.
func sample[F tensor.Float](dist Distribution, shape tensor.Shape) *tensor.Tensor[F] {
	t := tensor.Zeros[F](shape)
	data := t.Data()
	for i := range data {
		data[i] = F(dist.Sample())
	}
	return t
}

// Layers returns the network's layer sequence.
func (n *Network[F]) Layers() []Layer {
	return n.layers
}

// Weights returns the per-layer weight tensors (nil for Pool2D layers).
//
// The tensors alias the network's parameters; they are mutated by Update
// and must not be written by callers directly.
func (n *Network[F]) Weights() []*tensor.Tensor[F] {
	return n.weights
}

// Biases returns the per-layer bias tensors (nil for Pool2D layers).
func (n *Network[F]) Biases() []*tensor.Tensor[F] {
	return n.biases
}

// Optimizer returns the configured optimizer, or nil before SetOptimizer.
func (n *Network[F]) Optimizer() Optimizer[F] {
	return n.opt
}

// SetOptimizer attaches an update rule to the network. The optimizer's
// accumulators are owned exclusively by this network from then on.
func (n *Network[F]) SetOptimizer(opt Optimizer[F]) {
	n.opt = opt
}

// Update applies one optimizer step using externally supplied gradients.
//
// gradW and gradB must mirror Weights and Biases exactly: same length,
// same per-layer shapes, nil at Pool2D indices. Any mismatch returns
// ErrDimension before any parameter or accumulator is touched, so a
// failed call is free of side effects. Calling Update before SetOptimizer
// returns ErrConfiguration.
func (n *Network[F]) Update(gradW, gradB []*tensor.Tensor[F]) error {
	if n.opt == nil {
		return fmt.Errorf("%w: no optimizer configured", ErrConfiguration)
	}
	if err := n.checkGradients(gradW, gradB); err != nil {
		return err
	}
	return n.opt.Step(n.weights, n.biases, gradW, gradB)
}

// checkGradients validates gradient shapes against the parameters.
func (n *Network[F]) checkGradients(gradW, gradB []*tensor.Tensor[F]) error {
	if len(gradW) != len(n.layers) || len(gradB) != len(n.layers) {
		return fmt.Errorf("%w: got %d weight and %d bias gradients for %d layers",
			ErrDimension, len(gradW), len(gradB), len(n.layers))
	}
	for i := range n.layers {
		if err := checkGradient(n.weights[i], gradW[i], i, "weight"); err != nil {
			return err
		}
		if err := checkGradient(n.biases[i], gradB[i], i, "bias"); err != nil {
			return err
		}
	}
	return nil
}

func checkGradient[F tensor.Float](param, grad *tensor.Tensor[F], layer int, kind string) error {
	if param == nil {
		if grad != nil {
			return fmt.Errorf("%w: layer %d has no %s parameters but got a gradient of shape %v",
				ErrDimension, layer, kind, grad.Shape())
		}
		return nil
	}
	if grad == nil {
		return fmt.Errorf("%w: layer %d: missing %s gradient", ErrDimension, layer, kind)
	}
	if !grad.Shape().Equal(param.Shape()) {
		return fmt.Errorf("%w: layer %d: %s gradient shape %v does not match parameter shape %v",
			ErrDimension, layer, kind, grad.Shape(), param.Shape())
	}
	return nil
}
