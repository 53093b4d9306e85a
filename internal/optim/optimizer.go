// Package optim implements the parameter-update rules of the Flint
// library.
//
// This package provides:
//   - SGD: plain gradient descent
//   - Momentum: gradient descent with velocity
//   - RMSProp: squared-gradient moving average scaling
//   - Adam: first/second moment estimation with bias correction
//
// Each rule is one typed struct carrying its hyperparameters and
// auxiliary accumulators; a Config struct with zero-value defaults
// replaces ad-hoc key/value overrides. All implement nn.Optimizer and are
// attached to a network with Network.SetOptimizer.
//
// Example:
//
//	net, _ := nn.New[float32](layers, nn.Xavier{FanIn: 4, FanOut: 2})
//	net.SetOptimizer(optim.NewAdam[float32](optim.AdamConfig{StepSize: 0.001}))
//
//	gradW, gradB, _ := oracle.Gradient(net.Weights(), net.Biases(), loss, x, y)
//	if err := net.Update(gradW, gradB); err != nil {
//		...
//	}
package optim

import (
	"github.com/flintml/flint/internal/tensor"
)

// ensureState lazily allocates a slice of zero tensors shaped like
// params. Entries stay nil where the corresponding layer has no
// parameters. Called on the first Step so accumulators always start at
// zero with exactly the network's shapes.
func ensureState[F tensor.Float](state, params []*tensor.Tensor[F]) []*tensor.Tensor[F] {
	if state != nil {
		return state
	}
	state = make([]*tensor.Tensor[F], len(params))
	for i, p := range params {
		if p != nil {
			state[i] = tensor.Zeros[F](p.Shape())
		}
	}
	return state
}
