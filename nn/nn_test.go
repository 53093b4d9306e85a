// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/nn"
	"github.com/flintml/flint/optim"
	"github.com/flintml/flint/tensor"
)

// TestLeNetStyleForward drives a small convolutional stack end to end
// through the public API.
func TestLeNetStyleForward(t *testing.T) {
	net, err := nn.New[float32]([]nn.Layer{
		nn.Conv2D{InChannels: 1, OutChannels: 4, KernelSize: 5, Stride: 1, Activation: nn.ReLU},
		nn.Pool2D{KernelSize: 2, Stride: 2, Op: nn.MaxPool},
		nn.Conv2D{InChannels: 4, OutChannels: 8, KernelSize: 5, Stride: 1, Activation: nn.ReLU},
		nn.Pool2D{KernelSize: 2, Stride: 2, Op: nn.MaxPool},
		nn.Dense{In: 8 * 4 * 4, Out: 10, Activation: nn.Softmax},
	}, nn.Xavier{FanIn: 25, FanOut: 100})
	require.NoError(t, err)

	out, err := net.Forward(tensor.Zeros[float32](tensor.Shape{1, 28, 28}))
	require.NoError(t, err)
	assert.True(t, out.Shape().Equal(tensor.Shape{10}), "output shape %v", out.Shape())

	var sum float32
	for _, v := range out.Data() {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-5, "softmax output should sum to 1")
}

// analyticOracle computes exact gradients for a bias-free 1x1 identity
// Dense layer under squared error: d/dw (w·x - y)² = 2(w·x - y)·x.
// It stands in for the external differentiation mechanism.
func analyticOracle() nn.GradientFunc[float64] {
	return func(weights, biases []*tensor.Tensor[float64], loss nn.Loss[float64], x, y *tensor.Tensor[float64]) ([]*tensor.Tensor[float64], []*tensor.Tensor[float64], error) {
		w := weights[0].Data()[0]
		b := biases[0].Data()[0]
		pred := w*x.Data()[0] + b
		residual := 2 * (pred - y.Data()[0])

		gradW := tensor.Full[float64](tensor.Shape{1, 1}, residual*x.Data()[0])
		gradB := tensor.Full[float64](tensor.Shape{1}, residual)
		return []*tensor.Tensor[float64]{gradW}, []*tensor.Tensor[float64]{gradB}, nil
	}
}

// TestTrainingRoundConverges runs repeated oracle/update rounds with each
// optimizer on a one-parameter regression and checks the loss shrinks.
func TestTrainingRoundConverges(t *testing.T) {
	optimizers := map[string]func() nn.Optimizer[float64]{
		"sgd":      func() nn.Optimizer[float64] { return optim.NewSGD[float64](optim.SGDConfig{LR: 0.05}) },
		"momentum": func() nn.Optimizer[float64] { return optim.NewMomentum[float64](optim.MomentumConfig{LR: 0.02, Gamma: 0.9}) },
		"rmsprop":  func() nn.Optimizer[float64] { return optim.NewRMSProp[float64](optim.RMSPropConfig{LR: 0.05}) },
		"adam":     func() nn.Optimizer[float64] { return optim.NewAdam[float64](optim.AdamConfig{StepSize: 0.05}) },
	}

	x, err := tensor.FromSlice([]float64{1.0}, tensor.Shape{1})
	require.NoError(t, err)
	y, err := tensor.FromSlice([]float64{3.0}, tensor.Shape{1})
	require.NoError(t, err)

	squaredError := nn.Loss[float64](func(pred, target *tensor.Tensor[float64]) float64 {
		d := pred.Data()[0] - target.Data()[0]
		return d * d
	})

	for name, newOpt := range optimizers {
		t.Run(name, func(t *testing.T) {
			net, err := nn.New[float64]([]nn.Layer{
				nn.Dense{In: 1, Out: 1, Activation: nn.Identity},
			}, nn.Constant{Value: 0})
			require.NoError(t, err)
			net.SetOptimizer(newOpt())

			lossAt := func() float64 {
				pred, err := net.Forward(x)
				require.NoError(t, err)
				return squaredError(pred, y)
			}

			before := lossAt()
			oracle := analyticOracle()
			for i := 0; i < 200; i++ {
				require.NoError(t, nn.Step(net, oracle, squaredError, x, y))
			}
			after := lossAt()

			assert.Less(t, after, before, "loss should shrink")
			assert.Less(t, after, 0.1, "loss should approach zero")
		})
	}
}

// TestErrorKindsAreExported checks errors.Is matching through the facade.
func TestErrorKindsAreExported(t *testing.T) {
	_, err := nn.New[float32]([]nn.Layer{
		nn.Dense{In: 2, Out: 3, Activation: nn.Identity},
		nn.Dense{In: 4, Out: 1, Activation: nn.Identity},
	}, nn.Constant{Value: 0})
	assert.ErrorIs(t, err, nn.ErrConfiguration)

	net, err := nn.New[float32]([]nn.Layer{
		nn.Dense{In: 2, Out: 1, Activation: nn.Identity},
	}, nn.Constant{Value: 0})
	require.NoError(t, err)
	net.SetOptimizer(optim.NewSGD[float32](optim.SGDConfig{}))

	badW := []*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{3, 3})}
	goodB := []*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{1})}
	assert.ErrorIs(t, net.Update(badW, goodB), nn.ErrDimension)
}
