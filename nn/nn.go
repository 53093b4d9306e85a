// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for building and evaluating networks
// in Flint.
//
// A network is an ordered sequence of layers (Dense, Conv2D, Pool2D) with
// weight and bias tensors sampled from an initialization distribution:
//
//	net, err := nn.New[float32]([]nn.Layer{
//	    nn.Conv2D{InChannels: 1, OutChannels: 6, KernelSize: 5, Stride: 1, Activation: nn.ReLU},
//	    nn.Pool2D{KernelSize: 2, Stride: 2, Op: nn.MaxPool},
//	    nn.Dense{In: 6 * 12 * 12, Out: 10, Activation: nn.Softmax},
//	}, nn.Xavier{FanIn: 25, FanOut: 150})
//
//	out, err := net.Forward(input)
//
// Gradients come from an external oracle (see GradientOracle); the package
// does not implement backpropagation. Configure an update rule from the
// optim package with SetOptimizer, then apply steps with Update.
package nn

import (
	"github.com/flintml/flint/internal/nn"
	"github.com/flintml/flint/internal/tensor"
)

// Error kinds raised by the core. Match with errors.Is.
var (
	// ErrConfiguration reports an invalid network or optimizer configuration.
	ErrConfiguration = nn.ErrConfiguration
	// ErrDimension reports a tensor shape problem observable only at run time.
	ErrDimension = nn.ErrDimension
)

// Layer describes one layer's shape and kind. The set of implementations
// is closed: Dense, Conv2D, Pool2D.
type Layer = nn.Layer

// Dense is a fully-connected layer.
type Dense = nn.Dense

// Conv2D is a 2-D convolutional layer with square kernels.
type Conv2D = nn.Conv2D

// Pool2D is a parameter-free sliding-window reduction per channel.
type Pool2D = nn.Pool2D

// Activation selects the elementwise function applied after a Dense or
// Conv2D layer.
type Activation = nn.Activation

// Supported activation functions.
const (
	Identity Activation = nn.Identity
	Sigmoid  Activation = nn.Sigmoid
	ReLU     Activation = nn.ReLU
	Softmax  Activation = nn.Softmax
)

// PoolOp selects the window reduction applied by a Pool2D layer.
type PoolOp = nn.PoolOp

// Supported pooling operators.
const (
	MaxPool  PoolOp = nn.MaxPool
	MeanPool PoolOp = nn.MeanPool
)

// Distribution supplies the random samples used to initialize parameters.
type Distribution = nn.Distribution

// Uniform samples uniformly from [Low, High).
type Uniform = nn.Uniform

// Normal samples from a Gaussian with the given mean and standard deviation.
type Normal = nn.Normal

// Xavier samples from the Glorot uniform distribution.
type Xavier = nn.Xavier

// Constant always returns Value.
type Constant = nn.Constant

// Network is an ordered sequence of layers together with their parameter
// tensors and, once configured, one optimizer.
type Network[F tensor.Float] = nn.Network[F]

// Optimizer applies one parameter-update step. Implementations live in
// the optim package.
type Optimizer[F tensor.Float] = nn.Optimizer[F]

// Loss scores a prediction against a target.
type Loss[F tensor.Float] = nn.Loss[F]

// GradientOracle computes per-parameter gradients for a given loss and
// sample. The core depends on it but never implements it.
type GradientOracle[F tensor.Float] = nn.GradientOracle[F]

// GradientFunc adapts a plain function to the GradientOracle interface.
type GradientFunc[F tensor.Float] = nn.GradientFunc[F]

// New constructs a network from the given layer sequence, sampling every
// weight and bias entry independently from dist.
func New[F tensor.Float](layers []Layer, dist Distribution) (*Network[F], error) {
	return nn.New[F](layers, dist)
}

// Step performs one full training round: it asks the oracle for gradients
// at the network's current parameters and applies them through the
// configured optimizer.
func Step[F tensor.Float](net *Network[F], oracle GradientOracle[F], loss Loss[F], x, y *tensor.Tensor[F]) error {
	return nn.Step(net, oracle, loss, x, y)
}
