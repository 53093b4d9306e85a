// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for Flint's parameter-update
// rules: SGD, Momentum, RMSProp and Adam.
//
// Each rule is configured with a typed Config struct whose zero values
// select documented defaults, and attached to a network with
// Network.SetOptimizer:
//
//	net.SetOptimizer(optim.NewRMSProp[float32](optim.RMSPropConfig{LR: 0.001}))
//	err := net.Update(gradW, gradB)
package optim

import (
	"github.com/flintml/flint/internal/optim"
	"github.com/flintml/flint/internal/tensor"
)

// SGD implements plain stochastic gradient descent.
type SGD[F tensor.Float] = optim.SGD[F]

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD[F tensor.Float](config SGDConfig) *SGD[F] {
	return optim.NewSGD[F](config)
}

// Momentum implements gradient descent with momentum.
type Momentum[F tensor.Float] = optim.Momentum[F]

// MomentumConfig holds configuration for the Momentum optimizer.
type MomentumConfig = optim.MomentumConfig

// NewMomentum creates a new Momentum optimizer.
func NewMomentum[F tensor.Float](config MomentumConfig) *Momentum[F] {
	return optim.NewMomentum[F](config)
}

// RMSProp implements root-mean-square propagation.
type RMSProp[F tensor.Float] = optim.RMSProp[F]

// RMSPropConfig holds configuration for the RMSProp optimizer.
type RMSPropConfig = optim.RMSPropConfig

// NewRMSProp creates a new RMSProp optimizer.
func NewRMSProp[F tensor.Float](config RMSPropConfig) *RMSProp[F] {
	return optim.NewRMSProp[F](config)
}

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
type Adam[F tensor.Float] = optim.Adam[F]

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam[F tensor.Float](config AdamConfig) *Adam[F] {
	return optim.NewAdam[F](config)
}
