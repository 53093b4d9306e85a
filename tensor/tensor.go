// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor types in Flint.
//
// Tensors are dense, row-major, and generic over the element type:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := tensor.Zeros[float64](tensor.Shape{1, 28, 28})
package tensor

import (
	"github.com/flintml/flint/internal/tensor"
)

// Float is a constraint for supported tensor element types.
// Supported types: float32, float64.
type Float = tensor.Float

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a dense row-major tensor with a fixed shape.
type Tensor[F Float] = tensor.Tensor[F]

// New creates a zero-filled tensor with the given shape.
func New[F Float](shape Shape) (*Tensor[F], error) {
	return tensor.New[F](shape)
}

// Zeros creates a zero-filled tensor and panics on an invalid shape.
func Zeros[F Float](shape Shape) *Tensor[F] {
	return tensor.Zeros[F](shape)
}

// Full creates a tensor with every element set to value.
func Full[F Float](shape Shape, value F) *Tensor[F] {
	return tensor.Full(shape, value)
}

// FromSlice creates a tensor backed by a copy of data.
func FromSlice[F Float](data []F, shape Shape) (*Tensor[F], error) {
	return tensor.FromSlice(data, shape)
}
