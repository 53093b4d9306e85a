package nn

import "errors"

// Error kinds raised by the core.
//
// Both are raised synchronously at the call where the invalid state is
// first observable; no call leaves the network partially mutated.
var (
	// ErrConfiguration reports an invalid network or optimizer
	// configuration: incompatible consecutive layer shapes, unknown
	// activation or pooling function, missing optimizer.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDimension reports a tensor shape problem that is only observable
	// at run time: a padding/stride/kernel combination yielding a
	// non-integer feature-map size, or gradient tensors whose shapes do
	// not match the network's parameters.
	ErrDimension = errors.New("dimension mismatch")
)
