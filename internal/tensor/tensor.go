// Package tensor provides the core tensor types for the Flint library.
package tensor

import "fmt"

// Float is a constraint for supported tensor element types.
// It uses Go generics to ensure compile-time type safety: a network built
// over float32 can never be mixed with float64 gradients.
type Float interface {
	~float32 | ~float64
}

// Tensor is a dense row-major tensor with a fixed shape.
//
// The element type F is chosen once when the tensor is created and carried
// through the whole network. Data is stored flat; multi-dimensional access
// goes through the row-major stride arithmetic in Shape.ComputeStrides.
type Tensor[F Float] struct {
	data  []F
	shape Shape
}

// New creates a zero-filled tensor with the given shape.
// Returns an error if the shape has non-positive dimensions.
func New[F Float](shape Shape) (*Tensor[F], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Tensor[F]{
		data:  make([]F, shape.NumElements()),
		shape: shape.Clone(),
	}, nil
}

// Zeros creates a zero-filled tensor and panics on an invalid shape.
//
// Intended for call sites where the shape is statically known to be valid
// (optimizer accumulators, test fixtures).
func Zeros[F Float](shape Shape) *Tensor[F] {
	t, err := New[F](shape)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return t
}

// Full creates a tensor with every element set to value.
func Full[F Float](shape Shape, value F) *Tensor[F] {
	t := Zeros[F](shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// FromSlice creates a tensor backed by a copy of data.
// Returns an error if len(data) does not match the shape's element count.
func FromSlice[F Float](data []F, shape Shape) (*Tensor[F], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := &Tensor[F]{
		data:  make([]F, len(data)),
		shape: shape.Clone(),
	}
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor[F]) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor[F]) NumElements() int {
	return len(t.data)
}

// Data returns the flat row-major element slice.
//
// The slice aliases the tensor's storage: writes through it mutate the
// tensor. The optimizer uses this for in-place parameter updates.
func (t *Tensor[F]) Data() []F {
	return t.data
}

// Clone returns a deep copy of the tensor.
func (t *Tensor[F]) Clone() *Tensor[F] {
	c := &Tensor[F]{
		data:  make([]F, len(t.data)),
		shape: t.shape.Clone(),
	}
	copy(c.data, t.data)
	return c
}

// String returns a compact description of the tensor.
func (t *Tensor[F]) String() string {
	return fmt.Sprintf("Tensor(shape=%v, elements=%d)", t.shape, len(t.data))
}
