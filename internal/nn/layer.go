package nn

import "fmt"

// Layer describes one layer of a network: its kind, its shape parameters,
// and its activation or pooling function. Layers are pure data and
// immutable after construction; the forward pass dispatches on the
// concrete type with compile-time exhaustiveness.
//
// The variant set is closed: Dense, Conv2D and Pool2D are the only
// implementations.
type Layer interface {
	fmt.Stringer

	// validate checks the layer's own parameters (not its compatibility
	// with neighboring layers, which New checks).
	validate() error

	// sealed prevents implementations outside this package.
	sealed()
}

// Dense is a fully-connected layer: out = activation(W·in + b).
//
// If the previous layer produced a multi-channel spatial volume, its
// output is flattened to a single vector of length In before the matrix
// product.
type Dense struct {
	In         int // input vector length
	Out        int // output vector length
	Activation Activation
}

func (d Dense) sealed() {}

func (d Dense) validate() error {
	if d.In <= 0 || d.Out <= 0 {
		return fmt.Errorf("%w: dense layer sizes must be positive, got in=%d out=%d",
			ErrConfiguration, d.In, d.Out)
	}
	if !d.Activation.valid() {
		return fmt.Errorf("%w: unknown activation %d", ErrConfiguration, int(d.Activation))
	}
	return nil
}

// String returns a string representation of the layer.
func (d Dense) String() string {
	return fmt.Sprintf("Dense(in=%d, out=%d, activation=%s)", d.In, d.Out, d.Activation)
}

// Conv2D is a 2-D convolutional layer with square kernels.
//
// For every output channel it convolves each input channel with its own
// KernelSize×KernelSize kernel, sums the results, adds a per-channel
// bias scalar, and applies the activation per output feature map.
// Out-of-bounds positions introduced by Padding read as zero.
type Conv2D struct {
	InChannels  int
	OutChannels int
	KernelSize  int
	Stride      int
	Padding     int
	Activation  Activation
}

func (c Conv2D) sealed() {}

func (c Conv2D) validate() error {
	if c.InChannels <= 0 || c.OutChannels <= 0 {
		return fmt.Errorf("%w: conv2d channels must be positive, got in=%d out=%d",
			ErrConfiguration, c.InChannels, c.OutChannels)
	}
	if c.KernelSize <= 0 {
		return fmt.Errorf("%w: conv2d kernel size must be positive, got %d",
			ErrConfiguration, c.KernelSize)
	}
	if c.Stride <= 0 {
		return fmt.Errorf("%w: conv2d stride must be positive, got %d",
			ErrConfiguration, c.Stride)
	}
	if c.Padding < 0 {
		return fmt.Errorf("%w: conv2d padding must not be negative, got %d",
			ErrConfiguration, c.Padding)
	}
	if !c.Activation.valid() {
		return fmt.Errorf("%w: unknown activation %d", ErrConfiguration, int(c.Activation))
	}
	return nil
}

// String returns a string representation of the layer.
func (c Conv2D) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=%d, stride=%d, padding=%d, activation=%s)",
		c.InChannels, c.OutChannels, c.KernelSize, c.Stride, c.Padding, c.Activation)
}

// Pool2D is a parameter-free sliding-window reduction applied per
// channel. It uses the same output-geometry formula as Conv2D with
// KernelSize acting as the window size; no activation follows.
type Pool2D struct {
	KernelSize int
	Stride     int
	Padding    int
	Op         PoolOp
}

func (p Pool2D) sealed() {}

func (p Pool2D) validate() error {
	if p.KernelSize <= 0 {
		return fmt.Errorf("%w: pool2d kernel size must be positive, got %d",
			ErrConfiguration, p.KernelSize)
	}
	if p.Stride <= 0 {
		return fmt.Errorf("%w: pool2d stride must be positive, got %d",
			ErrConfiguration, p.Stride)
	}
	if p.Padding < 0 {
		return fmt.Errorf("%w: pool2d padding must not be negative, got %d",
			ErrConfiguration, p.Padding)
	}
	if !p.Op.valid() {
		return fmt.Errorf("%w: unknown pool op %d", ErrConfiguration, int(p.Op))
	}
	return nil
}

// String returns a string representation of the layer.
func (p Pool2D) String() string {
	return fmt.Sprintf("Pool2D(kernel_size=%d, stride=%d, padding=%d, op=%s)",
		p.KernelSize, p.Stride, p.Padding, p.Op)
}
