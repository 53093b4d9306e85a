package nn

import (
	"fmt"

	"github.com/flintml/flint/internal/tensor"
)

// Forward runs inference: it propagates input through every layer in
// order and returns the final activation.
//
// The input is either a vector with shape {n} (feeding a Dense layer) or
// a channel volume with shape {channels, height, width} (feeding a
// spatial layer). Forward has no side effects: it never mutates the
// input, the parameters, or the optimizer state, and is safely
// re-callable.
func (n *Network[F]) Forward(input *tensor.Tensor[F]) (*tensor.Tensor[F], error) {
	if input == nil {
		return nil, fmt.Errorf("%w: nil input", ErrDimension)
	}

	a := input
	for i, layer := range n.layers {
		var (
			out *tensor.Tensor[F]
			err error
		)
		switch l := layer.(type) {
		case Dense:
			out, err = denseForward(l, n.weights[i], n.biases[i], a)
		case Conv2D:
			out, err = convForward(l, n.weights[i], n.biases[i], a)
		case Pool2D:
			out, err = poolForward(l, a)
		}
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, layer, err)
		}
		a = out
	}
	return a, nil
}

// featureMapSize computes one spatial output dimension:
//
//	out = (in - kernel + 2*padding)/stride + 1
//
// The dividend must be non-negative and divisible by the stride; a
// fractional feature-map size is an ErrDimension.
func featureMapSize(in, kernel, padding, stride int) (int, error) {
	span := in - kernel + 2*padding
	if span < 0 {
		return 0, fmt.Errorf("%w: kernel %d larger than padded input %d", ErrDimension, kernel, in+2*padding)
	}
	if span%stride != 0 {
		return 0, fmt.Errorf("%w: (%d - %d + 2*%d) not divisible by stride %d",
			ErrDimension, in, kernel, padding, stride)
	}
	return span/stride + 1, nil
}

// denseForward computes activation(W·a + b), flattening a spatial volume
// into a single vector first.
func denseForward[F tensor.Float](l Dense, w, b, a *tensor.Tensor[F]) (*tensor.Tensor[F], error) {
	rank := len(a.Shape())
	if rank != 1 && rank != 3 {
		return nil, fmt.Errorf("%w: dense layer expects a vector or channel volume, got shape %v",
			ErrDimension, a.Shape())
	}
	// A {channels, h, w} volume is already stored flat in row-major order,
	// so flattening is just a length check.
	if a.NumElements() != l.In {
		return nil, fmt.Errorf("%w: dense layer expects %d inputs, got %d (shape %v)",
			ErrDimension, l.In, a.NumElements(), a.Shape())
	}

	in := a.Data()
	weights := w.Data()
	bias := b.Data()

	out := tensor.Zeros[F](tensor.Shape{l.Out})
	outData := out.Data()
	for o := 0; o < l.Out; o++ {
		sum := bias[o]
		row := weights[o*l.In : (o+1)*l.In]
		for i, x := range in {
			sum += row[i] * x
		}
		outData[o] = sum
	}

	applyActivation(l.Activation, outData)
	return out, nil
}

// convForward computes the 2-D convolution of a channel volume via direct
// sliding-window accumulation, with zero padding for out-of-bounds
// positions, then applies the activation per output feature map.
func convForward[F tensor.Float](l Conv2D, w, b, a *tensor.Tensor[F]) (*tensor.Tensor[F], error) {
	shape := a.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: conv2d expects a {channels, h, w} volume, got shape %v",
			ErrDimension, shape)
	}
	channels, height, width := shape[0], shape[1], shape[2]
	if channels != l.InChannels {
		return nil, fmt.Errorf("%w: conv2d expects %d input channels, got %d",
			ErrDimension, l.InChannels, channels)
	}

	outH, err := featureMapSize(height, l.KernelSize, l.Padding, l.Stride)
	if err != nil {
		return nil, err
	}
	outW, err := featureMapSize(width, l.KernelSize, l.Padding, l.Stride)
	if err != nil {
		return nil, err
	}

	in := a.Data()
	kernels := w.Data() // {out_channels, in_channels, k, k} row-major
	bias := b.Data()
	k := l.KernelSize

	out := tensor.Zeros[F](tensor.Shape{l.OutChannels, outH, outW})
	outData := out.Data()

	for v := 0; v < l.OutChannels; v++ {
		for m := 0; m < outH; m++ {
			hStart := m*l.Stride - l.Padding
			for nIdx := 0; nIdx < outW; nIdx++ {
				wStart := nIdx*l.Stride - l.Padding

				sum := bias[v]
				for i := 0; i < l.InChannels; i++ {
					kernelBase := (v*l.InChannels + i) * k * k
					for kh := 0; kh < k; kh++ {
						h := hStart + kh
						if h < 0 || h >= height {
							continue // zero-padded row
						}
						for kw := 0; kw < k; kw++ {
							wPos := wStart + kw
							if wPos < 0 || wPos >= width {
								continue // zero-padded column
							}
							sum += kernels[kernelBase+kh*k+kw] * in[i*height*width+h*width+wPos]
						}
					}
				}
				outData[v*outH*outW+m*outW+nIdx] = sum
			}
		}
	}

	// Activation per output feature map (softmax normalizes each map).
	for v := 0; v < l.OutChannels; v++ {
		applyActivation(l.Activation, outData[v*outH*outW:(v+1)*outH*outW])
	}
	return out, nil
}

// poolForward slides the pooling window over each channel independently.
// Zero padding contributes zeros to the window; no activation follows.
func poolForward[F tensor.Float](l Pool2D, a *tensor.Tensor[F]) (*tensor.Tensor[F], error) {
	shape := a.Shape()
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: pool2d expects a {channels, h, w} volume, got shape %v",
			ErrDimension, shape)
	}
	channels, height, width := shape[0], shape[1], shape[2]

	outH, err := featureMapSize(height, l.KernelSize, l.Padding, l.Stride)
	if err != nil {
		return nil, err
	}
	outW, err := featureMapSize(width, l.KernelSize, l.Padding, l.Stride)
	if err != nil {
		return nil, err
	}

	in := a.Data()
	k := l.KernelSize

	out := tensor.Zeros[F](tensor.Shape{channels, outH, outW})
	outData := out.Data()
	window := make([]F, k*k)

	for c := 0; c < channels; c++ {
		for m := 0; m < outH; m++ {
			hStart := m*l.Stride - l.Padding
			for nIdx := 0; nIdx < outW; nIdx++ {
				wStart := nIdx*l.Stride - l.Padding

				idx := 0
				for kh := 0; kh < k; kh++ {
					h := hStart + kh
					for kw := 0; kw < k; kw++ {
						wPos := wStart + kw
						if h >= 0 && h < height && wPos >= 0 && wPos < width {
							window[idx] = in[c*height*width+h*width+wPos]
						} else {
							window[idx] = 0
						}
						idx++
					}
				}
				outData[c*outH*outW+m*outW+nIdx] = reduceWindow(l.Op, window)
			}
		}
	}
	return out, nil
}
