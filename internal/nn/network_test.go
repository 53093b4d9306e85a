package nn

import (
	"errors"
	"testing"

	"github.com/flintml/flint/internal/tensor"
)

func TestNewAllocatesParameterShapes(t *testing.T) {
	net, err := New[float32]([]Layer{
		Conv2D{InChannels: 1, OutChannels: 6, KernelSize: 5, Stride: 1, Activation: ReLU},
		Pool2D{KernelSize: 2, Stride: 2, Op: MaxPool},
		Dense{In: 864, Out: 10, Activation: Softmax},
	}, Uniform{Low: -0.1, High: 0.1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	weights := net.Weights()
	biases := net.Biases()

	if !weights[0].Shape().Equal(tensor.Shape{6, 1, 5, 5}) {
		t.Errorf("conv weight shape = %v, want [6 1 5 5]", weights[0].Shape())
	}
	if !biases[0].Shape().Equal(tensor.Shape{6}) {
		t.Errorf("conv bias shape = %v, want [6]", biases[0].Shape())
	}
	if weights[1] != nil || biases[1] != nil {
		t.Error("pool layer should have nil parameters")
	}
	if !weights[2].Shape().Equal(tensor.Shape{10, 864}) {
		t.Errorf("dense weight shape = %v, want [10 864]", weights[2].Shape())
	}
	if !biases[2].Shape().Equal(tensor.Shape{10}) {
		t.Errorf("dense bias shape = %v, want [10]", biases[2].Shape())
	}
}

func TestNewSamplesFromDistribution(t *testing.T) {
	net, err := New[float64]([]Layer{
		Dense{In: 3, Out: 2, Activation: Identity},
	}, Constant{Value: 0.5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, v := range net.Weights()[0].Data() {
		if v != 0.5 {
			t.Fatalf("weight = %v, want 0.5", v)
		}
	}
	for _, v := range net.Biases()[0].Data() {
		if v != 0.5 {
			t.Fatalf("bias = %v, want 0.5", v)
		}
	}
}

func TestNewConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
	}{
		{
			name:   "empty layer list",
			layers: nil,
		},
		{
			name: "dense size mismatch",
			layers: []Layer{
				Dense{In: 4, Out: 3, Activation: Identity},
				Dense{In: 5, Out: 2, Activation: Identity},
			},
		},
		{
			name: "conv channel mismatch",
			layers: []Layer{
				Conv2D{InChannels: 1, OutChannels: 4, KernelSize: 3, Stride: 1, Activation: ReLU},
				Conv2D{InChannels: 3, OutChannels: 8, KernelSize: 3, Stride: 1, Activation: ReLU},
			},
		},
		{
			name: "conv channel mismatch through pool",
			layers: []Layer{
				Conv2D{InChannels: 1, OutChannels: 4, KernelSize: 3, Stride: 1, Activation: ReLU},
				Pool2D{KernelSize: 2, Stride: 2, Op: MaxPool},
				Conv2D{InChannels: 2, OutChannels: 8, KernelSize: 3, Stride: 1, Activation: ReLU},
			},
		},
		{
			name: "conv after dense",
			layers: []Layer{
				Dense{In: 4, Out: 9, Activation: Identity},
				Conv2D{InChannels: 1, OutChannels: 1, KernelSize: 3, Stride: 1, Activation: ReLU},
			},
		},
		{
			name: "pool after dense",
			layers: []Layer{
				Dense{In: 4, Out: 9, Activation: Identity},
				Pool2D{KernelSize: 3, Stride: 1, Op: MeanPool},
			},
		},
		{
			name: "non-positive dense size",
			layers: []Layer{
				Dense{In: 0, Out: 3, Activation: Identity},
			},
		},
		{
			name: "unknown activation",
			layers: []Layer{
				Dense{In: 2, Out: 2, Activation: Activation(99)},
			},
		},
		{
			name: "unknown pool op",
			layers: []Layer{
				Pool2D{KernelSize: 2, Stride: 2, Op: PoolOp(7)},
			},
		},
		{
			name: "zero stride",
			layers: []Layer{
				Conv2D{InChannels: 1, OutChannels: 1, KernelSize: 3, Stride: 0, Activation: ReLU},
			},
		},
		{
			name: "negative padding",
			layers: []Layer{
				Pool2D{KernelSize: 2, Stride: 2, Padding: -1, Op: MaxPool},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[float32](tt.layers, Constant{Value: 0})
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("New = %v, want ErrConfiguration", err)
			}
		})
	}
}

// stepRecorder counts optimizer steps for update-dispatch tests.
type stepRecorder struct {
	calls int
}

func (s *stepRecorder) Step(weights, biases, gradW, gradB []*tensor.Tensor[float32]) error {
	s.calls++
	return nil
}

func (s *stepRecorder) LearningRate() float64 { return 0.01 }

func TestUpdateWithoutOptimizer(t *testing.T) {
	net, _ := New[float32]([]Layer{Dense{In: 2, Out: 2, Activation: Identity}}, Constant{Value: 1})
	err := net.Update(
		[]*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{2, 2})},
		[]*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{2})},
	)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Update without optimizer = %v, want ErrConfiguration", err)
	}
}

func TestUpdateGradientShapeValidation(t *testing.T) {
	net, _ := New[float32]([]Layer{
		Conv2D{InChannels: 1, OutChannels: 2, KernelSize: 3, Stride: 1, Padding: 1, Activation: ReLU},
		Pool2D{KernelSize: 2, Stride: 2, Op: MaxPool},
	}, Constant{Value: 1})

	rec := &stepRecorder{}
	net.SetOptimizer(rec)

	goodW := []*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{2, 1, 3, 3}), nil}
	goodB := []*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{2}), nil}

	tests := []struct {
		name  string
		gradW []*tensor.Tensor[float32]
		gradB []*tensor.Tensor[float32]
	}{
		{
			name:  "wrong slice length",
			gradW: goodW[:1],
			gradB: goodB,
		},
		{
			name:  "wrong weight shape",
			gradW: []*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{2, 1, 2, 2}), nil},
			gradB: goodB,
		},
		{
			name:  "wrong bias shape",
			gradW: goodW,
			gradB: []*tensor.Tensor[float32]{tensor.Zeros[float32](tensor.Shape{3}), nil},
		},
		{
			name:  "gradient for parameter-free layer",
			gradW: []*tensor.Tensor[float32]{goodW[0], tensor.Zeros[float32](tensor.Shape{1})},
			gradB: goodB,
		},
		{
			name:  "missing gradient",
			gradW: []*tensor.Tensor[float32]{nil, nil},
			gradB: goodB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := net.Update(tt.gradW, tt.gradB)
			if !errors.Is(err, ErrDimension) {
				t.Errorf("Update = %v, want ErrDimension", err)
			}
		})
	}
	if rec.calls != 0 {
		t.Errorf("optimizer stepped %d times on invalid gradients, want 0", rec.calls)
	}

	if err := net.Update(goodW, goodB); err != nil {
		t.Fatalf("Update with matching shapes: %v", err)
	}
	if rec.calls != 1 {
		t.Errorf("optimizer stepped %d times, want 1", rec.calls)
	}
}

func TestStepCallsOracleThenUpdate(t *testing.T) {
	net, _ := New[float32]([]Layer{Dense{In: 1, Out: 1, Activation: Identity}}, Constant{Value: 1})
	rec := &stepRecorder{}
	net.SetOptimizer(rec)

	oracle := GradientFunc[float32](func(weights, biases []*tensor.Tensor[float32], loss Loss[float32], x, y *tensor.Tensor[float32]) ([]*tensor.Tensor[float32], []*tensor.Tensor[float32], error) {
		gradW := []*tensor.Tensor[float32]{tensor.Zeros[float32](weights[0].Shape())}
		gradB := []*tensor.Tensor[float32]{tensor.Zeros[float32](biases[0].Shape())}
		return gradW, gradB, nil
	})

	x, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	y, _ := tensor.FromSlice([]float32{0}, tensor.Shape{1})
	if err := Step(net, oracle, nil, x, y); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if rec.calls != 1 {
		t.Errorf("optimizer stepped %d times, want 1", rec.calls)
	}

	if err := Step[float32](net, nil, nil, x, y); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Step with nil oracle = %v, want ErrConfiguration", err)
	}
}
