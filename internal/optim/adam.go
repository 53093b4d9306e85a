package optim

import (
	"math"

	"github.com/flintml/flint/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule, per step t:
//
//	m_t   = beta1 * m_{t-1} + (1-beta1) * gradient       // first moment
//	v_t   = beta2 * v_{t-1} + (1-beta2) * gradient²      // second moment
//	m_hat = m_t / (1 - beta1^t)                          // bias correction
//	v_hat = v_t / (1 - beta2^t)
//	param = param - stepSize * m_hat / (sqrt(v_hat) + eps)
//
// The step counter t starts at zero and increments once per Step call, so
// the bias correction weakens as training progresses.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014).
type Adam[F tensor.Float] struct {
	stepSize float64
	beta1    float64
	beta2    float64
	eps      float64
	t        int // Timestep for bias correction

	mW []*tensor.Tensor[F] // First moment estimates
	vW []*tensor.Tensor[F] // Second moment estimates
	mB []*tensor.Tensor[F]
	vB []*tensor.Tensor[F]
}

// AdamConfig holds configuration for the Adam optimizer.
// Zero values select the defaults.
type AdamConfig struct {
	StepSize float64 // Step size (default: 0.01)
	Beta1    float64 // First moment decay (default: 0.9)
	Beta2    float64 // Second moment decay (default: 0.999)
	Eps      float64 // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer. Moment estimates are allocated on
// the first Step, shaped like the network's parameters, starting at zero.
func NewAdam[F tensor.Float](config AdamConfig) *Adam[F] {
	if config.StepSize == 0 {
		config.StepSize = 0.01
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &Adam[F]{
		stepSize: config.StepSize,
		beta1:    config.Beta1,
		beta2:    config.Beta2,
		eps:      config.Eps,
	}
}

// Step applies one Adam update to every parameter tensor.
func (a *Adam[F]) Step(weights, biases, gradW, gradB []*tensor.Tensor[F]) error {
	a.mW = ensureState(a.mW, weights)
	a.vW = ensureState(a.vW, weights)
	a.mB = ensureState(a.mB, biases)
	a.vB = ensureState(a.vB, biases)

	a.t++
	correction1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	correction2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	for i := range weights {
		if weights[i] == nil {
			continue
		}
		a.apply(weights[i], gradW[i], a.mW[i], a.vW[i], correction1, correction2)
		a.apply(biases[i], gradB[i], a.mB[i], a.vB[i], correction1, correction2)
	}
	return nil
}

func (a *Adam[F]) apply(param, grad, m, v *tensor.Tensor[F], correction1, correction2 float64) {
	p := param.Data()
	gd := grad.Data()
	md := m.Data()
	vd := v.Data()
	for i := range p {
		g := float64(gd[i])

		mNew := a.beta1*float64(md[i]) + (1.0-a.beta1)*g
		vNew := a.beta2*float64(vd[i]) + (1.0-a.beta2)*g*g
		md[i] = F(mNew)
		vd[i] = F(vNew)

		mHat := mNew / correction1
		vHat := vNew / correction2
		p[i] -= F(a.stepSize * mHat / (math.Sqrt(vHat) + a.eps))
	}
}

// LearningRate returns the step size.
func (a *Adam[F]) LearningRate() float64 {
	return a.stepSize
}

// Timestep returns the number of Step calls applied so far.
func (a *Adam[F]) Timestep() int {
	return a.t
}

// Moments returns the per-layer first and second moment estimates for
// weights and biases, or nil slices before the first Step.
func (a *Adam[F]) Moments() (mW, vW, mB, vB []*tensor.Tensor[F]) {
	return a.mW, a.vW, a.mB, a.vB
}
