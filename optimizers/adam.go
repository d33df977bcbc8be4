package optimizers

import (
	"math"
	"runtime"

	"github.com/fredyulie123/deep-machine-learning/utils"
)

type adamGroup struct {
	m, v []float64
	t    int
}

type adam struct {
	beta1, beta2, epsilon float64

	groups []*adamGroup
}

// Adam returns the adaptive-moment optimizer, which implements seqnet.Optimizer. The decay rates
// and epsilon default to the usual 0.9, 0.999, and 1e-8, and can be changed by Beta1, Beta2, and
// Epsilon before compilation.
func Adam() *adam {
	return &adam{beta1: 0.9, beta2: 0.999, epsilon: 1e-8}
}

// Beta1 sets the exponential decay rate of the first-moment estimates.
func (a *adam) Beta1(b float64) *adam {
	a.beta1 = b
	return a
}

// Beta2 sets the exponential decay rate of the second-moment estimates.
func (a *adam) Beta2(b float64) *adam {
	a.beta2 = b
	return a
}

// Epsilon sets the denominator fuzz term.
func (a *adam) Epsilon(e float64) *adam {
	a.epsilon = e
	return a
}

func (a *adam) TypeString() string {
	return "adam"
}

func (a *adam) Register(size int) int {
	a.groups = append(a.groups, &adamGroup{
		m: make([]float64, size),
		v: make([]float64, size),
	})

	return len(a.groups) - 1
}

func (a *adam) Update(group int, params, grads []float64, learningRate float64) {
	g := a.groups[group]
	g.t++

	// bias correction folded into the step size
	step := learningRate * math.Sqrt(1-math.Pow(a.beta2, float64(g.t))) / (1 - math.Pow(a.beta1, float64(g.t)))

	f := func(i int) {
		g.m[i] = a.beta1*g.m[i] + (1-a.beta1)*grads[i]
		g.v[i] = a.beta2*g.v[i] + (1-a.beta2)*grads[i]*grads[i]

		params[i] -= step * g.m[i] / (math.Sqrt(g.v[i]) + a.epsilon)
	}

	opsPerThread, threadsPerCPU := runtime.NumCPU(), 1
	utils.MultiThread(0, len(params), f, opsPerThread, threadsPerCPU)
}
