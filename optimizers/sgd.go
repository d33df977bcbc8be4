package optimizers

import (
	"runtime"

	"github.com/fredyulie123/deep-machine-learning/utils"
)

type sgd struct {
	momentum float64

	velocities [][]float64
}

// SGD returns plain stochastic gradient descent, which implements seqnet.Optimizer. A momentum
// term can be added with Momentum; it defaults to 0.
func SGD() *sgd {
	return new(sgd)
}

// Momentum sets the velocity decay rate. Momentum will panic if given a value outside [0, 1).
func (s *sgd) Momentum(m float64) *sgd {
	if m < 0 || m >= 1 {
		panic("momentum must be in [0, 1)")
	}

	s.momentum = m
	return s
}

func (s *sgd) TypeString() string {
	return "sgd"
}

func (s *sgd) Register(size int) int {
	s.velocities = append(s.velocities, make([]float64, size))
	return len(s.velocities) - 1
}

func (s *sgd) Update(group int, params, grads []float64, learningRate float64) {
	vel := s.velocities[group]

	f := func(i int) {
		vel[i] = s.momentum*vel[i] - learningRate*grads[i]
		params[i] += vel[i]
	}

	opsPerThread, threadsPerCPU := runtime.NumCPU(), 1
	utils.MultiThread(0, len(params), f, opsPerThread, threadsPerCPU)
}
