package optimizers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// minimize f(w) = (w - target)^2 and check convergence
func descend(t *testing.T, opt interface {
	Register(size int) int
	Update(group int, params, grads []float64, learningRate float64)
}, lr float64, iters int) {
	t.Helper()

	const target = 3.0

	group := opt.Register(1)
	params := []float64{0}
	grads := []float64{0}

	for i := 0; i < iters; i++ {
		grads[0] = 2 * (params[0] - target)
		opt.Update(group, params, grads, lr)
	}

	require.InDelta(t, target, params[0], 0.05)
}

func TestAdamConverges(t *testing.T) {
	descend(t, Adam(), 0.1, 300)
}

func TestSGDConverges(t *testing.T) {
	descend(t, SGD(), 0.05, 300)
}

func TestSGDMomentumConverges(t *testing.T) {
	descend(t, SGD().Momentum(0.9), 0.01, 300)
}

func TestAdamGroupsAreIndependent(t *testing.T) {
	a := Adam()

	g1 := a.Register(2)
	g2 := a.Register(3)
	require.NotEqual(t, g1, g2)

	p1 := []float64{1, 1}
	p2 := []float64{1, 1, 1}

	// only the updated group moves
	a.Update(g1, p1, []float64{1, 1}, 0.1)
	require.Equal(t, []float64{1, 1, 1}, p2)
	require.NotEqual(t, []float64{1, 1}, p1)
}

func TestAdamFirstStepSize(t *testing.T) {
	a := Adam()
	g := a.Register(1)

	params := []float64{0}
	a.Update(g, params, []float64{1}, 0.1)

	// with bias correction, the first step is almost exactly the learning rate
	require.InDelta(t, -0.1, params[0], 1e-6)
}

func TestSGDMomentumPanics(t *testing.T) {
	require.Panics(t, func() { SGD().Momentum(1) })
}
