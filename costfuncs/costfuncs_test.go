package costfuncs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryCrossEntropyCost(t *testing.T) {
	bce := BinaryCrossEntropy()

	require.InDelta(t, math.Ln2, bce.Cost([]float64{0.5}, []float64{1}), 1e-12)
	require.InDelta(t, math.Ln2, bce.Cost([]float64{0.5}, []float64{0}), 1e-12)

	// confident and correct is (near) free
	require.InDelta(t, 0, bce.Cost([]float64{1}, []float64{1}), 1e-6)

	// confident and wrong is finite thanks to clamping
	c := bce.Cost([]float64{0}, []float64{1})
	require.False(t, math.IsInf(c, 0))
	require.Greater(t, c, 10.0)

	// cost is averaged over the outputs
	avg := bce.Cost([]float64{0.5, 0.5}, []float64{1, 0})
	require.InDelta(t, math.Ln2, avg, 1e-12)
}

func TestBinaryCrossEntropyDerivs(t *testing.T) {
	bce := BinaryCrossEntropy()

	ds := bce.Derivs([]float64{0.7}, []float64{1})
	require.Len(t, ds, 1)
	require.Negative(t, ds[0])

	ds = bce.Derivs([]float64{0.7}, []float64{0})
	require.Positive(t, ds[0])

	// at p = 0.5, |dC/dp| = 1/(p(1-p)) * |p - y| = 2
	ds = bce.Derivs([]float64{0.5}, []float64{1})
	require.InDelta(t, -2, ds[0], 1e-12)
}

func TestMSE(t *testing.T) {
	mse := MSE()

	require.InDelta(t, 0.25, mse.Cost([]float64{0.5}, []float64{1}), 1e-12)
	require.InDelta(t, 0, mse.Cost([]float64{1, 0}, []float64{1, 0}), 1e-12)

	ds := mse.Derivs([]float64{0.5, 1}, []float64{1, 0})
	require.InDelta(t, -0.5, ds[0], 1e-12)
	require.InDelta(t, 1, ds[1], 1e-12)
}
