package initializers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniformRange(t *testing.T) {
	ws := make([]float64, 1000)
	Uniform().Range(-0.5, 0.5).Seed(1).Set(ws, 10, 10)

	for _, w := range ws {
		require.NotZero(t, w)
		require.GreaterOrEqual(t, w, -0.5)
		require.LessOrEqual(t, w, 0.5)
	}
}

func TestScaledUniformBounds(t *testing.T) {
	const fanIn = 20

	ws := make([]float64, 1000)
	ScaledUniform().Seed(1).Set(ws, fanIn, 5)

	for _, w := range ws {
		require.GreaterOrEqual(t, w, -1.0/fanIn)
		require.LessOrEqual(t, w, 1.0/fanIn)
	}
}

func TestVarianceScalingDeterministic(t *testing.T) {
	set := func() []float64 {
		ws := make([]float64, 100)
		VarianceScaling().Seed(7).Set(ws, 30, 10)
		return ws
	}

	require.Equal(t, set(), set())
}

func TestVarianceScalingModes(t *testing.T) {
	// a huge fan-in should shrink "in"-mode weights well below "out"-mode ones
	spread := func(v *varianceScaling) float64 {
		ws := make([]float64, 500)
		v.Seed(3).Set(ws, 10000, 4)

		var ss float64
		for _, w := range ws {
			ss += w * w
		}
		return ss / float64(len(ws))
	}

	require.Less(t, spread(VarianceScaling().In()), spread(VarianceScaling().Out()))
}

func TestConstantAndZeros(t *testing.T) {
	ws := []float64{1, 2, 3}
	Zeros().Set(ws, 3, 3)
	require.Equal(t, []float64{0, 0, 0}, ws)

	Constant(1.5).Set(ws, 3, 3)
	require.Equal(t, []float64{1.5, 1.5, 1.5}, ws)
}

func TestSetDefault(t *testing.T) {
	require.Error(t, SetDefault("no-such-value", 1))
	require.NoError(t, SetDefault("uniform-lower", -1))
	require.Panics(t, func() { SetDefault_Lazy("no-such-value", 1) })
}

func TestTruncNormalStaysWithinTruncation(t *testing.T) {
	rng := TruncNormalRNG()
	rng.Seed(5)

	for i := 0; i < 1000; i++ {
		v := rng.Gen()
		require.GreaterOrEqual(t, v, -2.0)
		require.LessOrEqual(t, v, 2.0)
	}
}
