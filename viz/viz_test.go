package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fredyulie123/deep-machine-learning/metrics"
)

func requirePNG(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestTrajectory(t *testing.T) {
	features := [][]float64{
		{0.1, 0.5, 0.9},
		{0.2, 0.4, 0.8},
		{0.3, 0.3, 0.7},
		{0.4, 0.2, 0.6},
		{0, 0, 0},
	}
	survival := []float64{0.95, 0.9, 0.85, 0.8, 0.8}

	path := filepath.Join(t.TempDir(), "trajectory.png")
	require.NoError(t, Trajectory(path, features, survival))
	requirePNG(t, path)
}

func TestTrajectoryErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.png")

	require.Error(t, Trajectory(path, nil, nil))
	require.Error(t, Trajectory(path, [][]float64{{1}}, []float64{0.5, 0.5}))
}

func TestROCOverlay(t *testing.T) {
	good, err := metrics.ROC([]float64{0.1, 0.2, 0.8, 0.9}, []bool{false, false, true, true})
	require.NoError(t, err)

	poor, err := metrics.ROC([]float64{0.1, 0.9, 0.2, 0.8}, []bool{true, false, false, true})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roc.png")
	require.NoError(t, ROCOverlay(path, []NamedCurve{
		{Name: "LSTM", Curve: good},
		{Name: "PIM2", Curve: poor},
	}))
	requirePNG(t, path)
}

func TestROCOverlayErrors(t *testing.T) {
	require.Error(t, ROCOverlay(filepath.Join(t.TempDir(), "roc.png"), nil))
}
