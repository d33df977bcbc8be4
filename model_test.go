package seqnet_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	seqnet "github.com/fredyulie123/deep-machine-learning"
	"github.com/fredyulie123/deep-machine-learning/costfuncs"
	"github.com/fredyulie123/deep-machine-learning/hyperparams"
	"github.com/fredyulie123/deep-machine-learning/optimizers"
)

// sliceSupplier is a trivial in-memory SequenceSupplier for tests.
type sliceSupplier struct {
	inputs  [][][]float64
	targets [][]float64
}

func (s sliceSupplier) Len() int {
	return len(s.inputs)
}

func (s sliceSupplier) Sequence(i int) ([][]float64, []float64) {
	if s.targets == nil {
		return s.inputs[i], nil
	}
	return s.inputs[i], s.targets[i]
}

// toySequences builds a separable two-class dataset: sequences of constant high inputs labeled 1,
// constant low inputs labeled 0, with the last padTail timesteps zero-padded.
func toySequences(n, T, V, padTail int) sliceSupplier {
	s := sliceSupplier{
		inputs:  make([][][]float64, n),
		targets: make([][]float64, n),
	}

	for i := range s.inputs {
		label := float64(i % 2)
		level := 0.2 + 0.7*label

		s.inputs[i] = make([][]float64, T)
		s.targets[i] = make([]float64, T)
		for t := 0; t < T; t++ {
			row := make([]float64, V)
			if t < T-padTail {
				for j := range row {
					row[j] = level + 0.05*float64(j)
				}
			}
			s.inputs[i][t] = row
			s.targets[i][t] = label
		}
	}

	return s
}

func compiled(t *testing.T, inSize, hidden int, seed uint64) *seqnet.Model {
	t.Helper()

	m := seqnet.New(inSize, hidden).Seed(seed)
	require.NoError(t, m.Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()))
	return m
}

func TestPredictShapeAndBounds(t *testing.T) {
	const n, T, V = 6, 10, 3

	m := compiled(t, V, 8, 3)
	data := toySequences(n, T, V, 2)

	preds, err := m.Predict(data)
	require.NoError(t, err)

	require.Len(t, preds, n)
	for i := range preds {
		require.Len(t, preds[i], T)
		for ts := range preds[i] {
			require.Len(t, preds[i][ts], 1)

			p := preds[i][ts][0]
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestMaskedTimestepsCarryState(t *testing.T) {
	const T, V, padTail = 12, 4, 5

	m := compiled(t, V, 6, 7)
	data := toySequences(2, T, V, padTail)

	inputs, _ := data.Sequence(0)
	outs, err := m.PredictSequence(inputs)
	require.NoError(t, err)
	require.Len(t, outs, T)

	// the state does not change across padding, so neither does the output
	last := outs[T-padTail-1]
	for ts := T - padTail; ts < T; ts++ {
		require.InDelta(t, last, outs[ts], 1e-12)
	}
}

func TestFitReturnsDecreasingTrace(t *testing.T) {
	const n, T, V, epochs = 8, 6, 2, 40

	m := compiled(t, V, 8, 11)
	data := toySequences(n, T, V, 1)

	trace, err := m.Fit(seqnet.TrainArgs{
		Data:         data,
		BatchSize:    4,
		Epochs:       epochs,
		LearningRate: hyperparams.Constant(0.05),
		Shuffle:      true,
	})
	require.NoError(t, err)

	require.Len(t, trace, epochs)
	for _, c := range trace {
		require.False(t, c != c, "loss trace contains NaN")
	}
	require.Less(t, trace[epochs-1], trace[0])
}

func TestFitReportsProgress(t *testing.T) {
	m := compiled(t, 2, 4, 5)
	data := toySequences(4, 5, 2, 0)

	var epochs []int
	_, err := m.Fit(seqnet.TrainArgs{
		Data:         data,
		BatchSize:    2,
		Epochs:       3,
		LearningRate: hyperparams.Constant(0.01),
		OnEpoch: func(r seqnet.Result) {
			epochs = append(epochs, r.Epoch)
			require.Positive(t, r.Timesteps)
		},
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, epochs)
}

func TestDeterministicWithFixedSeed(t *testing.T) {
	const n, T, V = 6, 8, 3

	data := toySequences(n, T, V, 2)

	run := func() ([]float64, [][][]float64) {
		m := seqnet.New(V, 6).
			Dropout(0.3).
			RecurrentDropout(0.3).
			Seed(99)
		require.NoError(t, m.Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()))

		trace, err := m.Fit(seqnet.TrainArgs{
			Data:         data,
			BatchSize:    3,
			Epochs:       4,
			LearningRate: hyperparams.Constant(0.02),
			Shuffle:      true,
		})
		require.NoError(t, err)

		preds, err := m.Predict(data)
		require.NoError(t, err)
		return trace, preds
	}

	trace1, preds1 := run()
	trace2, preds2 := run()

	require.Equal(t, trace1, trace2)
	require.Equal(t, preds1, preds2)
}

func TestFitArgumentValidation(t *testing.T) {
	data := toySequences(2, 3, 2, 0)

	t.Run("not compiled", func(t *testing.T) {
		m := seqnet.New(2, 4)
		_, err := m.Fit(seqnet.TrainArgs{Data: data, BatchSize: 1, Epochs: 1, LearningRate: hyperparams.Constant(0.1)})
		require.ErrorIs(t, err, seqnet.ErrNotCompiled)
	})

	m := compiled(t, 2, 4, 1)

	t.Run("nil data", func(t *testing.T) {
		_, err := m.Fit(seqnet.TrainArgs{BatchSize: 1, Epochs: 1, LearningRate: hyperparams.Constant(0.1)})
		require.Error(t, err)
	})

	t.Run("bad batch size", func(t *testing.T) {
		_, err := m.Fit(seqnet.TrainArgs{Data: data, Epochs: 1, LearningRate: hyperparams.Constant(0.1)})
		require.Error(t, err)
	})

	t.Run("bad epochs", func(t *testing.T) {
		_, err := m.Fit(seqnet.TrainArgs{Data: data, BatchSize: 1, LearningRate: hyperparams.Constant(0.1)})
		require.Error(t, err)
	})

	t.Run("nil schedule", func(t *testing.T) {
		_, err := m.Fit(seqnet.TrainArgs{Data: data, BatchSize: 1, Epochs: 1})
		require.Error(t, err)
	})
}

func TestConstructionErrors(t *testing.T) {
	t.Run("bad dropout", func(t *testing.T) {
		m := seqnet.New(2, 2).Dropout(1.5)
		require.Error(t, m.Error())
		require.Error(t, m.Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()))
	})

	t.Run("bad sizes", func(t *testing.T) {
		require.Error(t, seqnet.New(0, 2).Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()))
		require.Error(t, seqnet.New(2, 0).Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()))
	})

	t.Run("compile twice", func(t *testing.T) {
		m := compiled(t, 2, 2, 1)
		require.ErrorIs(t, m.Compile(costfuncs.BinaryCrossEntropy(), optimizers.Adam()), seqnet.ErrCompiledTwice)
	})

	t.Run("nil cost function", func(t *testing.T) {
		require.Error(t, seqnet.New(2, 2).Compile(nil, optimizers.Adam()))
	})

	t.Run("input width mismatch", func(t *testing.T) {
		m := compiled(t, 3, 2, 1)
		_, err := m.PredictSequence([][]float64{{1, 2}})
		require.Error(t, err)
	})
}
