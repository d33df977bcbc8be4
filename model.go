package seqnet

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Model is a masked recurrent sequence model: padded timesteps are skipped, a single LSTM layer
// carries state across the sequence, and a time-distributed dense projection with a sigmoid
// activation emits one probability per timestep.
type Model struct {
	inSize, hidden int

	maskValue  float64
	dropout    float64
	recDropout float64
	seed       uint64

	kernelInit    Initializer
	recurrentInit Initializer

	cell  *lstmCell
	dense *denseHead

	cf  CostFunction
	opt Optimizer
	rng *rand.Rand

	compiled bool
	err      error
}

// New returns an uncompiled Model with the given input and hidden widths. Invalid widths are
// reported by Compile, so construction can be chained.
func New(inputSize, hiddenSize int) *Model {
	m := new(Model)
	m.inSize = inputSize
	m.hidden = hiddenSize
	m.seed = 1

	if inputSize < 1 {
		m.setError(errors.Errorf("Model must have input size >= 1 (%d)", inputSize))
	} else if hiddenSize < 1 {
		m.setError(errors.Errorf("Model must have hidden size >= 1 (%d)", hiddenSize))
	}

	return m
}

// setError records the first construction error encountered; later errors are dropped so that
// Compile reports the root cause.
func (m *Model) setError(e error) {
	if m.err == nil {
		m.err = e
	}
}

// Error returns any errors encountered while configuring the Model. This method will always
// return nil after the Model has been successfully compiled.
func (m *Model) Error() error {
	return m.err
}

// MaskValue sets the sentinel marking padded or missing timesteps. A timestep is masked iff every
// input variable equals the sentinel; masked timesteps are excluded from the recurrent
// computation and from the training loss. The default sentinel is 0.
func (m *Model) MaskValue(v float64) *Model {
	m.maskValue = v
	return m
}

// Dropout sets the fraction of input connections dropped during training. The fraction must be
// in [0, 1).
func (m *Model) Dropout(frac float64) *Model {
	if frac < 0 || frac >= 1 {
		m.setError(errors.Errorf("Dropout fraction must be in [0, 1) (%g)", frac))
		return m
	}

	m.dropout = frac
	return m
}

// RecurrentDropout sets the fraction of recurrent-state connections dropped during training. The
// fraction must be in [0, 1).
func (m *Model) RecurrentDropout(frac float64) *Model {
	if frac < 0 || frac >= 1 {
		m.setError(errors.Errorf("Recurrent dropout fraction must be in [0, 1) (%g)", frac))
		return m
	}

	m.recDropout = frac
	return m
}

// Seed sets the seed for the Model's internal source, which drives the fallback weight
// initialization, dropout masks, and training-time shuffling. Fixing the seed (and the seeds of
// any explicit Initializers) makes Fit and Predict deterministic.
func (m *Model) Seed(s uint64) *Model {
	m.seed = s
	return m
}

// KernelInit sets the Initializer for the input-to-hidden weights. If unset, weights fall back to
// uniform values scaled by fan-in, drawn from the Model's own source.
func (m *Model) KernelInit(init Initializer) *Model {
	if init == nil {
		m.setError(NilArgError{"KernelInit Initializer"})
		return m
	}

	m.kernelInit = init
	return m
}

// RecurrentInit sets the Initializer for the hidden-to-hidden weights, with the same fallback as
// KernelInit.
func (m *Model) RecurrentInit(init Initializer) *Model {
	if init == nil {
		m.setError(NilArgError{"RecurrentInit Initializer"})
		return m
	}

	m.recurrentInit = init
	return m
}

// InputSize returns the number of input variables expected at each timestep.
func (m *Model) InputSize() int {
	return m.inSize
}

// HiddenSize returns the width of the LSTM layer.
func (m *Model) HiddenSize() int {
	return m.hidden
}

// Compile finishes construction of the Model: weights are initialized, parameter groups are
// registered with the Optimizer, and any error accumulated during configuration is returned.
// Compile must be called exactly once, before Fit or Predict.
func (m *Model) Compile(cf CostFunction, opt Optimizer) error {
	if m.err != nil {
		return m.err
	} else if m.compiled {
		return ErrCompiledTwice
	} else if cf == nil {
		return NilArgError{"CostFunction"}
	} else if opt == nil {
		return NilArgError{"Optimizer"}
	}

	m.cf = cf
	m.opt = opt
	m.rng = rand.New(rand.NewSource(m.seed))

	m.cell = newLSTMCell(m.inSize, m.hidden)
	m.cell.initWeights(m.initOrFallback(m.kernelInit), m.initOrFallback(m.recurrentInit))
	m.cell.register(opt)

	m.dense = newDenseHead(m.hidden)
	m.dense.initWeights(m.initOrFallback(m.kernelInit))
	m.dense.register(opt)

	m.compiled = true
	return nil
}

// fallbackInit mirrors the classic layer default: uniform weights in ±1/fan-in.
type fallbackInit struct {
	rng *rand.Rand
}

func (f fallbackInit) Set(ws []float64, fanIn, fanOut int) {
	for i := range ws {
		ws[i] = (2*f.rng.Float64() - 1) / float64(fanIn)
	}
}

func (m *Model) initOrFallback(init Initializer) Initializer {
	if init != nil {
		return init
	}

	return fallbackInit{m.rng}
}

// PredictSequence runs forward inference over a single sequence, returning one probability per
// timestep. Dropout is disabled. The inputs are indexed as [timestep][variable]; each timestep
// must have exactly InputSize values.
func (m *Model) PredictSequence(inputs [][]float64) ([]float64, error) {
	if !m.compiled {
		return nil, ErrNotCompiled
	}

	st, err := m.newState(inputs, false)
	if err != nil {
		return nil, err
	}

	for t := range inputs {
		m.cell.step(st, t)
	}

	outs := make([]float64, len(inputs))
	for t := range outs {
		outs[t] = m.dense.forward(st.h[t])
	}

	return outs, nil
}

// Predict runs forward inference over every sequence of the supplier. The result is indexed as
// [sequence][timestep][0], matching the (encounters, timesteps, 1) layout of the label tensors.
func (m *Model) Predict(data SequenceSupplier) ([][][]float64, error) {
	if !m.compiled {
		return nil, ErrNotCompiled
	} else if data == nil {
		return nil, NilArgError{"SequenceSupplier"}
	} else if data.Len() == 0 {
		return nil, ErrEmptyData
	}

	preds := make([][][]float64, data.Len())
	for i := range preds {
		inputs, _ := data.Sequence(i)

		outs, err := m.PredictSequence(inputs)
		if err != nil {
			return nil, errors.Wrapf(err, "Inference on sequence %d failed", i)
		}

		preds[i] = make([][]float64, len(outs))
		for t := range outs {
			preds[i][t] = []float64{outs[t]}
		}
	}

	return preds, nil
}

// newState checks the sequence against the Model's dimensions and prepares the per-sequence
// caches. Dropout masks are drawn only when training.
func (m *Model) newState(inputs [][]float64, train bool) (*seqState, error) {
	for t := range inputs {
		if len(inputs[t]) != m.inSize {
			return nil, SizeMismatchError{m.inSize, len(inputs[t]), "inputs"}
		}
	}

	st := m.cell.newState(inputs, m.maskValue)

	if train {
		st.xDrop = dropMask(m.inSize, m.dropout, m.rng)
		st.hDrop = dropMask(m.hidden, m.recDropout, m.rng)
	}

	return st, nil
}

// dropMask returns an inverted-dropout mask: kept connections are scaled by 1/(1-frac) so that
// inference needs no rescaling. A nil mask means identity.
func dropMask(size int, frac float64, rng *rand.Rand) []float64 {
	if frac == 0 {
		return nil
	}

	scale := 1 / (1 - frac)
	mask := make([]float64, size)
	for i := range mask {
		if rng.Float64() >= frac {
			mask[i] = scale
		}
	}

	return mask
}
