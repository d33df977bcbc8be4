package seqnet

import (
	"github.com/pkg/errors"
)

type TrainArgs struct {
	// Data is the source of training sequences.
	Data SequenceSupplier

	// BatchSize is the number of sequences whose gradients are averaged per optimizer step.
	// The final batch of an epoch may be smaller.
	BatchSize int

	// Epochs is the number of full passes over the training set.
	Epochs int

	// LearningRate provides the learning rate for each epoch.
	LearningRate Schedule

	// Shuffle re-orders the sequences at the start of every epoch, using the Model's seeded
	// source.
	Shuffle bool

	// OnEpoch is how training progress is reported. It can be left nil.
	OnEpoch func(Result)
}

// A wrapper for sending back the progress of the training
type Result struct {
	// The epoch the result is being sent after, starting at 1
	Epoch int

	// Average cost over the unmasked timesteps of the epoch, from the Model's CostFunction
	Cost float64

	// The number of unmasked timesteps that contributed to Cost
	Timesteps int
}

// Fit trains the Model and returns the per-epoch loss trace, whose length always equals
// args.Epochs. Gradients are accumulated over full sequences (backpropagation through time),
// averaged over the unmasked timesteps of each batch, and applied once per batch.
func (m *Model) Fit(args TrainArgs) ([]float64, error) {
	// handle error cases and set defaults
	{
		if !m.compiled {
			return nil, ErrNotCompiled
		}

		if args.Data == nil {
			return nil, errors.Errorf("Data is nil")
		} else if args.Data.Len() == 0 {
			return nil, ErrEmptyData
		}

		if args.BatchSize < 1 {
			return nil, errors.Errorf("BatchSize must be >= 1 (%d)", args.BatchSize)
		}

		if args.Epochs < 1 {
			return nil, errors.Errorf("Epochs must be >= 1 (%d)", args.Epochs)
		}

		if args.LearningRate == nil {
			return nil, errors.Errorf("LearningRate is nil")
		}

		if args.OnEpoch == nil {
			args.OnEpoch = func(r Result) {}
		}
	}

	n := args.Data.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	trace := make([]float64, 0, args.Epochs)

	for epoch := 1; epoch <= args.Epochs; epoch++ {
		if args.Shuffle {
			m.rng.Shuffle(n, func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}

		lr := args.LearningRate.Value(epoch)

		var epochCost float64
		var epochSteps int

		for start := 0; start < n; start += args.BatchSize {
			end := start + args.BatchSize
			if end > n {
				end = n
			}

			m.cell.zeroGrads()
			m.dense.zeroGrads()

			var batchSteps int
			for _, i := range order[start:end] {
				inputs, targets := args.Data.Sequence(i)

				cost, steps, err := m.fitSequence(inputs, targets)
				if err != nil {
					return nil, errors.Wrapf(err, "Training on sequence %d failed (epoch %d)", i, epoch)
				}

				epochCost += cost
				batchSteps += steps
			}

			if batchSteps == 0 {
				// every sequence in the batch was fully padded
				continue
			}

			m.cell.scaleGrads(1 / float64(batchSteps))
			m.dense.scaleGrads(1 / float64(batchSteps))

			m.cell.apply(m.opt, lr)
			m.dense.apply(m.opt, lr)

			epochSteps += batchSteps
		}

		if epochSteps > 0 {
			epochCost /= float64(epochSteps)
		}

		trace = append(trace, epochCost)
		args.OnEpoch(Result{Epoch: epoch, Cost: epochCost, Timesteps: epochSteps})
	}

	return trace, nil
}

// fitSequence runs the forward pass and backpropagation through time for one sequence, adding
// parameter gradients into the accumulators. It returns the summed cost over the sequence's
// unmasked timesteps and their count.
func (m *Model) fitSequence(inputs [][]float64, targets []float64) (cost float64, steps int, err error) {
	if len(targets) != len(inputs) {
		return 0, 0, SizeMismatchError{len(inputs), len(targets), "targets"}
	}

	st, err := m.newState(inputs, true)
	if err != nil {
		return 0, 0, err
	}

	for t := range inputs {
		m.cell.step(st, t)
	}

	outs := make([]float64, len(inputs))
	for t := range outs {
		outs[t] = m.dense.forward(st.h[t])
	}

	dh := make([]float64, m.hidden)
	dc := make([]float64, m.hidden)

	for t := len(inputs) - 1; t >= 0; t-- {
		if !st.masked[t] {
			p := []float64{outs[t]}
			y := []float64{targets[t]}

			cost += m.cf.Cost(p, y)
			steps++

			// with a sigmoid output, dC/dz = dC/dp * p(1-p)
			dz := m.cf.Derivs(p, y)[0] * outs[t] * (1 - outs[t])
			m.dense.backward(st.h[t], dz, dh)
		}

		dh, dc = m.cell.backward(st, t, dh, dc)
	}

	return cost, steps, nil
}
