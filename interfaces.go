package seqnet

type CostFunction interface {
	// TypeString returns a short name for the cost function, for logging.
	TypeString() string

	// Cost returns the average cost of the outputs against the targets. For all methods, it can
	// be assumed that both slices have the same length and contain no NaNs or Infs.
	//
	// arguments: actual values, target values.
	Cost(outs, targets []float64) float64

	// Derivs returns the derivatives of the cost with respect to each of the outputs.
	//
	// Derivs will only be run after Cost has been run for the same values, which means that it
	// likely won't have to re-calculate some parts. It should NOT modify either slice, as they
	// are originals.
	Derivs(outs, targets []float64) []float64
}

type Optimizer interface {
	// TypeString returns a short name for the optimizer, for logging.
	TypeString() string

	// Register informs the optimizer of a parameter group of the given size, returning the id
	// by which the group is addressed in Update. Any internal per-parameter state should be
	// allocated here.
	//
	// Register will only be called during Model compilation, before any call to Update.
	Register(size int) int

	// Update adjusts the parameters of the given group, using the provided gradients and
	// learning rate. params and grads are guaranteed to have the length given to Register.
	//
	// Update is free to panic on an unknown group id; the Model only passes back ids it was
	// given by Register.
	Update(group int, params, grads []float64, learningRate float64)
}

// Initializer sets the starting weights of a parameter slice, given the fan-in and fan-out of the
// transformation the slice belongs to. Implementations can be found in the subpackage
// "initializers"; a Model without explicit Initializers falls back to scaled-uniform weights from
// its own seeded source.
type Initializer interface {
	Set(ws []float64, fanIn, fanOut int)
}

// Schedule provides the learning rate for a given epoch. Implementations can be found in the
// subpackage "hyperparams".
type Schedule interface {
	TypeString() string
	Value(epoch int) float64
}

// SequenceSupplier is the primary method of providing datasets to the Model, either for training
// or inference.
type SequenceSupplier interface {
	// Len returns the number of sequences available.
	Len() int

	// Sequence returns the i'th sequence: inputs indexed as [timestep][variable], and one
	// target value per timestep. For inference the targets may be nil.
	//
	// The returned slices are read by the Model but never modified.
	Sequence(i int) (inputs [][]float64, targets []float64)
}
