package dataset

import (
	"github.com/pkg/errors"
)

// Supplier adapts a feature/label tensor pair to the seqnet.SequenceSupplier interface. The
// label tensor may be nil for inference-only use.
type Supplier struct {
	x, y *Tensor3
}

// NewSupplier checks that the two tensors agree on encounters and timesteps and that the labels
// have a single variable, then wraps them.
func NewSupplier(x, y *Tensor3) (*Supplier, error) {
	if x == nil {
		return nil, errors.Errorf("feature tensor is nil")
	}

	if y != nil {
		xn, xt, _ := x.Dims()
		yn, yt, yv := y.Dims()

		if xn != yn || xt != yt {
			return nil, errors.Errorf("feature tensor is (%d, %d, _) but label tensor is (%d, %d, _)",
				xn, xt, yn, yt)
		} else if yv != 1 {
			return nil, errors.Errorf("label tensor has %d variables per timestep, expected 1", yv)
		}
	}

	return &Supplier{x, y}, nil
}

// Len returns the number of encounters.
func (s *Supplier) Len() int {
	n, _, _ := s.x.Dims()
	return n
}

// Sequence returns encounter i: feature rows indexed [timestep][variable], and one target per
// timestep (nil if the Supplier has no labels).
func (s *Supplier) Sequence(i int) ([][]float64, []float64) {
	inputs := s.x.Sequence(i)

	if s.y == nil {
		return inputs, nil
	}

	_, t, _ := s.y.Dims()
	targets := make([]float64, t)
	for ts := range targets {
		targets[ts] = s.y.At(i, ts, 0)
	}

	return inputs, targets
}
