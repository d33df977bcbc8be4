// Package dataset loads the precomputed study artifacts: the NumPy feature and label tensors
// produced by the upstream preprocessing stage, and the clinical baseline score table. It also
// adapts tensor pairs to the seqnet.SequenceSupplier interface.
package dataset

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sbinet/npyio"

	"github.com/fredyulie123/deep-machine-learning/utils"
)

// ShapeError documents a tensor file whose dimensions cannot be used by the study.
type ShapeError struct {
	Path   string
	Shape  []int
	Reason string
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("%s: unusable shape %v: %s", e.Path, e.Shape, e.Reason)
}

// Tensor3 is a dense rank-3 tensor indexed by (encounter, timestep, variable), stored flat in
// C order. Label tensors have a single variable.
type Tensor3 struct {
	data []float64

	// stride math over (variable, timestep, encounter), fastest-moving first
	md *utils.MultiDim

	n, t, v int
}

// NewTensor3 returns a zeroed tensor with the given number of encounters, timesteps, and
// variables.
func NewTensor3(encounters, timesteps, variables int) *Tensor3 {
	return &Tensor3{
		data: make([]float64, encounters*timesteps*variables),
		md:   utils.NewMultiDim([]int{variables, timesteps, encounters}),
		n:    encounters,
		t:    timesteps,
		v:    variables,
	}
}

// Dims returns the tensor's dimensions: encounters, timesteps, variables.
func (x *Tensor3) Dims() (encounters, timesteps, variables int) {
	return x.n, x.t, x.v
}

// At returns the value for encounter i, timestep t, variable j.
func (x *Tensor3) At(i, t, j int) float64 {
	return x.data[x.md.Index([]int{j, t, i})]
}

// Set assigns the value for encounter i, timestep t, variable j.
func (x *Tensor3) Set(i, t, j int, val float64) {
	x.data[x.md.Index([]int{j, t, i})] = val
}

// Sequence returns encounter i as [timestep][variable] views into the tensor's backing slice.
// The views must not be modified.
func (x *Tensor3) Sequence(i int) [][]float64 {
	seq := make([][]float64, x.t)
	for t := range seq {
		start := x.md.Index([]int{0, t, i})
		seq[t] = x.data[start : start+x.v]
	}

	return seq
}

// Masked reports whether every variable of encounter i at timestep t equals the sentinel.
func (x *Tensor3) Masked(i, t int, sentinel float64) bool {
	for j := 0; j < x.v; j++ {
		if x.At(i, t, j) != sentinel {
			return false
		}
	}

	return true
}

// LoadTensor reads a .npy file into a Tensor3. 3-d files are read as (encounters, timesteps,
// variables); 2-d files are accepted as label tensors with a single variable. float32 and
// float64 payloads are supported; Fortran-ordered files are not.
func LoadTensor(path string) (*Tensor3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open tensor file %q", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read npy header of %q", path)
	}

	shape := r.Header.Descr.Shape
	if r.Header.Descr.Fortran {
		return nil, ShapeError{path, shape, "fortran-ordered files are not supported"}
	}

	var n, t, v int
	switch len(shape) {
	case 3:
		n, t, v = shape[0], shape[1], shape[2]
	case 2:
		n, t, v = shape[0], shape[1], 1
	default:
		return nil, ShapeError{path, shape, "expected rank 2 or 3"}
	}

	if n < 1 || t < 1 || v < 1 {
		return nil, ShapeError{path, shape, "empty dimension"}
	}

	x := NewTensor3(n, t, v)
	if err := readPayload(r, x.data); err != nil {
		return nil, errors.Wrapf(err, "Failed to read tensor payload of %q", path)
	}

	return x, nil
}

func readPayload(r *npyio.Reader, dst []float64) error {
	switch dt := r.Header.Descr.Type; dt {
	case "<f8", ">f8", "f8":
		raw := make([]float64, 0, len(dst))
		if err := r.Read(&raw); err != nil {
			return err
		} else if len(raw) != len(dst) {
			return errors.Errorf("payload has %d values, header implies %d", len(raw), len(dst))
		}

		copy(dst, raw)
		return nil

	case "<f4", ">f4", "f4":
		raw := make([]float32, 0, len(dst))
		if err := r.Read(&raw); err != nil {
			return err
		} else if len(raw) != len(dst) {
			return errors.Errorf("payload has %d values, header implies %d", len(raw), len(dst))
		}

		for i := range raw {
			dst[i] = float64(raw[i])
		}
		return nil

	default:
		return errors.Errorf("unsupported dtype %q", dt)
	}
}

// CheckLabelBroadcast verifies the label-broadcast invariant: the tensor has a single variable,
// and within each encounter the label is constant across timesteps.
func CheckLabelBroadcast(y *Tensor3) error {
	if y.v != 1 {
		return errors.Errorf("label tensor has %d variables per timestep, expected 1", y.v)
	}

	for i := 0; i < y.n; i++ {
		l := y.At(i, 0, 0)
		for t := 1; t < y.t; t++ {
			if y.At(i, t, 0) != l {
				return errors.Errorf("label of encounter %d changes at timestep %d (%g != %g)",
					i, t, y.At(i, t, 0), l)
			}
		}
	}

	return nil
}

// Labels extracts the per-encounter binary outcome from a label tensor, reading timestep 0.
func Labels(y *Tensor3) []bool {
	labels := make([]bool, y.n)
	for i := range labels {
		labels[i] = y.At(i, 0, 0) >= 0.5
	}

	return labels
}

// FinalTimestep extracts the last-timestep prediction of each sequence from a
// [sequence][timestep][0] prediction tensor. With masked padding at the end of a sequence, the
// recurrent state carries through, so this is also the prediction at the last observed timestep.
func FinalTimestep(preds [][][]float64) []float64 {
	out := make([]float64, len(preds))
	for i := range preds {
		out[i] = preds[i][len(preds[i])-1][0]
	}

	return out
}
