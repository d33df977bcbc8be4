package costfuncs

import (
	"math"
)

// clamping keeps log() and the derivatives finite at predicted probabilities of exactly 0 or 1
const epsilon = 1e-7

type binaryCrossEntropy int8

// BinaryCrossEntropy returns the standard binary classification cost, which implements
// seqnet.CostFunction. Outputs are treated as probabilities and clamped to
// [epsilon, 1-epsilon]; targets are expected to be 0 or 1.
func BinaryCrossEntropy() binaryCrossEntropy {
	return binaryCrossEntropy(0)
}

func (c binaryCrossEntropy) TypeString() string {
	return "binary-cross-entropy"
}

func (c binaryCrossEntropy) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		p := clamp(outs[i])
		sum -= targets[i]*math.Log(p) + (1-targets[i])*math.Log(1-p)
	}

	return sum / float64(len(outs))
}

func (c binaryCrossEntropy) Derivs(outs, targets []float64) []float64 {
	n := float64(len(outs))

	ds := make([]float64, len(outs))
	for i := range outs {
		p := clamp(outs[i])
		ds[i] = (p - targets[i]) / (p * (1 - p)) / n
	}

	return ds
}

func clamp(p float64) float64 {
	if p < epsilon {
		return epsilon
	} else if p > 1-epsilon {
		return 1 - epsilon
	}

	return p
}
