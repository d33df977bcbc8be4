package initializers

import (
	"math"
)

type varianceScaling struct {
	// either: "in", "out", "avg"
	mode   string
	factor float64

	rng *truncNormalRNG
}

const defaultVarianceMode string = "avg"

// VarianceScaling returns the variance scaling initializer, which has 3 modes and a user-defined
// scaling factor. The three modes can be set by In, Out, and Avg. It defaults to Avg, which --
// with the default factor -- is Glorot initialization.
//
// The result of VarianceScaling is a type that implements seqnet.Initializer.
func VarianceScaling() *varianceScaling {
	return &varianceScaling{defaultVarianceMode, defaultValue["varscl-factor"], TruncNormalRNG()}
}

// Factor sets the scaling factor to be used for the Initializer. The default factor can be set
// by SetDefault("varscl-factor").
func (v *varianceScaling) Factor(f float64) *varianceScaling {
	v.factor = f
	return v
}

// In sets the scaling to be based on the fan-in of the parameter slice.
func (v *varianceScaling) In() *varianceScaling {
	v.mode = "in"
	return v
}

// Out sets the scaling to be based on the fan-out of the parameter slice.
func (v *varianceScaling) Out() *varianceScaling {
	v.mode = "out"
	return v
}

// Avg sets the scaling to be based on the average of the fan-in and fan-out of the parameter
// slice.
func (v *varianceScaling) Avg() *varianceScaling {
	v.mode = "avg"
	return v
}

// Seed gives the Initializer its own deterministic source.
func (v *varianceScaling) Seed(s uint64) *varianceScaling {
	v.rng.Seed(s)
	return v
}

// Set is the implementation of seqnet.Initializer
func (v *varianceScaling) Set(ws []float64, fanIn, fanOut int) {
	var scale float64
	if v.mode == "in" {
		scale = float64(fanIn)
	} else if v.mode == "out" {
		scale = float64(fanOut)
	} else { // must be "avg"
		scale = float64(fanIn+fanOut) / 2
	}

	v.rng.SD(math.Sqrt(v.factor / scale))

	for i := 0; i < len(ws); i++ {
		ws[i] = v.rng.Gen()
	}
}
