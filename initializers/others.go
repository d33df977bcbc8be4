package initializers

type leCun struct {
	*varianceScaling
}

func LeCun() leCun {
	return leCun{VarianceScaling().In()}
}

type he struct {
	*varianceScaling
}

func He() he {
	return he{VarianceScaling().In().Factor(2)}
}

type xavier struct {
	*varianceScaling
}

func Xavier() xavier {
	return xavier{VarianceScaling().Avg()}
}

func Glorot() xavier {
	return Xavier()
}

type constant float64

// Constant returns an Initializer that sets every weight to the same value.
func Constant(v float64) constant {
	return constant(v)
}

// Zeros returns an Initializer that sets every weight to zero.
func Zeros() constant {
	return Constant(0)
}

// Set is the implementation of seqnet.Initializer
func (c constant) Set(ws []float64, fanIn, fanOut int) {
	for i := range ws {
		ws[i] = float64(c)
	}
}
