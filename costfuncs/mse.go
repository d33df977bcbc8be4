package costfuncs

type meanSquaredError int8

// MSE returns the mean squared error cost, which implements seqnet.CostFunction.
func MSE() meanSquaredError {
	return meanSquaredError(0)
}

func (c meanSquaredError) TypeString() string {
	return "mean-squared-error"
}

func (c meanSquaredError) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := outs[i] - targets[i]
		sum += d * d
	}

	return sum / float64(len(outs))
}

func (c meanSquaredError) Derivs(outs, targets []float64) []float64 {
	n := float64(len(outs))

	ds := make([]float64, len(outs))
	for i := range outs {
		ds[i] = 2 * (outs[i] - targets[i]) / n
	}

	return ds
}
