package seqnet

// denseHead is the time-distributed output projection: a single unit with a sigmoid activation,
// applied to the hidden state at every timestep.
type denseHead struct {
	size int

	W []float64
	B []float64

	gW []float64
	gB []float64

	wGroup, bGroup int
}

func newDenseHead(size int) *denseHead {
	return &denseHead{
		size: size,
		W:    make([]float64, size),
		B:    make([]float64, 1),
		gW:   make([]float64, size),
		gB:   make([]float64, 1),
	}
}

func (d *denseHead) initWeights(init Initializer) {
	init.Set(d.W, d.size, 1)
}

func (d *denseHead) register(opt Optimizer) {
	d.wGroup = opt.Register(len(d.W))
	d.bGroup = opt.Register(len(d.B))
}

func (d *denseHead) zeroGrads() {
	zero(d.gW)
	zero(d.gB)
}

func (d *denseHead) scaleGrads(f float64) {
	scale(d.gW, f)
	scale(d.gB, f)
}

func (d *denseHead) apply(opt Optimizer, learningRate float64) {
	opt.Update(d.wGroup, d.W, d.gW, learningRate)
	opt.Update(d.bGroup, d.B, d.gB, learningRate)
}

// forward returns the probability for a single timestep's hidden state.
func (d *denseHead) forward(h []float64) float64 {
	sum := d.B[0]
	for j := range h {
		sum += d.W[j] * h[j]
	}

	return sigmoid(sum)
}

// backward accumulates the gradients for one timestep, given the delta of the pre-activation
// value, and adds the hidden-state deltas into dh.
func (d *denseHead) backward(h []float64, dz float64, dh []float64) {
	for j := range h {
		d.gW[j] += dz * h[j]
		dh[j] += d.W[j] * dz
	}

	d.gB[0] += dz
}
