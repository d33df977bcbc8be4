package seqnet

import (
	"math"
	"runtime"

	"github.com/fredyulie123/deep-machine-learning/utils"
)

// gate order within the parameter arrays
const (
	gateInput = iota
	gateForget
	gateCell
	gateOutput

	numGates
)

// lstmCell holds the parameters of the recurrent layer as flat slices: one row of length inSize
// (kernel) or size (recurrent kernel) per hidden unit, per gate.
type lstmCell struct {
	inSize, size int

	Wx [numGates][]float64
	Wh [numGates][]float64
	B  [numGates][]float64

	gWx [numGates][]float64
	gWh [numGates][]float64
	gB  [numGates][]float64

	wxGroup [numGates]int
	whGroup [numGates]int
	bGroup  [numGates]int
}

func newLSTMCell(inSize, size int) *lstmCell {
	c := &lstmCell{inSize: inSize, size: size}

	for g := 0; g < numGates; g++ {
		c.Wx[g] = make([]float64, size*inSize)
		c.Wh[g] = make([]float64, size*size)
		c.B[g] = make([]float64, size)

		c.gWx[g] = make([]float64, size*inSize)
		c.gWh[g] = make([]float64, size*size)
		c.gB[g] = make([]float64, size)
	}

	return c
}

// initWeights sets the starting weights. Biases start at zero, except the forget gate, which
// starts at one so early training does not flush the cell state.
func (c *lstmCell) initWeights(kernel, recurrent Initializer) {
	for g := 0; g < numGates; g++ {
		kernel.Set(c.Wx[g], c.inSize, c.size)
		recurrent.Set(c.Wh[g], c.size, c.size)
	}

	for u := range c.B[gateForget] {
		c.B[gateForget][u] = 1
	}
}

func (c *lstmCell) register(opt Optimizer) {
	for g := 0; g < numGates; g++ {
		c.wxGroup[g] = opt.Register(len(c.Wx[g]))
		c.whGroup[g] = opt.Register(len(c.Wh[g]))
		c.bGroup[g] = opt.Register(len(c.B[g]))
	}
}

func (c *lstmCell) zeroGrads() {
	for g := 0; g < numGates; g++ {
		zero(c.gWx[g])
		zero(c.gWh[g])
		zero(c.gB[g])
	}
}

func (c *lstmCell) scaleGrads(f float64) {
	for g := 0; g < numGates; g++ {
		scale(c.gWx[g], f)
		scale(c.gWh[g], f)
		scale(c.gB[g], f)
	}
}

func (c *lstmCell) apply(opt Optimizer, learningRate float64) {
	for g := 0; g < numGates; g++ {
		opt.Update(c.wxGroup[g], c.Wx[g], c.gWx[g], learningRate)
		opt.Update(c.whGroup[g], c.Wh[g], c.gWh[g], learningRate)
		opt.Update(c.bGroup[g], c.B[g], c.gB[g], learningRate)
	}
}

// seqState caches everything a single forward pass produces that backpropagation through time
// needs again: post-step states, activated gate values, and the mask.
type seqState struct {
	inputs [][]float64
	masked []bool

	// inverted-dropout masks for the sequence; nil outside of training
	xDrop, hDrop []float64

	h, c  [][]float64
	gates [numGates][][]float64

	// scratch for the dropped input and recurrent state of the current step
	xd, hd []float64
}

func (c *lstmCell) newState(inputs [][]float64, maskValue float64) *seqState {
	T := len(inputs)
	st := &seqState{
		inputs: inputs,
		masked: make([]bool, T),
		h:      make([][]float64, T),
		c:      make([][]float64, T),
		xd:     make([]float64, c.inSize),
		hd:     make([]float64, c.size),
	}

	for g := 0; g < numGates; g++ {
		st.gates[g] = make([][]float64, T)
	}

	for t := range inputs {
		st.masked[t] = allEqual(inputs[t], maskValue)
		st.h[t] = make([]float64, c.size)
		st.c[t] = make([]float64, c.size)
	}

	return st
}

// prev returns the state carried into timestep t; all-zero before the first step.
func (st *seqState) prev(t int) (h, c []float64) {
	if t == 0 {
		return make([]float64, len(st.hd)), make([]float64, len(st.hd))
	}

	return st.h[t-1], st.c[t-1]
}

// dropped fills the scratch slices with the masked input and recurrent state for timestep t.
func (st *seqState) dropped(t int, hPrev []float64) (xd, hd []float64) {
	x := st.inputs[t]

	if st.xDrop == nil {
		copy(st.xd, x)
	} else {
		for i := range x {
			st.xd[i] = x[i] * st.xDrop[i]
		}
	}

	if st.hDrop == nil {
		copy(st.hd, hPrev)
	} else {
		for j := range hPrev {
			st.hd[j] = hPrev[j] * st.hDrop[j]
		}
	}

	return st.xd, st.hd
}

// step advances the cell by one timestep. Masked timesteps leave (h, c) unchanged so the state
// carries across padding.
func (c *lstmCell) step(st *seqState, t int) {
	hPrev, cPrev := st.prev(t)

	if st.masked[t] {
		copy(st.h[t], hPrev)
		copy(st.c[t], cPrev)
		return
	}

	for g := 0; g < numGates; g++ {
		st.gates[g][t] = make([]float64, c.size)
	}

	xd, hd := st.dropped(t, hPrev)

	f := func(u int) {
		var z [numGates]float64
		for g := 0; g < numGates; g++ {
			sum := c.B[g][u]

			row := u * c.inSize
			for in := range xd {
				sum += c.Wx[g][row+in] * xd[in]
			}

			row = u * c.size
			for j := range hd {
				sum += c.Wh[g][row+j] * hd[j]
			}

			z[g] = sum
		}

		i := sigmoid(z[gateInput])
		fg := sigmoid(z[gateForget])
		gc := math.Tanh(z[gateCell])
		o := sigmoid(z[gateOutput])

		st.gates[gateInput][t][u] = i
		st.gates[gateForget][t][u] = fg
		st.gates[gateCell][t][u] = gc
		st.gates[gateOutput][t][u] = o

		cNew := fg*cPrev[u] + i*gc
		st.c[t][u] = cNew
		st.h[t][u] = o * math.Tanh(cNew)
	}

	// just random constants. Have not been optimized
	opsPerThread, threadsPerCPU := runtime.NumCPU()*2, 1
	utils.MultiThread(0, c.size, f, opsPerThread, threadsPerCPU)
}

// backward runs one step of backpropagation through time, accumulating parameter gradients and
// returning the deltas carried to the previous timestep. dh and dc are the deltas of the
// post-step state at t; masked timesteps pass them through untouched.
func (c *lstmCell) backward(st *seqState, t int, dh, dc []float64) (dhPrev, dcPrev []float64) {
	if st.masked[t] {
		return dh, dc
	}

	hPrev, cPrev := st.prev(t)
	xd, hd := st.dropped(t, hPrev)

	var da [numGates][]float64
	for g := 0; g < numGates; g++ {
		da[g] = make([]float64, c.size)
	}
	dcPrev = make([]float64, c.size)

	fUnit := func(u int) {
		i := st.gates[gateInput][t][u]
		fg := st.gates[gateForget][t][u]
		gc := st.gates[gateCell][t][u]
		o := st.gates[gateOutput][t][u]

		tc := math.Tanh(st.c[t][u])
		dcTotal := dc[u] + dh[u]*o*(1-tc*tc)

		da[gateOutput][u] = dh[u] * tc * o * (1 - o)
		da[gateInput][u] = dcTotal * gc * i * (1 - i)
		da[gateForget][u] = dcTotal * cPrev[u] * fg * (1 - fg)
		da[gateCell][u] = dcTotal * i * (1 - gc*gc)

		dcPrev[u] = dcTotal * fg
	}

	// just random constants. Have not been optimized
	opsPerThread, threadsPerCPU := runtime.NumCPU()*2, 1
	utils.MultiThread(0, c.size, fUnit, opsPerThread, threadsPerCPU)

	// each f(u) owns row u of every gradient matrix, so the writes never collide
	fGrad := func(u int) {
		for g := 0; g < numGates; g++ {
			d := da[g][u]
			c.gB[g][u] += d

			row := u * c.inSize
			for in := range xd {
				c.gWx[g][row+in] += d * xd[in]
			}

			row = u * c.size
			for j := range hd {
				c.gWh[g][row+j] += d * hd[j]
			}
		}
	}
	utils.MultiThread(0, c.size, fGrad, opsPerThread, threadsPerCPU)

	dhPrev = make([]float64, c.size)
	fPrev := func(j int) {
		var sum float64
		for g := 0; g < numGates; g++ {
			for u := 0; u < c.size; u++ {
				sum += c.Wh[g][u*c.size+j] * da[g][u]
			}
		}

		// hd was the dropped state, so the delta flows back through the same mask
		if st.hDrop != nil {
			sum *= st.hDrop[j]
		}

		dhPrev[j] = sum
	}
	utils.MultiThread(0, c.size, fPrev, opsPerThread, threadsPerCPU)

	return dhPrev, dcPrev
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func allEqual(xs []float64, v float64) bool {
	for i := range xs {
		if xs[i] != v {
			return false
		}
	}

	return true
}

func zero(xs []float64) {
	for i := range xs {
		xs[i] = 0
	}
}

func scale(xs []float64, f float64) {
	for i := range xs {
		xs[i] *= f
	}
}
