package initializers

type uniform struct {
	rng *uniformRNG
}

// Uniform returns an Initializer that draws from a uniform random sample within a range, which
// can be set by Range. The defaults ("uniform-lower" and "uniform-upper") can be set by
// SetDefault.
//
// The result of Uniform is a type that implements seqnet.Initializer.
func Uniform() *uniform {
	return &uniform{UniformRNG()}
}

// Range sets the range of a Uniform Initializer, returning the same Initializer
func (u *uniform) Range(lower, upper float64) *uniform {
	u.rng.Bounds(lower, upper)
	return u
}

// Seed gives the Initializer its own deterministic source.
func (u *uniform) Seed(s uint64) *uniform {
	u.rng.Seed(s)
	return u
}

// Set is the implementation of seqnet.Initializer
func (u *uniform) Set(ws []float64, fanIn, fanOut int) {
	for i := 0; i < len(ws); i++ {
		w := u.rng.Gen()
		if w == 0 {
			// discard and try again
			i--
			continue
		}
		ws[i] = w
	}
}

type scaledUniform struct {
	rng *uniformRNG
}

// ScaledUniform returns an Initializer that draws uniform values in ±1, scaled down by the
// fan-in of the parameter slice.
//
// ScaledUniform matches the fallback initialization a Model performs when no Initializer is set.
func ScaledUniform() *scaledUniform {
	return &scaledUniform{UniformRNG().Bounds(-1, 1)}
}

// Seed gives the Initializer its own deterministic source.
func (s *scaledUniform) Seed(seed uint64) *scaledUniform {
	s.rng.Seed(seed)
	return s
}

// Set is the implementation of seqnet.Initializer
func (s *scaledUniform) Set(ws []float64, fanIn, fanOut int) {
	for i := range ws {
		ws[i] = s.rng.Gen() / float64(fanIn)
	}
}
