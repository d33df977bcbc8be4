package utils

// MultiDim maps points in an n-dimensional space onto indexes of a flat backing slice.
//
// It is stored such that the oscillation frequency of the dimensions decreases as the index in
// Dims increases: the first dimension is the fastest-moving one.
type MultiDim struct {
	// the width, height, depth, etc. of each dimension
	Dims []int

	// the number of values encapsulated by a 'set' of each dimension.
	// Sizes[0] = Dims[0]; Sizes[end] = Size(). Initialized by the constructor.
	Sizes []int
}

// NewMultiDim creates a new MultiDim with the given dimensions. The product of 'dims' must equal
// the length of the backing slice it is used with.
func NewMultiDim(dims []int) *MultiDim {
	m := &MultiDim{
		Dims:  dims,
		Sizes: make([]int, len(dims)),
	}

	m.Sizes[0] = m.Dims[0]
	for i := 1; i < len(m.Sizes); i++ {
		m.Sizes[i] = m.Sizes[i-1] * m.Dims[i]
	}

	return m
}

// Index returns the flat index corresponding to the given point. The point must have the same
// number of dimensions as 'm', in the order they were originally given.
func (m *MultiDim) Index(point []int) int {
	index := point[0]
	for i := 1; i < len(m.Sizes); i++ {
		index += point[i] * m.Sizes[i-1]
	}

	return index
}

// Point returns the multi-dimensional point leading to the given index in the backing slice.
// It assumes the index is in bounds.
func (m *MultiDim) Point(index int) []int {
	p := make([]int, len(m.Dims))
	for i := len(p) - 1; i >= 1; i-- { // doesn't go to 0
		p[i] = index / m.Sizes[i-1]
		index = index % m.Sizes[i-1]
	}

	p[0] = index
	return p
}

// Size returns the total number of values spanned by the dimensions.
func (m *MultiDim) Size() int {
	return m.Sizes[len(m.Sizes)-1]
}

// Dim returns the width of the d'th dimension.
func (m *MultiDim) Dim(d int) int {
	return m.Dims[d]
}
