package initializers

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// RNG needs no explanation
type RNG interface {
	Gen() float64
}

type uniformRNG struct {
	dist distuv.Uniform
}

// UniformRNG returns an RNG that gives values uniformly spread between its bounds, which can be
// set by Bounds. Defaults ("uniform-lower" and "uniform-upper") can be set by SetDefault.
func UniformRNG() *uniformRNG {
	return &uniformRNG{distuv.Uniform{
		Min: defaultValue["uniform-lower"],
		Max: defaultValue["uniform-upper"],
	}}
}

// Bounds sets the range of the RNG, returning it.
func (u *uniformRNG) Bounds(lower, upper float64) *uniformRNG {
	u.dist.Min = lower
	u.dist.Max = upper
	return u
}

// Seed gives the RNG its own deterministic source.
func (u *uniformRNG) Seed(s uint64) *uniformRNG {
	u.dist.Src = rand.NewSource(s)
	return u
}

// Gen is the implementation of RNG for UniformRNG. It returns a random number.
func (u *uniformRNG) Gen() float64 {
	return u.dist.Rand()
}

type normalRNG struct {
	dist distuv.Normal
}

// NormalRNG returns an RNG that gives values within a normal distribution. The center and
// standard deviation can be set by Mean and SD; their defaults ("normal-mean" and "normal-sd")
// can be set by SetDefault.
func NormalRNG() *normalRNG {
	return &normalRNG{distuv.Normal{
		Mu:    defaultValue["normal-mean"],
		Sigma: defaultValue["normal-sd"],
	}}
}

// SD sets the standard deviation of the normal distribution.
func (n *normalRNG) SD(sd float64) *normalRNG {
	n.dist.Sigma = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normalRNG) Mean(mean float64) *normalRNG {
	n.dist.Mu = mean
	return n
}

// Seed gives the RNG its own deterministic source.
func (n *normalRNG) Seed(s uint64) *normalRNG {
	n.dist.Src = rand.NewSource(s)
	return n
}

// Gen is the implementation of RNG for NormalRNG. It returns a random number.
func (n *normalRNG) Gen() float64 {
	return n.dist.Rand()
}

type truncNormalRNG struct {
	*normalRNG
	trunc float64
}

const defaultTrunc float64 = 2.0

// TruncNormalRNG returns an RNG that gives values within a truncated normal distribution. The
// distribution is truncated at 2 standard deviations; the center and standard deviation can be
// set in the same way as NormalRNG, because NormalRNG is embedded in the TruncNormalRNG type.
func TruncNormalRNG() *truncNormalRNG {
	return &truncNormalRNG{NormalRNG(), defaultTrunc}
}

// Trunc sets the number of standard deviations to keep on either side. Trunc will panic if given
// sds <= 0.
func (t *truncNormalRNG) Trunc(sds float64) *truncNormalRNG {
	if sds <= 0 {
		panic("given number of standard deviations to truncate after is <= 0")
	}

	t.trunc = sds
	return t
}

// Gen is the implementation of RNG for TruncNormalRNG. It returns a random number.
func (t *truncNormalRNG) Gen() float64 {
	for {
		v := (t.dist.Rand() - t.dist.Mu) / t.dist.Sigma
		if v < -t.trunc || v > t.trunc {
			continue
		}

		return v*t.dist.Sigma + t.dist.Mu
	}
}
