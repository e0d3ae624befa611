// Package rng defines the random source the generator draws from.
//
// Every random decision in frosting synthesis and sprinkle scattering goes
// through a [Source], so a fixed seed reproduces a scene exactly and tests
// can script the draws.
package rng

import "math/rand/v2"

// Source yields uniform floats in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// New returns a deterministic PCG source for seed.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSystem returns a source seeded from the process-wide generator,
// together with the seed so the run can be reproduced later.
func NewSystem() (*rand.Rand, uint64) {
	seed := rand.Uint64()
	return New(seed), seed
}

// Range returns a uniform float in [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Index returns a uniform index in [0, n). n must be positive.
func Index(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	return min(i, n-1)
}

// Sequence replays a fixed list of values, cycling when exhausted.
// It is meant for tests that need to steer individual draws.
type Sequence struct {
	Values []float64
	pos    int
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int { return s.pos }
