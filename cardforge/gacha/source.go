package gacha

import "math/rand"

// Source yields the randomness consumed by draws. Float64 must return values
// in [0, 1). Draws are reproducible given a seeded source, which is how the
// engine is tested.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// globalSource draws from the package-level generator, which serializes
// access internally, so one Opener can serve concurrent openings.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) Intn(n int) int   { return rand.Intn(n) }

// NewSource returns the production random source. It is safe for concurrent
// use.
func NewSource() Source {
	return globalSource{}
}
