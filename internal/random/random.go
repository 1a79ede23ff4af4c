// Package random provides the uniform random source the draw engine rolls
// with. Injected so weighted-selection tests can replay fixed sequences.
package random

import "math/rand/v2"

// Source yields uniform floats in [0, 1).
type Source interface {
	Uniform() float64
}

type systemSource struct{}

// NewSystem returns a Source backed by math/rand/v2's global generator.
// Game randomness, not security critical.
func NewSystem() Source {
	return systemSource{}
}

func (systemSource) Uniform() float64 {
	return rand.Float64()
}

// Seeded returns a deterministic Source for reproducible tests.
func Seeded(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed))}
}

type seededSource struct {
	r *rand.Rand
}

func (s *seededSource) Uniform() float64 {
	return s.r.Float64()
}

// Fixed returns a Source that replays the given values in order and repeats
// the last one once exhausted.
func Fixed(values ...float64) Source {
	return &fixedSource{values: values}
}

type fixedSource struct {
	values []float64
	idx    int
}

func (f *fixedSource) Uniform() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.idx]
	if f.idx < len(f.values)-1 {
		f.idx++
	}
	return v
}
