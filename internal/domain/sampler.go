package domain

import "math/rand/v2"

// Sampler is the single source of randomness for simulated fields. Injecting
// it lets tests substitute a deterministic sequence; production wiring uses
// an entropy-seeded generator.
type Sampler interface {
	// IntN returns a uniformly distributed integer in [0, n). n must be > 0.
	IntN(n int) int
}

type randSampler struct {
	rng *rand.Rand
}

func (s randSampler) IntN(n int) int { return s.rng.IntN(n) }

// NewSampler returns a Sampler backed by math/rand/v2. A zero seed produces
// an entropy-seeded generator; any other seed gives a reproducible sequence.
func NewSampler(seed uint64) Sampler {
	if seed == 0 {
		return randSampler{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return randSampler{rng: rand.New(rand.NewPCG(seed, seed))}
}
