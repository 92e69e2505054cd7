package novacore

import (
	"math/rand"
	"sync"
)

// Rand is a small thread-safe wrapper around a seedable random source.
// Every stochastic decision in the pipeline (classifier tie-breaks, needs
// jitter, initiative draws, novelty scores, idle line picks) draws from one
// injected Rand so tests can fix the seed and assert deterministic outputs.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand creates a Rand from the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Float64 returns a value in [0,1).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Uniform returns a value in [lo,hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntN returns a value in [0,n). n must be > 0.
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Between returns an int in [lo,hi] inclusive.
func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
