package interpolate

import (
	"math/rand"
	"sync"
)

// Rng is the injectable randomness source the evaluator hands to the
// mutators module's random builtins. Tests supply a seeded Rng for
// determinism; production callers get NewRng's default, which wraps
// math/rand the same way the teacher's builtin_misc.go wraps its own
// package-local generator with a mutex for concurrent-safe reuse across
// calls.
type Rng interface {
	Seed(n int64)
	Gen() float64
	GenRange(lo, hi int64) int64
	Pick(n int) int // returns an index in [0, n)
}

// defaultRng is a *rand.Rand guarded by a mutex, mirroring
// registerRandomBuiltins' rng+sync.Mutex pairing.
type defaultRng struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRng returns an Rng seeded from the given value.
func NewRng(seed int64) Rng {
	return &defaultRng{src: rand.New(rand.NewSource(seed))}
}

func (r *defaultRng) Seed(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src = rand.New(rand.NewSource(n))
}

func (r *defaultRng) Gen() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *defaultRng) GenRange(lo, hi int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hi <= lo {
		return lo
	}
	return lo + r.src.Int63n(hi-lo)
}

func (r *defaultRng) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}
