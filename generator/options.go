package generator

import "time"

// Source picks a uniformly distributed integer in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Options configures maze generation.
type Options struct {
	Seed   int64  // Seed for reproducible mazes (0 = seed from the clock)
	Source Source // Source overrides the seeded math/rand source when set
}

// DefaultOptions returns options that seed generation from the clock.
func DefaultOptions() *Options {
	return &Options{Seed: 0}
}

func clockSeed() int64 {
	seed := time.Now().UnixNano()
	if seed == 0 {
		seed = 1
	}
	return seed
}
