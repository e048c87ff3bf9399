package calculation

import (
	"math/rand"
	"time"
)

func defaultSeedFunc() int64 { return time.Now().UnixNano() }

// seedFunc returns a pseudo-random seed (override for deterministic Monte Carlo tests).
var seedFunc = defaultSeedFunc

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

// runSeed derives an independent stream seed for run i with a SplitMix64 finalizer, so
// neighbouring runs do not get neighbouring seeds.
func runSeed(seed int64, run int) int64 {
	z := uint64(seed) + uint64(run+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// newRunRand returns the random source owned by a single run
func newRunRand(seed int64, run int) *rand.Rand {
	return rand.New(rand.NewSource(runSeed(seed, run)))
}
