package systems

import (
	"math/rand"

	"github.com/pthm-cable/aquarium/components"
)

// FishProcreationAge returns the procreation threshold for a fish.
// A configured value of zero means half the fish's lifetime.
func FishProcreationAge(configured, lifetime int) int {
	if configured > 0 {
		return configured
	}
	if half := lifetime / 2; half > 1 {
		return half
	}
	return 1
}

// FishShouldProcreate decides whether a fish spawns this tick.
// The draw is only taken once the fish is old enough, so younger fish do not
// consume random numbers.
func FishShouldProcreate(rng *rand.Rand, age, threshold, count, capacity int) bool {
	if threshold <= 0 || age <= threshold {
		return false
	}
	if rng.Float64() >= 1/float64(threshold) {
		return false
	}
	return count < capacity
}

// PredatorShouldProcreate decides whether a predator spawns this tick.
func PredatorShouldProcreate(h components.Hunter, count, capacity int) bool {
	return h.Meals > h.ProcreationMeals && count < capacity
}

// ChildLifetime draws a lifetime uniformly from [lo, hi].
func ChildLifetime(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
