package systems

import "github.com/pthm-cable/aquarium/components"

// GrowthRate returns the size gained per tick so that a fish reaches maxSize
// at half its lifetime. Lifetimes below 2 grow as if the half-life were one tick.
func GrowthRate(maxSize float64, lifetime int) float64 {
	half := float64(lifetime) / 2
	if half < 1 {
		half = 1
	}
	return maxSize / half
}

// Grow applies one tick of growth to a fish and keeps its body square.
// Growth stops after half the lifetime or once maxSize is reached.
func Grow(fish *components.Fish, body *components.Body, life components.Life, maxSize float64) {
	if float64(life.Age) > float64(life.Lifetime)/2 || fish.Size >= maxSize {
		return
	}
	fish.Size += fish.GrowthRate
	if fish.Size > maxSize {
		fish.Size = maxSize
	}
	body.Width = fish.Size
	body.Height = fish.Size
}
