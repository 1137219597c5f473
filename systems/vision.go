package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/aquarium/components"
)

// InVisionBox reports whether a fish at offset (dx, dy) is visible to a
// predator with the given vision radius. Vision is a square box centered on
// the predator, not a circle.
func InVisionBox(dx, dy, radius float64) bool {
	return math.Abs(dx) <= radius && math.Abs(dy) <= radius
}

// DolphinHeading steers toward the mass of visible fish. Each fish pulls with
// a unit vector weighted by 1/max(dist^2, 1), so near fish dominate.
func DolphinHeading(seen []Neighbor) float64 {
	var sumX, sumY float64
	for _, n := range seen {
		theta := math.Atan2(n.DY, n.DX)
		w := 1 / math.Max(n.DistSq, 1)
		sumX += math.Cos(theta) * w
		sumY += math.Sin(theta) * w
	}
	return math.Atan2(sumY, sumX)
}

// SharkHeading steers toward the single closest visible fish.
// Ties keep the first fish scanned.
func SharkHeading(seen []Neighbor) float64 {
	best := -1
	bestDistSq := math.Inf(1)
	for i, n := range seen {
		if n.DistSq < bestDistSq {
			best = i
			bestDistSq = n.DistSq
		}
	}
	if best < 0 {
		return 0
	}
	return math.Atan2(seen[best].DY, seen[best].DX)
}

// DecideHeading picks a predator's next heading from the fish it can see.
// With nothing in sight the predator wanders in a uniformly random direction.
func DecideHeading(kind components.Kind, seen []Neighbor, rng *rand.Rand) float64 {
	if len(seen) == 0 {
		return RandomHeading(rng)
	}
	switch kind {
	case components.KindDolphin:
		return DolphinHeading(seen)
	case components.KindShark:
		return SharkHeading(seen)
	}
	return RandomHeading(rng)
}
