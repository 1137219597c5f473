// Package systems provides the per-agent rules of the simulation: motion,
// reflection, growth, procreation, targeting and spatial queries.
package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/aquarium/components"
)

// Field is the bounded pond area in pixels.
type Field struct {
	Width, Height int
}

// Contains reports whether pos lies within [0,Width]x[0,Height].
func (f Field) Contains(pos components.Position) bool {
	return pos.X >= 0 && pos.X <= f.Width && pos.Y >= 0 && pos.Y <= f.Height
}

// RandomPosition returns a uniformly random position inside the field.
func (f Field) RandomPosition(rng *rand.Rand) components.Position {
	return components.Position{X: rng.Intn(f.Width), Y: rng.Intn(f.Height)}
}

// Reflect turns an agent back when its body has left the field and clamps its
// position into the field. Heading flips horizontally (pi - h) at the left and
// right edges and vertically (-h) at the top and bottom, but only while the agent
// still moves outward. Returns true if the heading changed.
func (f Field) Reflect(pos *components.Position, mot *components.Motion, body components.Body) bool {
	rect := body.Rect(*pos)
	cos, sin := math.Cos(mot.Heading), math.Sin(mot.Heading)
	reflected := false

	if (rect.Right() > f.Width && cos > 0) || (rect.X < 0 && cos < 0) {
		mot.Heading = normalizeAngle(math.Pi - mot.Heading)
		reflected = true
	}
	if (rect.Bottom() > f.Height && sin > 0) || (rect.Y < 0 && sin < 0) {
		mot.Heading = normalizeAngle(-mot.Heading)
		reflected = true
	}

	pos.X = clampInt(pos.X, 0, f.Width)
	pos.Y = clampInt(pos.Y, 0, f.Height)
	return reflected
}

// Advance moves an agent one tick along its heading.
// Each axis step is truncated toward zero, so slow agents on shallow angles
// may not move along that axis at all.
func Advance(pos *components.Position, mot components.Motion) {
	pos.X += int(mot.Speed * math.Cos(mot.Heading))
	pos.Y += int(mot.Speed * math.Sin(mot.Heading))
}

// AgeOneTick increments an agent's age.
func AgeOneTick(life *components.Life) {
	life.Age++
}

// RandomHeading returns a heading drawn uniformly from [-Pi, Pi).
func RandomHeading(rng *rand.Rand) float64 {
	return rng.Float64()*2*math.Pi - math.Pi
}
