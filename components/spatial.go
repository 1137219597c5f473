// Package components defines ECS components for the simulation.
package components

import "math"

// Position is the top-left corner of an agent's body in field pixels.
type Position struct {
	X, Y int
}

// Motion holds an agent's heading and speed.
type Motion struct {
	Heading float64 // radians
	Speed   float64 // pixels per tick
}

// FacingRight reports whether the horizontal step of this motion is non-negative.
// Renderers use it to flip sprites.
func (m Motion) FacingRight() bool {
	return int(m.Speed*math.Cos(m.Heading)) >= 0
}
