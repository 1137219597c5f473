package components

// Body holds the physical extent of an agent.
// Fish bodies are square and grow with Size; predator bodies are fixed.
type Body struct {
	Width  float64
	Height float64
}

// Rect returns the body's bounding box at pos, truncated to whole pixels.
func (b Body) Rect(pos Position) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: int(b.Width), H: int(b.Height)}
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Overlaps reports whether two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}
