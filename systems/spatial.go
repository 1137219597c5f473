package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float64 // delta from query origin to the entity
	DistSq float64 // squared distance
}

// SpatialGrid provides neighbor lookups using a cell-based grid over a bounded field.
type SpatialGrid struct {
	cellSize int
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists
}

// NewSpatialGrid creates a spatial grid covering the given field.
func NewSpatialGrid(field Field, cellSize int) *SpatialGrid {
	if cellSize < 1 {
		cellSize = 1
	}
	cols := field.Width/cellSize + 1
	rows := field.Height/cellSize + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, pos components.Position) {
	idx := g.cellIndex(pos.X, pos.Y)
	g.cells[idx] = append(g.cells[idx], e)
}

// QueryBoxInto appends every entity whose position lies within the square
// [x-half, x+half] x [y-half, y+half] to dst and returns the updated slice.
// Results come in row-major cell order, then insertion order within a cell.
// Entities missing from posMap are skipped.
func (g *SpatialGrid) QueryBoxInto(dst []Neighbor, x, y int, half float64, posMap *ecs.Map1[components.Position]) []Neighbor {
	h := int(half)
	minCol := clampInt((x-h)/g.cellSize, 0, g.cols-1)
	maxCol := clampInt((x+h)/g.cellSize, 0, g.cols-1)
	minRow := clampInt((y-h)/g.cellSize, 0, g.rows-1)
	maxRow := clampInt((y+h)/g.cellSize, 0, g.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				dx := float64(pos.X - x)
				dy := float64(pos.Y - y)
				if !InVisionBox(dx, dy, half) {
					continue
				}
				dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: dx*dx + dy*dy})
			}
		}
	}

	return dst
}

// cellIndex returns the flat index for a field position.
func (g *SpatialGrid) cellIndex(x, y int) int {
	col := clampInt(x/g.cellSize, 0, g.cols-1)
	row := clampInt(y/g.cellSize, 0, g.rows-1)
	return row*g.cols + col
}
