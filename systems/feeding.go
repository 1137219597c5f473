package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
)

// OverlapQuery finds fish whose bodies overlap a predator's body.
// It reuses its scratch buffer across calls.
type OverlapQuery struct {
	grid        *SpatialGrid
	posMap      *ecs.Map1[components.Position]
	bodyMap     *ecs.Map1[components.Body]
	maxFishSize float64
	scratch     []Neighbor
}

// NewOverlapQuery creates an overlap query over fish indexed in grid.
// maxFishSize bounds how far a fish body can extend from its position.
func NewOverlapQuery(grid *SpatialGrid, posMap *ecs.Map1[components.Position], bodyMap *ecs.Map1[components.Body], maxFishSize float64) *OverlapQuery {
	return &OverlapQuery{
		grid:        grid,
		posMap:      posMap,
		bodyMap:     bodyMap,
		maxFishSize: maxFishSize,
		scratch:     make([]Neighbor, 0, 16),
	}
}

// Into appends every indexed fish whose rect overlaps rect to dst.
func (q *OverlapQuery) Into(dst []ecs.Entity, rect components.Rect) []ecs.Entity {
	half := math.Max(float64(rect.W), float64(rect.H)) + q.maxFishSize
	q.scratch = q.grid.QueryBoxInto(q.scratch[:0], rect.X, rect.Y, half, q.posMap)

	for _, n := range q.scratch {
		pos := q.posMap.Get(n.E)
		body := q.bodyMap.Get(n.E)
		if pos == nil || body == nil {
			continue
		}
		if rect.Overlaps(body.Rect(*pos)) {
			dst = append(dst, n.E)
		}
	}
	return dst
}
