package pond

import (
	"github.com/google/uuid"

	"github.com/pthm-cable/aquarium/components"
)

// AgentView is a read-only description of one agent for renderers.
type AgentView struct {
	Kind        components.Kind
	X, Y        int
	Heading     float64
	FacingRight bool
	Size        float64 // fish size, or predator body width
	Age         int

	// Fish only
	FishID uuid.UUID
	Name   string
	Status components.MigrationStatus
}

// Agents returns every live agent, fish first, in storage order.
func (p *Pond) Agents() []AgentView {
	out := make([]AgentView, 0, p.numFish+p.numDolphins+p.numSharks)

	fq := p.fishFilter.Query()
	for fq.Next() {
		pos, mot, _, life, fish := fq.Get()
		out = append(out, AgentView{
			Kind:        components.KindFish,
			X:           pos.X,
			Y:           pos.Y,
			Heading:     mot.Heading,
			FacingRight: mot.FacingRight(),
			Size:        fish.Size,
			Age:         life.Age,
			FishID:      fish.ID,
			Name:        fish.Name,
			Status:      fish.Status,
		})
	}

	pq := p.predFilter.Query()
	for pq.Next() {
		pos, mot, body, life, hunter := pq.Get()
		out = append(out, AgentView{
			Kind:        hunter.Kind,
			X:           pos.X,
			Y:           pos.Y,
			Heading:     mot.Heading,
			FacingRight: mot.FacingRight(),
			Size:        body.Width,
			Age:         life.Age,
		})
	}

	return out
}
