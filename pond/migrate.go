package pond

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/migration"
)

// RequestMigration marks a local fish to leave for destination. The fish is
// removed and sent at the end of the next Step unless it dies first.
func (p *Pond) RequestMigration(id uuid.UUID, destination string) error {
	if p.endpoint == nil {
		return ErrNoRoute
	}
	if destination == "" || destination == p.name {
		return fmt.Errorf("migrating to %q: %w", destination, ErrInvalidDestination)
	}
	e, ok := p.fishByID[id]
	if !ok || !p.world.Alive(e) {
		return fmt.Errorf("migrating %s: %w", id, ErrUnknownFish)
	}
	fish := p.fishMap.Get(e)
	if fish.Status != components.StatusLocal {
		return fmt.Errorf("migrating %s (%s): %w", fish.Name, fish.Status, ErrNotLocal)
	}
	fish.Status = components.StatusOnMigrate
	fish.Destination = destination
	return nil
}

// FishStatus returns the migration status of a live fish.
func (p *Pond) FishStatus(id uuid.UUID) (components.MigrationStatus, bool) {
	e, ok := p.fishByID[id]
	if !ok || !p.world.Alive(e) {
		return 0, false
	}
	return p.fishMap.Get(e).Status, true
}

// drainInbox applies every event waiting on the inbox.
func (p *Pond) drainInbox() {
	if p.endpoint == nil {
		return
	}
	p.inbox = p.endpoint.Drain(p.inbox[:0])
	for _, ev := range p.inbox {
		switch ev.Kind {
		case migration.EventArrived:
			p.admit(ev.Migrant)
		case migration.EventApproved:
			p.approve(ev.FishID)
		default:
			slog.Warn("migration_ignored", "pond", p.name, "event", ev.Kind.String())
		}
	}
}

// admit adds an arriving fish, or bounces it back when the pond is full.
// A fish that was already bounced once is dropped instead.
func (p *Pond) admit(m migration.Migrant) {
	if _, dup := p.fishByID[m.ID]; dup {
		slog.Warn("migration_duplicate", "pond", p.name, "fish", m.Name)
		return
	}
	if p.numFish >= p.cfg.Population.MaxFish {
		p.collector.RecordBounce()
		if m.Returned || m.From == "" {
			slog.Warn("migration_dropped", "pond", p.name, "fish", m.Name, "from", m.From)
			return
		}
		slog.Info("migration_bounced", "pond", p.name, "fish", m.Name, "to", m.From)
		sender := m.From
		m.From = p.name
		m.Returned = true
		p.outQueue = append(p.outQueue, migration.Departed(m, sender))
		return
	}
	p.spawnMigrant(m)
	p.collector.RecordArrival()
}

// approve promotes a pending fish to local.
func (p *Pond) approve(id uuid.UUID) {
	e, ok := p.fishByID[id]
	if !ok || !p.world.Alive(e) {
		return // bounced or already gone
	}
	if fish := p.fishMap.Get(e); fish.Status == components.StatusPending {
		fish.Status = components.StatusLocal
	}
}

// queueDeparture serializes a leaving fish onto the outbound queue.
func (p *Pond) queueDeparture(e ecs.Entity, destination string) {
	fish := p.fishMap.Get(e)
	life := p.lifeMap.Get(e)
	mot := p.motMap.Get(e)

	m := migration.Migrant{
		ID:       fish.ID,
		Name:     fish.Name,
		Genesis:  fish.Genesis,
		From:     p.name,
		Lifetime: life.Lifetime,
		Age:      life.Age,
		Size:     fish.Size,
		Heading:  mot.Heading,
	}
	p.outQueue = append(p.outQueue, migration.Departed(m, destination))
}

// flushOutbox sends queued departures without blocking. Whatever does not fit
// stays queued for the next tick.
func (p *Pond) flushOutbox() {
	if p.endpoint == nil {
		p.outQueue = p.outQueue[:0]
		return
	}
	sent := 0
	for _, ev := range p.outQueue {
		if !p.endpoint.TrySend(ev) {
			break
		}
		sent++
	}
	if sent > 0 {
		n := copy(p.outQueue, p.outQueue[sent:])
		p.outQueue = p.outQueue[:n]
	}
}

// PendingDepartures returns the number of departures waiting for outbox room.
func (p *Pond) PendingDepartures() int {
	return len(p.outQueue)
}
