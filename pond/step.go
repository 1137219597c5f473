package pond

import (
	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// Step advances the pond by one tick.
//
// Order: drain the migration inbox, move predators, feed, move fish, apply
// queued births and removals, then record telemetry. The population never
// changes structurally while an ECS query is running.
func (p *Pond) Step() {
	p.perfCollector.StartTick()

	p.perfCollector.StartPhase(telemetry.PhaseMigration)
	p.drainInbox()

	p.perfCollector.StartPhase(telemetry.PhasePredators)
	p.rebuildFishGrid()
	p.updatePredators()

	p.perfCollector.StartPhase(telemetry.PhaseFeeding)
	p.updateFeeding()

	p.perfCollector.StartPhase(telemetry.PhaseFish)
	p.updateFish()

	p.perfCollector.StartPhase(telemetry.PhaseApply)
	p.applyIntents()
	p.flushOutbox()
	p.tick++

	p.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	p.recordPopulation()
	p.flushTelemetry()

	p.perfCollector.EndTick()
}

// rebuildFishGrid indexes every live fish by position.
func (p *Pond) rebuildFishGrid() {
	p.fishGrid.Clear()

	query := p.fishFilter.Query()
	for query.Next() {
		pos, _, _, life, _ := query.Get()
		if life.Alive {
			p.fishGrid.Insert(query.Entity(), *pos)
		}
	}
}

// predatorCount returns predators still alive this tick plus queued predator births.
func (p *Pond) predatorCount() int {
	return p.numDolphins + p.numSharks + p.predDelta
}

// fishCount returns fish still alive this tick plus queued fish births.
// Fish eaten, expired or leaving earlier in the tick no longer count.
func (p *Pond) fishCount() int {
	return p.numFish + p.fishDelta
}

func (p *Pond) queueBirth(b birth) {
	p.births = append(p.births, b)
	if b.kind == components.KindFish {
		p.fishDelta++
	} else {
		p.predDelta++
	}
}

func (p *Pond) queueRemoval(r removal) {
	p.removals = append(p.removals, r)
	if r.kind == components.KindFish {
		p.fishDelta--
	} else {
		p.predDelta--
	}
}

// updatePredators runs procreation, targeting, movement, aging and natural
// death for every predator.
func (p *Pond) updatePredators() {
	maxPred := p.cfg.Population.MaxPredator

	query := p.predFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, mot, body, life, hunter := query.Get()
		if !life.Alive {
			continue
		}

		if systems.PredatorShouldProcreate(*hunter, p.predatorCount(), maxPred) {
			p.queueBirth(birth{kind: hunter.Kind, parentID: life.ID, pos: *pos})
			hunter.Meals = 0
			life.Age = 0
		}

		p.neighbors = p.fishGrid.QueryBoxInto(p.neighbors[:0], pos.X, pos.Y, hunter.VisionRadius, p.posMap)
		mot.Heading = systems.DecideHeading(hunter.Kind, p.neighbors, p.rng)

		systems.Advance(pos, *mot)
		p.field.Reflect(pos, mot, *body)
		systems.AgeOneTick(life)

		if life.Expired() {
			life.Alive = false
			p.queueRemoval(removal{entity: entity, kind: hunter.Kind, id: life.ID, cause: telemetry.CauseAge})
		}
	}
}

// updateFeeding lets every live predator eat the fish its body overlaps.
// A fish is eaten at most once; each fish eaten is one meal.
func (p *Pond) updateFeeding() {
	query := p.predFilter.Query()
	for query.Next() {
		pos, _, body, life, hunter := query.Get()
		if !life.Alive {
			continue
		}

		p.hits = p.overlap.Into(p.hits[:0], body.Rect(*pos))
		for _, fishEntity := range p.hits {
			prey := p.lifeMap.Get(fishEntity)
			if prey == nil || !prey.Alive {
				continue
			}
			prey.Alive = false
			p.queueRemoval(removal{entity: fishEntity, kind: components.KindFish, id: prey.ID, cause: telemetry.CauseEaten})

			hunter.Meals++
			p.collector.RecordMeal(hunter.Kind)
			p.lifetimeTracker.RecordMeal(life.ID)
		}
	}
}

// updateFish moves, ages, breeds and grows every fish that was not eaten.
func (p *Pond) updateFish() {
	fishCfg := &p.cfg.Fish
	migCfg := &p.cfg.Migration
	maxFish := p.cfg.Population.MaxFish
	edgeMigration := p.endpoint != nil && migCfg.EdgeChance > 0 && migCfg.Neighbor != "" && migCfg.Neighbor != p.name

	query := p.fishFilter.Query()
	for query.Next() {
		entity := query.Entity()
		pos, mot, body, life, fish := query.Get()
		if !life.Alive {
			continue
		}

		systems.Advance(pos, *mot)
		hitEdge := p.field.Reflect(pos, mot, *body)
		if hitEdge && edgeMigration && fish.Status == components.StatusLocal && p.rng.Float64() < migCfg.EdgeChance {
			fish.Status = components.StatusOnMigrate
			fish.Destination = migCfg.Neighbor
		}
		systems.AgeOneTick(life)

		if fish.Status != components.StatusPending &&
			systems.FishShouldProcreate(p.rng, life.Age, fish.ProcreationAge, p.fishCount(), maxFish) {
			p.queueBirth(birth{kind: components.KindFish, parentID: life.ID, pos: *pos})
			life.Age = 0
		}

		systems.Grow(fish, body, *life, fishCfg.MaxSize)

		switch {
		case life.Expired():
			life.Alive = false
			p.queueRemoval(removal{entity: entity, kind: components.KindFish, id: life.ID, cause: telemetry.CauseAge})
		case fish.Status == components.StatusOnMigrate:
			life.Alive = false
			p.queueRemoval(removal{entity: entity, kind: components.KindFish, id: life.ID, cause: telemetry.CauseMigrate})
		}
	}
}

// applyIntents removes dead and departing agents, then inserts births.
func (p *Pond) applyIntents() {
	for _, r := range p.removals {
		if !p.world.Alive(r.entity) {
			continue
		}

		var fish *components.Fish
		if r.kind == components.KindFish {
			fish = p.fishMap.Get(r.entity)
		}
		if r.cause == telemetry.CauseMigrate && fish != nil {
			p.queueDeparture(r.entity, fish.Destination)
		}

		lifespan := 0
		if stats := p.lifetimeTracker.Remove(r.id); stats != nil {
			lifespan = p.tick - stats.BirthTick
		}
		p.collector.RecordDeath(r.kind, r.cause, lifespan)

		switch r.kind {
		case components.KindFish:
			if fish != nil {
				delete(p.fishByID, fish.ID)
			}
			p.numFish--
		case components.KindDolphin:
			p.numDolphins--
		case components.KindShark:
			p.numSharks--
		}
		p.world.RemoveEntity(r.entity)
	}
	p.removals = p.removals[:0]

	for _, b := range p.births {
		heading := systems.RandomHeading(p.rng)
		if b.kind == components.KindFish {
			p.spawnFish(b.pos, heading)
		} else {
			p.spawnPredator(b.kind, b.pos, heading)
		}
		p.collector.RecordBirth(b.kind)
		p.lifetimeTracker.RecordChild(b.parentID)
	}
	p.births = p.births[:0]
	p.fishDelta, p.predDelta = 0, 0
}
