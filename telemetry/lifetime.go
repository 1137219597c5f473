package telemetry

import "github.com/pthm-cable/aquarium/components"

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	Kind      components.Kind
	BirthTick int

	Meals    int // predators only
	Children int
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, kind components.Kind, birthTick int) {
	lt.stats[id] = &LifetimeStats{Kind: kind, BirthTick: birthTick}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordMeal increments a predator's meal count.
func (lt *LifetimeTracker) RecordMeal(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// RecordChild increments a parent's children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// TopHunter returns the id and stats of the live predator with the most meals.
// Ties go to the lower id. Returns nil stats if no predator is tracked.
func (lt *LifetimeTracker) TopHunter() (uint32, *LifetimeStats) {
	var bestID uint32
	var best *LifetimeStats
	for id, s := range lt.stats {
		if !s.Kind.IsPredator() {
			continue
		}
		if best == nil || s.Meals > best.Meals || (s.Meals == best.Meals && id < bestID) {
			bestID, best = id, s
		}
	}
	return bestID, best
}
