package components

import "github.com/google/uuid"

// Kind identifies an agent variant and selects its behavior.
type Kind uint8

const (
	KindFish Kind = iota
	KindDolphin
	KindShark
)

// String returns the lowercase variant name, matching the config section names.
func (k Kind) String() string {
	switch k {
	case KindFish:
		return "fish"
	case KindDolphin:
		return "dolphin"
	case KindShark:
		return "shark"
	}
	return "unknown"
}

// IsPredator reports whether the kind hunts fish.
func (k Kind) IsPredator() bool {
	return k == KindDolphin || k == KindShark
}

// PredatorKinds lists the hunting variants in spawn order.
var PredatorKinds = []Kind{KindDolphin, KindShark}

// Life tracks identity, age and natural death.
type Life struct {
	ID       uint32 // pond-local serial, never reused
	Age      int    // ticks alive (or since last procreation)
	Lifetime int    // ticks until natural death
	Alive    bool   // false once marked for removal this tick
}

// Expired reports whether the agent has reached its lifetime.
func (l Life) Expired() bool {
	return l.Age >= l.Lifetime
}

// MigrationStatus tracks a fish's membership in the local pond.
type MigrationStatus uint8

const (
	StatusLocal     MigrationStatus = iota // regular member of this pond
	StatusPending                          // arrived from another pond, awaiting approval
	StatusOnMigrate                        // leaving at the end of this tick
)

// String returns the status name used in logs.
func (s MigrationStatus) String() string {
	switch s {
	case StatusLocal:
		return "local"
	case StatusPending:
		return "pending"
	case StatusOnMigrate:
		return "on-migrate"
	}
	return "unknown"
}

// Fish holds fish identity, growth and procreation state.
type Fish struct {
	ID             uuid.UUID
	Name           string
	Genesis        string  // pond the fish was born in
	Size           float64 // current body size, grows to MaxSize
	GrowthRate     float64 // size gained per tick until half-lifetime
	ProcreationAge int     // age threshold; procreation chance per tick is 1/ProcreationAge
	Status         MigrationStatus
	Destination    string // target pond while StatusOnMigrate
}

// Hunter holds predator state.
type Hunter struct {
	Kind             Kind
	VisionRadius     float64
	Meals            int
	ProcreationMeals int // procreate once Meals exceeds this
}
