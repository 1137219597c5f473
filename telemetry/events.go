// Package telemetry provides population tracking, bookmarks, snapshots and CSV output.
package telemetry

// DeathCause identifies why an agent left the pond.
type DeathCause uint8

const (
	CauseAge     DeathCause = iota // reached its lifetime
	CauseEaten                     // caught by a predator
	CauseMigrate                   // left for another pond
)

// String returns the cause name used in logs.
func (c DeathCause) String() string {
	switch c {
	case CauseAge:
		return "age"
	case CauseEaten:
		return "eaten"
	case CauseMigrate:
		return "migrate"
	}
	return "unknown"
}
