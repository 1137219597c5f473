// Package migration moves fish between ponds as messages.
//
// Ponds never share agents. A leaving fish is serialized into a Migrant and
// sent as a Departed event on its pond's Outbox; the Router delivers it to the
// destination's Inbox as an Arrived event followed by an Approved event.
package migration

import "github.com/google/uuid"

// EventKind identifies a migration event.
type EventKind uint8

const (
	EventArrived  EventKind = iota // a fish entered the receiving pond
	EventApproved                  // the receiving pond may treat the fish as local
	EventDeparted                  // a fish left the sending pond
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventArrived:
		return "arrived"
	case EventApproved:
		return "approved"
	case EventDeparted:
		return "departed"
	}
	return "unknown"
}

// Migrant is the transferable state of a fish.
type Migrant struct {
	ID       uuid.UUID
	Name     string
	Genesis  string // pond the fish was born in
	From     string // pond the fish is leaving
	Lifetime int
	Age      int
	Size     float64
	Heading  float64
	Returned bool // already bounced once by a full pond
}

// Event is a single message on a migration channel.
type Event struct {
	Kind        EventKind
	Migrant     Migrant   // Arrived and Departed
	FishID      uuid.UUID // Approved
	Destination string    // Departed
}

// Arrived builds an arrival event for m.
func Arrived(m Migrant) Event {
	return Event{Kind: EventArrived, Migrant: m, FishID: m.ID}
}

// Approved builds an approval event for the fish with the given id.
func Approved(id uuid.UUID) Event {
	return Event{Kind: EventApproved, FishID: id}
}

// Departed builds a departure event sending m to destination.
func Departed(m Migrant, destination string) Event {
	return Event{Kind: EventDeparted, Migrant: m, FishID: m.ID, Destination: destination}
}
