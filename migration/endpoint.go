package migration

// Endpoint is one pond's side of the migration channel.
// The pond reads Inbox and writes Outbox; the Router does the opposite.
type Endpoint struct {
	Name   string
	Inbox  chan Event
	Outbox chan Event
}

// NewEndpoint creates an endpoint with buffered channels of the given size.
func NewEndpoint(name string, buffer int) *Endpoint {
	if buffer < 0 {
		buffer = 0
	}
	return &Endpoint{
		Name:   name,
		Inbox:  make(chan Event, buffer),
		Outbox: make(chan Event, buffer),
	}
}

// Drain returns every event currently queued on the inbox without blocking.
func (e *Endpoint) Drain(dst []Event) []Event {
	for {
		select {
		case ev := <-e.Inbox:
			dst = append(dst, ev)
		default:
			return dst
		}
	}
}

// TrySend queues ev on the outbox. It returns false if the outbox is full.
func (e *Endpoint) TrySend(ev Event) bool {
	select {
	case e.Outbox <- ev:
		return true
	default:
		return false
	}
}
