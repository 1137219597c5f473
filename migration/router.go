package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrDuplicatePond is returned when two endpoints share a name.
	ErrDuplicatePond = errors.New("duplicate pond name")
)

// Router forwards departures between registered endpoints.
type Router struct {
	endpoints map[string]*Endpoint
	order     []*Endpoint
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{endpoints: make(map[string]*Endpoint)}
}

// Register adds an endpoint. Must be called before Run.
func (r *Router) Register(ep *Endpoint) error {
	if _, ok := r.endpoints[ep.Name]; ok {
		return fmt.Errorf("registering %q: %w", ep.Name, ErrDuplicatePond)
	}
	r.endpoints[ep.Name] = ep
	r.order = append(r.order, ep)
	return nil
}

// Run forwards events until ctx is cancelled. Each Departed event is delivered
// to its destination as Arrived followed by Approved. A departure addressed to an
// unknown pond is returned to its sender. Run returns nil on cancellation.
func (r *Router) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ep := range r.order {
		g.Go(func() error {
			return r.forward(ctx, ep)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Router) forward(ctx context.Context, src *Endpoint) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-src.Outbox:
			if ev.Kind != EventDeparted {
				slog.Warn("migration_ignored", "pond", src.Name, "event", ev.Kind.String())
				continue
			}
			dst, ok := r.endpoints[ev.Destination]
			if !ok {
				slog.Warn("migration_unroutable", "from", src.Name, "to", ev.Destination, "fish", ev.Migrant.Name)
				dst = src
			}
			if err := deliver(ctx, dst, Arrived(ev.Migrant)); err != nil {
				return err
			}
			if err := deliver(ctx, dst, Approved(ev.Migrant.ID)); err != nil {
				return err
			}
		}
	}
}

func deliver(ctx context.Context, dst *Endpoint, ev Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case dst.Inbox <- ev:
		return nil
	}
}
