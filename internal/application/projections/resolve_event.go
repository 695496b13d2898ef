package projections

import (
	"context"

	"eventos/internal/domain/event"
)

// ResolveEventStore defines the event store interface needed to resolve an
// access code.
type ResolveEventStore interface {
	GetByAccessCode(ctx context.Context, code string) (event.Event, error)
}

// ResolveEventQuery carries the guest-typed access code.
type ResolveEventQuery struct {
	AccessCode string
}

// ResolveEventDeps holds dependencies for ResolveEvent.
type ResolveEventDeps struct {
	EventStore ResolveEventStore
}

// QueryResolveEvent finds the event behind a guest access code.
// The code is normalized first, so guests can type it in any case.
// PRE: AccessCode is the raw form value
// POST: Returns the event, or the store's not-found error
func QueryResolveEvent(ctx context.Context, query ResolveEventQuery, deps ResolveEventDeps) (event.Event, error) {
	return deps.EventStore.GetByAccessCode(ctx, event.NormalizeAccessCode(query.AccessCode))
}
