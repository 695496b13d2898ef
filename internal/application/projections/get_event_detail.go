package projections

import (
	"context"

	"eventos/internal/domain/event"
	"eventos/internal/domain/response"
)

// DetailEventStore defines the event store interface needed by the event
// detail projection.
type DetailEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	GetByIDForOrganizer(ctx context.Context, id, organizerID string) (event.Event, error)
}

// GetEventDetailQuery carries input for the event detail projection.
type GetEventDetailQuery struct {
	EventID     string
	OrganizerID string
	Elevated    bool
}

// GetEventDetailDeps holds dependencies for the event detail projection.
type GetEventDetailDeps struct {
	EventStore    DetailEventStore
	ResponseStore DashboardResponseStore
}

// EventDetailResult carries the output of the event detail projection.
type EventDetailResult struct {
	Event     event.Event
	Responses []response.Response // newest first
	Summary   response.Summary
}

// QueryGetEventDetail loads one event with its full response list and summary.
// The lookup is owner-scoped unless elevated, so an organizer asking for a
// foreign event gets the store's not-found error.
// PRE: EventID is non-empty
// POST: Summary equals Summarize(Responses)
func QueryGetEventDetail(ctx context.Context, query GetEventDetailQuery, deps GetEventDetailDeps) (EventDetailResult, error) {
	var (
		e   event.Event
		err error
	)
	if query.Elevated {
		e, err = deps.EventStore.GetByID(ctx, query.EventID)
	} else {
		e, err = deps.EventStore.GetByIDForOrganizer(ctx, query.EventID, query.OrganizerID)
	}
	if err != nil {
		return EventDetailResult{}, err
	}

	responses, err := deps.ResponseStore.ListByEventID(ctx, e.ID)
	if err != nil {
		return EventDetailResult{}, err
	}

	return EventDetailResult{
		Event:     e,
		Responses: responses,
		Summary:   response.Summarize(responses),
	}, nil
}
