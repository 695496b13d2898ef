package projections

import (
	"context"

	eventStore "eventos/internal/adapters/storage/event"
	"eventos/internal/domain/event"
	"eventos/internal/domain/response"
)

// DashboardEventStore defines the event store interface needed by the
// dashboard projection.
type DashboardEventStore interface {
	List(ctx context.Context, filter eventStore.ListFilter) ([]event.Event, error)
}

// DashboardResponseStore defines the response store interface needed by the
// dashboard projection.
type DashboardResponseStore interface {
	ListByEventID(ctx context.Context, eventID string) ([]response.Response, error)
}

// GetDashboardQuery carries input for the dashboard projection.
// An elevated actor sees every organizer's events; everyone else sees only
// their own.
type GetDashboardQuery struct {
	OrganizerID string
	Elevated    bool
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	EventStore    DashboardEventStore
	ResponseStore DashboardResponseStore
}

// EventWithSummary pairs an event with its derived response statistics.
type EventWithSummary struct {
	Event         event.Event
	Summary       response.Summary
	ResponseCount int
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	Events []EventWithSummary

	// Totals across all listed events
	TotalConfirmedHeadcount int
	TotalResponses          int
}

// QueryGetDashboard lists the actor's events newest-date-first, each with its
// confirmed headcount and response counts recomputed from stored responses.
// PRE: OrganizerID identifies the authenticated actor (ignored when Elevated)
// POST: Every event the scope allows appears exactly once, with aggregates
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	filter := eventStore.ListFilter{OrganizerID: query.OrganizerID}
	if query.Elevated {
		filter.OrganizerID = ""
	}
	events, err := deps.EventStore.List(ctx, filter)
	if err != nil {
		return DashboardResult{}, err
	}

	result := DashboardResult{Events: make([]EventWithSummary, 0, len(events))}
	for _, e := range events {
		responses, err := deps.ResponseStore.ListByEventID(ctx, e.ID)
		if err != nil {
			return DashboardResult{}, err
		}
		summary := response.Summarize(responses)
		result.Events = append(result.Events, EventWithSummary{
			Event:         e,
			Summary:       summary,
			ResponseCount: len(responses),
		})
		result.TotalConfirmedHeadcount += summary.ConfirmedHeadcount
		result.TotalResponses += len(responses)
	}
	return result, nil
}
