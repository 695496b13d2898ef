package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	eventStore "eventos/internal/adapters/storage/event"
	"eventos/internal/domain/event"
)

// maxAccessCodeAttempts bounds regeneration on access-code collisions. The
// code space is 36^8, so exhausting this means something is badly wrong.
const maxAccessCodeAttempts = 5

var ErrAccessCodeExhausted = errors.New("could not generate a unique access code")

// Actor identifies the authenticated account performing an operation, as
// resolved from the request session by the HTTP layer.
type Actor struct {
	AccountID string
	Elevated  bool // admin role: bypasses per-organizer scoping
}

// EventStoreForOrchestrator defines the store interface needed by event orchestrators.
type EventStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	GetByIDForOrganizer(ctx context.Context, id, organizerID string) (event.Event, error)
	Save(ctx context.Context, e event.Event) error
	Delete(ctx context.Context, id string) error
}

// --- Create Event ---

// CreateEventInput carries input for the create event orchestrator.
// OrganizerID is honored only for elevated actors; for everyone else the
// event is owned by the actor, whatever the form submitted.
type CreateEventInput struct {
	Name        string
	Date        time.Time
	Location    string
	Description string
	AccessCode  string // optional; generated when empty
	OrganizerID string
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore         EventStoreForOrchestrator
	GenerateID         func() string
	GenerateAccessCode func() string
	Now                func() time.Time
}

// ExecuteCreateEvent creates an event owned by the acting organizer.
// PRE: actor is authenticated; Name, Date, Location are populated
// POST: Event persisted with a unique uppercase access code
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, actor Actor, deps CreateEventDeps) (event.Event, error) {
	if actor.AccountID == "" {
		return event.Event{}, errors.New("acting account ID is required")
	}

	organizerID := actor.AccountID
	if actor.Elevated && input.OrganizerID != "" {
		organizerID = input.OrganizerID
	}

	e := event.Event{
		ID:          deps.GenerateID(),
		OrganizerID: organizerID,
		Name:        input.Name,
		Date:        input.Date,
		Location:    input.Location,
		Description: input.Description,
		CreatedAt:   deps.Now(),
	}

	// A caller-supplied code is used as-is (normalized); only generated codes
	// are retried on collision.
	if input.AccessCode != "" {
		e.AccessCode = event.NormalizeAccessCode(input.AccessCode)
		if err := e.Validate(); err != nil {
			return event.Event{}, err
		}
		if err := deps.EventStore.Save(ctx, e); err != nil {
			return event.Event{}, err
		}
		slog.Info("event_event", "event", "event_created", "event_id", e.ID, "organizer_id", organizerID, "access_code", e.AccessCode)
		return e, nil
	}

	for attempt := 0; attempt < maxAccessCodeAttempts; attempt++ {
		e.AccessCode = deps.GenerateAccessCode()
		if err := e.Validate(); err != nil {
			return event.Event{}, err
		}
		err := deps.EventStore.Save(ctx, e)
		if err == nil {
			slog.Info("event_event", "event", "event_created", "event_id", e.ID, "organizer_id", organizerID, "access_code", e.AccessCode)
			return e, nil
		}
		if !errors.Is(err, eventStore.ErrDuplicateAccessCode) {
			return event.Event{}, err
		}
		slog.Warn("event_event", "event", "access_code_collision", "event_id", e.ID, "attempt", attempt+1)
	}
	return event.Event{}, ErrAccessCodeExhausted
}

// --- Edit Event ---

// EditEventInput carries input for the edit event orchestrator.
// The organizer and access code are immutable; only descriptive fields move.
type EditEventInput struct {
	EventID     string
	Name        string
	Date        time.Time
	Location    string
	Description string
}

// EditEventDeps holds dependencies for EditEvent.
type EditEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteEditEvent updates descriptive fields on an event the actor owns.
// PRE: EventID is non-empty; actor owns the event or is elevated
// POST: Event fields updated; ownership mismatch reads as not-found
func ExecuteEditEvent(ctx context.Context, input EditEventInput, actor Actor, deps EditEventDeps) (event.Event, error) {
	if input.EventID == "" {
		return event.Event{}, errors.New("event ID is required")
	}

	e, err := loadScoped(ctx, deps.EventStore, input.EventID, actor)
	if err != nil {
		return event.Event{}, err
	}

	if input.Name != "" {
		e.Name = input.Name
	}
	if !input.Date.IsZero() {
		e.Date = input.Date
	}
	if input.Location != "" {
		e.Location = input.Location
	}
	e.Description = input.Description

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_edited", "event_id", e.ID)
	return e, nil
}

// --- Delete Event ---

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForOrchestrator
}

// ExecuteDeleteEvent removes an event and all of its responses.
// PRE: eventID is non-empty; actor owns the event or is elevated
// POST: Event and responses deleted atomically
func ExecuteDeleteEvent(ctx context.Context, eventID string, actor Actor, deps DeleteEventDeps) error {
	if eventID == "" {
		return errors.New("event ID is required")
	}

	e, err := loadScoped(ctx, deps.EventStore, eventID, actor)
	if err != nil {
		return err
	}

	if err := deps.EventStore.Delete(ctx, e.ID); err != nil {
		return err
	}
	slog.Info("event_event", "event", "event_deleted", "event_id", e.ID, "by", actor.AccountID)
	return nil
}

// loadScoped fetches an event through the owner-scoped lookup unless the
// actor is elevated, so foreign events stay indistinguishable from absent ones.
func loadScoped(ctx context.Context, store EventStoreForOrchestrator, eventID string, actor Actor) (event.Event, error) {
	if actor.Elevated {
		return store.GetByID(ctx, eventID)
	}
	return store.GetByIDForOrganizer(ctx, eventID, actor.AccountID)
}
