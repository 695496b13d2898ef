package event

import (
	"context"
	"errors"

	domain "eventos/internal/domain/event"
)

// ErrDuplicateAccessCode signals that Save hit the UNIQUE constraint on the
// access code. Callers regenerate the code and retry.
var ErrDuplicateAccessCode = errors.New("access code already in use")

// Store persists Event state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	// GetByAccessCode resolves a guest-supplied code. The code must already be
	// normalized to uppercase; stored codes always are.
	GetByAccessCode(ctx context.Context, code string) (domain.Event, error)
	// GetByIDForOrganizer scopes the lookup to the owning organizer. A
	// mismatch is indistinguishable from absence (sql.ErrNoRows), so the
	// caller cannot leak whether a foreign event exists.
	GetByIDForOrganizer(ctx context.Context, id, organizerID string) (domain.Event, error)
	Save(ctx context.Context, e domain.Event) error
	// Delete removes the event and all of its responses in one transaction.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
}

// ListFilter carries filtering parameters for List operations.
// An empty OrganizerID lists events for all organizers (elevated view).
type ListFilter struct {
	OrganizerID string
}
