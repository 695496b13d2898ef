package response

import (
	"context"

	domain "eventos/internal/domain/response"
)

// Store persists Response state. Responses are insert-only: no update or
// delete operation exists here — removal happens solely through the event
// store's cascading Delete.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Response, error)
	Save(ctx context.Context, r domain.Response) error
	ListByEventID(ctx context.Context, eventID string) ([]domain.Response, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}
