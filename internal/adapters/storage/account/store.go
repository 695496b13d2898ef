package account

import (
	"context"

	domain "eventos/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
	Count(ctx context.Context) (int, error)
}
