package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventos/internal/domain/account"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// CreateAccountInput carries input for the create account orchestrator.
type CreateAccountInput struct {
	Email    string
	Password string
	Role     string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
}

// ExecuteCreateAccount creates a new organizer or admin account.
// PRE: Email is unique; Password meets the length policy; Role is valid
// POST: Account persisted with a bcrypt password hash; returns the new ID
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	a := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: time.Now(),
	}
	if err := a.Validate(); err != nil {
		return "", err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return "", err
	}
	if err := deps.AccountStore.Save(ctx, a); err != nil {
		return "", err
	}
	slog.Info("account_event", "event", "account_created", "account_id", a.ID, "role", a.Role)
	return a.ID, nil
}

// ExecuteSeedAdmin creates the initial admin account if no accounts exist.
// Idempotent: a populated account table makes this a no-op.
// PRE: email and password are the configured bootstrap credentials
// POST: Exactly one admin exists after first startup
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:    email,
		Password: password,
		Role:     account.RoleAdmin,
	}, CreateAccountDeps{AccountStore: deps.AccountStore})
	if err != nil {
		return err
	}
	slog.Info("account_event", "event", "admin_seeded", "email", email)
	return nil
}
