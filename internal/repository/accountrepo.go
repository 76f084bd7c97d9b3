// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepository provides access to registered accounts.
type AccountRepository interface {
	// Create inserts a new account; duplicates fail with ErrEmailTaken or ErrUsernameTaken.
	Create(ctx context.Context, a *model.Account) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByEmail loads an account by email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	// Taken reports whether the email and the username are already registered.
	Taken(ctx context.Context, email, username string) (emailTaken, usernameTaken bool, err error)
	// Delete removes the account together with everything it owns.
	Delete(ctx context.Context, id uuid.UUID) error
}
