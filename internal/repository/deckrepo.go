package repository

import (
	"context"

	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
)

// DeckRepository provides access to decks. Cards are never embedded by the store.
type DeckRepository interface {
	// Create inserts a new deck and fills its timestamps.
	Create(ctx context.Context, d *model.Deck) error
	// Get loads a deck by ID regardless of owner.
	Get(ctx context.Context, id uuid.UUID) (*model.Deck, error)
	// ListByOwner returns the owner's decks, oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Deck, error)
	// Rename updates the deck name and returns the stored row.
	Rename(ctx context.Context, id uuid.UUID, name string) (*model.Deck, error)
	// Delete removes the deck and all cards referencing it atomically.
	Delete(ctx context.Context, id uuid.UUID) error
}
