package repository

import (
	"context"

	"github.com/and161185/studyhub/internal/model"
	"github.com/gofrs/uuid/v5"
)

// CardRepository provides access to cards of both variants.
type CardRepository interface {
	// CreateInDeck checks, inside one transaction, that c.DeckID exists (ErrNotFound)
	// and is owned by c.OwnerID (ErrForbidden) before inserting c.
	CreateInDeck(ctx context.Context, c *model.Card) error
	// Get loads a card by ID regardless of owner.
	Get(ctx context.Context, id uuid.UUID) (*model.Card, error)
	// ListByOwner returns the owner's cards in insertion order; empty variant means all.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, variant model.Variant) ([]model.Card, error)
	// ListByDeck returns the deck's cards in insertion order.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]model.Card, error)
	// ListByDecks returns the cards of all given decks, newest first.
	ListByDecks(ctx context.Context, deckIDs []uuid.UUID) ([]model.Card, error)
	// Update stores the variant payload of c and refreshes UpdatedAt.
	Update(ctx context.Context, c *model.Card) error
	// Delete removes a card.
	Delete(ctx context.Context, id uuid.UUID) error
}
