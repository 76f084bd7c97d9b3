package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/repository"
)

// DeckService defines owner-scoped deck operations. Every read and write checks
// existence first (ErrNotFound) and ownership second (ErrForbidden).
type DeckService interface {
	// Create stores a new empty deck.
	Create(ctx context.Context, ownerID uuid.UUID, name string) (model.Deck, error)
	// List returns the owner's decks with cards populated newest first.
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Deck, error)
	// Get returns one deck with cards populated in insertion order.
	Get(ctx context.Context, ownerID, id uuid.UUID) (model.Deck, error)
	// Rename changes the deck name.
	Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (model.Deck, error)
	// Delete removes the deck and every card in it.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// Cards returns the deck's cards in insertion order.
	Cards(ctx context.Context, ownerID, id uuid.UUID) ([]model.Card, error)
}

type DeckServiceImpl struct {
	decks repository.DeckRepository
	cards repository.CardRepository
}

// NewDeckService constructs DeckService.
func NewDeckService(decks repository.DeckRepository, cards repository.CardRepository) *DeckServiceImpl {
	return &DeckServiceImpl{decks: decks, cards: cards}
}

// Create validates the name and inserts the deck.
func (s *DeckServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, name string) (model.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Deck{}, errs.Invalid("Name is required")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.Deck{}, err
	}
	d := &model.Deck{ID: id, OwnerID: ownerID, Name: name, Cards: []model.Card{}}
	if err := s.decks.Create(ctx, d); err != nil {
		return model.Deck{}, err
	}
	return *d, nil
}

// List loads decks and their cards with two queries.
func (s *DeckServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]model.Deck, error) {
	decks, err := s.decks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(decks) == 0 {
		return decks, nil
	}

	ids := make([]uuid.UUID, len(decks))
	for i := range decks {
		ids[i] = decks[i].ID
	}
	cards, err := s.cards.ListByDecks(ctx, ids)
	if err != nil {
		return nil, err
	}

	byDeck := make(map[uuid.UUID][]model.Card, len(decks))
	for _, c := range cards {
		byDeck[c.DeckID] = append(byDeck[c.DeckID], c)
	}
	for i := range decks {
		decks[i].Cards = byDeck[decks[i].ID]
		if decks[i].Cards == nil {
			decks[i].Cards = []model.Card{}
		}
	}
	return decks, nil
}

// Get returns the deck if the caller owns it.
func (s *DeckServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Deck, error) {
	d, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return model.Deck{}, err
	}
	if d.Cards, err = s.cards.ListByDeck(ctx, d.ID); err != nil {
		return model.Deck{}, err
	}
	return *d, nil
}

// Rename requires a non-empty name, then applies existence and ownership checks.
func (s *DeckServiceImpl) Rename(ctx context.Context, ownerID, id uuid.UUID, name string) (model.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Deck{}, errs.Invalid("Name is required")
	}
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return model.Deck{}, err
	}
	d, err := s.decks.Rename(ctx, id, name)
	if err != nil {
		return model.Deck{}, deckErr(err)
	}
	if d.Cards, err = s.cards.ListByDeck(ctx, d.ID); err != nil {
		return model.Deck{}, err
	}
	return *d, nil
}

// Delete removes the deck and its cards.
func (s *DeckServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return deckErr(s.decks.Delete(ctx, id))
}

// Cards lists a deck's cards for its owner.
func (s *DeckServiceImpl) Cards(ctx context.Context, ownerID, id uuid.UUID) ([]model.Card, error) {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.cards.ListByDeck(ctx, id)
}

func (s *DeckServiceImpl) owned(ctx context.Context, ownerID, id uuid.UUID) (*model.Deck, error) {
	d, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, deckErr(err)
	}
	if d.OwnerID != ownerID {
		return nil, errs.ErrForbidden
	}
	return d, nil
}

func deckErr(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return errs.NotFound("Deck")
	}
	return err
}
