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

// CardInput describes a new card. Only the fields of Variant are read.
type CardInput struct {
	DeckID       uuid.UUID
	Variant      model.Variant
	Term         string
	Definition   string
	Question     string
	ChoiceNumber int
	Choices      []string
}

// CardPatch carries a partial update; zero values leave the stored field untouched.
type CardPatch struct {
	Term         string
	Definition   string
	Question     string
	ChoiceNumber int
	Choices      []string
}

// CardService defines owner-scoped card operations. The variant argument scopes
// reads and writes to one card type; the empty variant accepts both.
type CardService interface {
	// Create validates the payload and attaches the card to a deck the caller owns.
	Create(ctx context.Context, ownerID uuid.UUID, in CardInput) (model.Card, error)
	// List returns the caller's cards.
	List(ctx context.Context, ownerID uuid.UUID, variant model.Variant) ([]model.Card, error)
	// Get returns a card the caller owns.
	Get(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant) (model.Card, error)
	// Update applies a first-non-empty-wins patch to the card's variant fields.
	Update(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant, p CardPatch) (model.Card, error)
	// Delete removes the card; its deck no longer lists it.
	Delete(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant) error
}

type CardServiceImpl struct {
	cards repository.CardRepository
}

// NewCardService constructs CardService.
func NewCardService(cards repository.CardRepository) *CardServiceImpl {
	return &CardServiceImpl{cards: cards}
}

// Create checks the type tag first, then the deck reference, then the payload.
func (s *CardServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, in CardInput) (model.Card, error) {
	if !in.Variant.Valid() {
		return model.Card{}, errs.ErrInvalidVariant
	}
	if in.DeckID == uuid.Nil {
		return model.Card{}, errs.Invalid("Deck ID is required")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.Card{}, err
	}
	c := &model.Card{ID: id, DeckID: in.DeckID, OwnerID: ownerID, Variant: in.Variant}
	switch in.Variant {
	case model.VariantFlashcard:
		c.Flashcard = &model.Flashcard{Term: strings.TrimSpace(in.Term), Definition: strings.TrimSpace(in.Definition)}
	case model.VariantMulticard:
		c.Multicard = &model.Multicard{Question: strings.TrimSpace(in.Question), ChoiceNumber: in.ChoiceNumber, Choices: in.Choices}
	}
	if err := validateCard(c); err != nil {
		return model.Card{}, err
	}

	if err := s.cards.CreateInDeck(ctx, c); err != nil {
		return model.Card{}, deckErr(err)
	}
	return *c, nil
}

// List returns the caller's cards, optionally of one variant.
func (s *CardServiceImpl) List(ctx context.Context, ownerID uuid.UUID, variant model.Variant) ([]model.Card, error) {
	return s.cards.ListByOwner(ctx, ownerID, variant)
}

// Get loads a card and applies variant, existence and ownership checks.
func (s *CardServiceImpl) Get(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant) (model.Card, error) {
	c, err := s.owned(ctx, ownerID, id, variant)
	if err != nil {
		return model.Card{}, err
	}
	return *c, nil
}

// Update merges the patch into the stored card and saves it.
func (s *CardServiceImpl) Update(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant, p CardPatch) (model.Card, error) {
	c, err := s.owned(ctx, ownerID, id, variant)
	if err != nil {
		return model.Card{}, err
	}

	switch c.Variant {
	case model.VariantFlashcard:
		c.Flashcard.Term = firstNonEmpty(p.Term, c.Flashcard.Term)
		c.Flashcard.Definition = firstNonEmpty(p.Definition, c.Flashcard.Definition)
	case model.VariantMulticard:
		c.Multicard.Question = firstNonEmpty(p.Question, c.Multicard.Question)
		if p.ChoiceNumber > 0 {
			c.Multicard.ChoiceNumber = p.ChoiceNumber
		}
		if len(p.Choices) > 0 {
			c.Multicard.Choices = p.Choices
		}
	}

	if err := s.cards.Update(ctx, c); err != nil {
		return model.Card{}, cardErr(err, variant)
	}
	return *c, nil
}

// Delete removes an owned card.
func (s *CardServiceImpl) Delete(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant) error {
	if _, err := s.owned(ctx, ownerID, id, variant); err != nil {
		return err
	}
	return cardErr(s.cards.Delete(ctx, id), variant)
}

func (s *CardServiceImpl) owned(ctx context.Context, ownerID, id uuid.UUID, variant model.Variant) (*model.Card, error) {
	c, err := s.cards.Get(ctx, id)
	if err != nil {
		return nil, cardErr(err, variant)
	}
	if variant != "" && c.Variant != variant {
		return nil, cardErr(errs.ErrNotFound, variant)
	}
	if c.OwnerID != ownerID {
		return nil, errs.ErrForbidden
	}
	return c, nil
}

func validateCard(c *model.Card) error {
	switch c.Variant {
	case model.VariantFlashcard:
		if c.Flashcard.Term == "" {
			return errs.Invalid("Term is required")
		}
		if c.Flashcard.Definition == "" {
			return errs.Invalid("Definition is required")
		}
	case model.VariantMulticard:
		if c.Multicard.Question == "" {
			return errs.Invalid("Question is required")
		}
		if c.Multicard.ChoiceNumber <= 0 {
			return errs.Invalid("Number of choices is required")
		}
		if len(c.Multicard.Choices) == 0 {
			return errs.Invalid("Choices are required")
		}
	}
	return nil
}

func cardErr(err error, variant model.Variant) error {
	if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	if variant == "" {
		return errs.NotFound("Card")
	}
	return errs.NotFound(string(variant))
}

// firstNonEmpty returns incoming trimmed, or current when incoming is blank.
func firstNonEmpty(incoming, current string) string {
	if v := strings.TrimSpace(incoming); v != "" {
		return v
	}
	return current
}
