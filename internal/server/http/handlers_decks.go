package httpserver

import (
	"github.com/gofiber/fiber/v3"

	"github.com/and161185/studyhub/internal/convert"
)

func (h *handlers) createDeck(c fiber.Ctx) error {
	var in convert.DeckRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	d, err := h.svc.Decks.Create(c.Context(), currentAccount(c).ID, in.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(convert.ToDeck(d))
}

func (h *handlers) listDecks(c fiber.Ctx) error {
	ds, err := h.svc.Decks.List(c.Context(), currentAccount(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(convert.ToDeckList(ds))
}

func (h *handlers) getDeck(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Decks.Get(c.Context(), currentAccount(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(convert.ToDeck(d))
}

func (h *handlers) renameDeck(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in convert.DeckRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	d, err := h.svc.Decks.Rename(c.Context(), currentAccount(c).ID, id, in.Name)
	if err != nil {
		return err
	}
	return c.JSON(convert.ToDeck(d))
}

func (h *handlers) deleteDeck(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Decks.Delete(c.Context(), currentAccount(c).ID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Deck deleted successfully"})
}

func (h *handlers) deckCards(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cs, err := h.svc.Decks.Cards(c.Context(), currentAccount(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(convert.ToCards(cs))
}
