package httpserver

import (
	"github.com/gofiber/fiber/v3"

	"github.com/and161185/studyhub/internal/convert"
	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/service"
)

// cardRoutes registers CRUD for one variant; the empty variant serves both.
func (h *handlers) cardRoutes(r fiber.Router, variant model.Variant, createStatus int) {
	deleted := "Card deleted"
	if variant != "" {
		deleted = string(variant) + " deleted"
	}

	r.Post("/", func(c fiber.Ctx) error {
		var in convert.CardRequest
		if err := c.Bind().Body(&in); err != nil {
			return errInvalidBody
		}
		deckID, err := convert.ParseDeckRef(in.Deck)
		if err != nil {
			return errInvalidID
		}
		v := model.Variant(in.Type)
		if variant != "" {
			v = variant
		}
		card, err := h.svc.Cards.Create(c.Context(), currentAccount(c).ID, service.CardInput{
			DeckID:       deckID,
			Variant:      v,
			Term:         in.Term,
			Definition:   in.Definition,
			Question:     in.Question,
			ChoiceNumber: in.ChoiceNumber,
			Choices:      in.Choices,
		})
		if err != nil {
			return err
		}
		return c.Status(createStatus).JSON(convert.ToCard(card))
	})

	r.Get("/", func(c fiber.Ctx) error {
		cs, err := h.svc.Cards.List(c.Context(), currentAccount(c).ID, variant)
		if err != nil {
			return err
		}
		return c.JSON(convert.ToCards(cs))
	})

	r.Get("/:id", func(c fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		card, err := h.svc.Cards.Get(c.Context(), currentAccount(c).ID, id, variant)
		if err != nil {
			return err
		}
		return c.JSON(convert.ToCard(card))
	})

	r.Put("/:id", func(c fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var in convert.CardRequest
		if err := c.Bind().Body(&in); err != nil {
			return errInvalidBody
		}
		card, err := h.svc.Cards.Update(c.Context(), currentAccount(c).ID, id, variant, service.CardPatch{
			Term:         in.Term,
			Definition:   in.Definition,
			Question:     in.Question,
			ChoiceNumber: in.ChoiceNumber,
			Choices:      in.Choices,
		})
		if err != nil {
			return err
		}
		return c.JSON(convert.ToCard(card))
	})

	r.Delete("/:id", func(c fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := h.svc.Cards.Delete(c.Context(), currentAccount(c).ID, id, variant); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": deleted})
	})
}
