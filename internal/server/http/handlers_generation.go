package httpserver

import (
	"github.com/gofiber/fiber/v3"

	"github.com/and161185/studyhub/internal/convert"
	"github.com/and161185/studyhub/internal/errs"
	"github.com/and161185/studyhub/internal/service"
)

func (h *handlers) summarize(c fiber.Ctx) error {
	var in convert.PromptRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.svc.Generation.Summarize(c.Context(), in.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"response": out})
}

func (h *handlers) makeFlashcards(c fiber.Ctx) error {
	var in convert.PromptRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	cards, err := h.svc.Generation.GenerateFlashcards(c.Context(), in.Num, in.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

func (h *handlers) transcribe(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errs.Invalid("File is required")
	}
	if fh.Size > service.MaxAudioSize {
		return errs.Invalid("File too large")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	text, err := h.svc.Generation.Transcribe(c.Context(), fh.Filename, f, fh.Size)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"response": fiber.Map{"text": text}})
}
