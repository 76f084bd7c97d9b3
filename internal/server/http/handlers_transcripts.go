package httpserver

import (
	"github.com/gofiber/fiber/v3"

	"github.com/and161185/studyhub/internal/convert"
	"github.com/and161185/studyhub/internal/service"
)

func (h *handlers) createTranscript(c fiber.Ctx) error {
	var in convert.TranscriptRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	t, err := h.svc.Transcripts.Create(c.Context(), currentAccount(c).ID, service.TranscriptInput(in))
	if err != nil {
		return err
	}
	return c.JSON(convert.ToTranscript(t))
}

func (h *handlers) listTranscripts(c fiber.Ctx) error {
	ts, err := h.svc.Transcripts.List(c.Context(), currentAccount(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(convert.ToTranscripts(ts))
}

func (h *handlers) getTranscript(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.Transcripts.Get(c.Context(), currentAccount(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(convert.ToTranscript(t))
}

func (h *handlers) updateTranscript(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in convert.TranscriptRequest
	if err := c.Bind().Body(&in); err != nil {
		return errInvalidBody
	}
	t, err := h.svc.Transcripts.Update(c.Context(), currentAccount(c).ID, id, service.TranscriptInput(in))
	if err != nil {
		return err
	}
	return c.JSON(convert.ToTranscript(t))
}

func (h *handlers) deleteTranscript(c fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Transcripts.Delete(c.Context(), currentAccount(c).ID, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Transcript deleted"})
}
