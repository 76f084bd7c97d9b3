// Package httpserver exposes the REST API over Fiber.
package httpserver

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"

	"github.com/and161185/studyhub/internal/model"
	"github.com/and161185/studyhub/internal/service"
)

// Services bundles the application services served by the API.
type Services struct {
	Auth        service.AuthService
	Decks       service.DeckService
	Cards       service.CardService
	Transcripts service.TranscriptService
	Generation  service.GenerationService
}

// Config holds listener-independent app settings.
type Config struct {
	BodyLimit   int
	CORSOrigins []string
}

// handlers carries dependencies for route handlers.
type handlers struct {
	svc Services
}

// New builds the Fiber app with middleware and all routes registered.
func New(log *zap.Logger, svc Services, cfg Config) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(log),
	})

	app.Use(RequestLogger(log))
	app.Use(Recover(log))
	if len(cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	}

	h := &handlers{svc: svc}
	auth := RequireAuth(svc.Auth)

	api := app.Group("/api")

	a := api.Group("/auth")
	a.Post("/signup", h.signup)
	a.Post("/signin", h.signin)
	a.Delete("/delete", auth, h.deleteSelf)

	d := api.Group("/decks", auth)
	d.Post("/", h.createDeck)
	d.Get("/", h.listDecks)
	d.Get("/:id", h.getDeck)
	d.Put("/:id", h.renameDeck)
	d.Delete("/:id", h.deleteDeck)
	d.Get("/:id/cards", h.deckCards)

	c := api.Group("/cards", auth)
	h.cardRoutes(c, "", fiber.StatusOK)
	// legacy clients list a deck's cards with POST /api/cards/{deckId}
	c.Post("/:id", h.deckCards)

	h.cardRoutes(api.Group("/flashcards", auth), model.VariantFlashcard, fiber.StatusCreated)
	h.cardRoutes(api.Group("/multicards", auth), model.VariantMulticard, fiber.StatusCreated)

	t := api.Group("/transcripts", auth)
	t.Post("/", h.createTranscript)
	t.Get("/", h.listTranscripts)
	t.Get("/:id", h.getTranscript)
	t.Put("/:id", h.updateTranscript)
	t.Delete("/:id", h.deleteTranscript)

	g := api.Group("/generation", auth)
	g.Post("/summarize", h.summarize)
	g.Post("/make-flashcard", h.makeFlashcards)
	g.Post("/transcribe", h.transcribe)

	return app
}
