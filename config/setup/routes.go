package setup

import (
	"time"

	"oruma/app"
	"oruma/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", handlers.Health(application))

	api := fiberApp.Group("/api")

	// Static segments before :id so they are not read as ids
	api.Get("/contacts", handlers.ListContacts(application))
	api.Get("/contacts/summary", handlers.ContactSummary(application))
	api.Get("/contacts/native/:nativeID", handlers.GetContactByNativeID(application))
	api.Post("/contacts", handlers.CreateContact(application))
	api.Post("/contacts/import", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many imports, try again later",
			})
		},
	}), handlers.ImportContacts(application))
	api.Get("/contacts/:id", handlers.GetContact(application))
	api.Put("/contacts/:id", handlers.UpdateContact(application))
	api.Delete("/contacts/:id", handlers.DeleteContact(application))
	api.Get("/contacts/:id/notes", handlers.GetContactNotes(application))
	api.Get("/contacts/:id/notes/count", handlers.CountContactNotes(application))

	api.Get("/notes", handlers.ListNotes(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Get("/notes/:id", handlers.GetNote(application))
	api.Put("/notes/:id", handlers.UpdateNote(application))
	api.Delete("/notes/:id", handlers.DeleteNote(application))
}
