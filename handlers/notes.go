package handlers

import (
	"oruma/app"
	"oruma/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotes returns every note, or the notes of one category with ?category=
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("category")
		if raw == "" {
			notes, err := a.Notes.GetAll()
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch notes", err)
			}
			return success(c, fiber.Map{"notes": notes})
		}

		category, err := models.ParseNoteCategory(raw)
		if err != nil {
			return badRequest(c, err.Error())
		}

		notes, err := a.Notes.GetByCategory(category)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}
		return success(c, fiber.Map{"notes": notes})
	}
}

func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note id")
		}

		note, err := a.Notes.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch note", err)
		}
		if note == nil {
			return notFound(c, "Note not found")
		}
		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote attaches a note to an existing contact
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.NoteInput
		if err := c.BodyParser(&input); err != nil {
			return badRequest(c, "Invalid request body")
		}

		note, err := a.Notes.Create(input)
		if err != nil {
			return storeError(c, "Failed to create note", err)
		}
		return created(c, fiber.Map{"note": note})
	}
}

func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note id")
		}

		var patch models.NotePatch
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if patch.IsEmpty() {
			return badRequest(c, "No fields to update")
		}

		updated, err := a.Notes.Update(id, patch)
		if err != nil {
			return storeError(c, "Failed to update note", err)
		}
		if !updated {
			return notFound(c, "Note not found")
		}

		note, err := a.Notes.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch note", err)
		}
		return success(c, fiber.Map{"note": note})
	}
}

func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid note id")
		}

		deleted, err := a.Notes.Delete(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to delete note", err)
		}
		if !deleted {
			return notFound(c, "Note not found")
		}
		return success(c, fiber.Map{"success": true})
	}
}
