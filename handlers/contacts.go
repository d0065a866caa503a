package handlers

import (
	"errors"
	"net/url"

	"oruma/app"
	"oruma/models"
	"oruma/services"

	"github.com/gofiber/fiber/v2"
)

// ListContacts returns every contact, or the contacts of one category with ?category=
func ListContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("category")
		if raw == "" {
			contacts, err := a.Contacts.GetAll()
			if err != nil {
				return serverErrorWithDetails(c, "Failed to fetch contacts", err)
			}
			return success(c, fiber.Map{"contacts": contacts})
		}

		category, err := models.ParseContactCategory(raw)
		if err != nil {
			return badRequest(c, err.Error())
		}

		contacts, err := a.Contacts.GetByCategory(category)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contacts", err)
		}
		return success(c, fiber.Map{"contacts": contacts})
	}
}

// ContactSummary returns every contact with its note count, sorted by name
func ContactSummary(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contacts, err := a.Contacts.GetAllWithNoteCounts()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact summary", err)
		}
		return success(c, fiber.Map{"contacts": contacts})
	}
}

func GetContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid contact id")
		}

		contact, err := a.Contacts.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		if contact == nil {
			return notFound(c, "Contact not found")
		}
		return success(c, fiber.Map{"contact": contact})
	}
}

func GetContactByNativeID(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Route params arrive percent-encoded
		nativeID, err := url.PathUnescape(c.Params("nativeID"))
		if err != nil {
			return badRequest(c, "Invalid nativeID")
		}

		contact, err := a.Contacts.GetByNativeID(nativeID)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		if contact == nil {
			return notFound(c, "Contact not found")
		}
		return success(c, fiber.Map{"contact": contact})
	}
}

func CreateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input models.ContactInput
		if err := c.BodyParser(&input); err != nil {
			return badRequest(c, "Invalid request body")
		}

		contact, err := a.Contacts.Create(input)
		if err != nil {
			return storeError(c, "Failed to create contact", err)
		}
		return created(c, fiber.Map{"contact": contact})
	}
}

// UpdateContact applies a partial update and returns the stored result
func UpdateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid contact id")
		}

		var patch models.ContactPatch
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if patch.IsEmpty() {
			return badRequest(c, "No fields to update")
		}

		updated, err := a.Contacts.Update(id, patch)
		if err != nil {
			return storeError(c, "Failed to update contact", err)
		}
		if !updated {
			return notFound(c, "Contact not found")
		}

		contact, err := a.Contacts.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		return success(c, fiber.Map{"contact": contact})
	}
}

// DeleteContact removes a contact together with its notes
func DeleteContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid contact id")
		}

		deleted, err := a.Contacts.Delete(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to delete contact", err)
		}
		if !deleted {
			return notFound(c, "Contact not found")
		}
		return success(c, fiber.Map{"success": true})
	}
}

// GetContactNotes returns a contact's notes, newest first
func GetContactNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid contact id")
		}

		contact, err := a.Contacts.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		if contact == nil {
			return notFound(c, "Contact not found")
		}

		notes, err := a.Notes.GetByUserID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{
			"contact": contact,
			"notes":   notes,
			"count":   len(notes),
		})
	}
}

// CountContactNotes returns how many notes a contact owns without loading them
func CountContactNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return badRequest(c, "Invalid contact id")
		}

		contact, err := a.Contacts.GetByID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch contact", err)
		}
		if contact == nil {
			return notFound(c, "Contact not found")
		}

		count, err := a.Notes.CountByUserID(id)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to count notes", err)
		}
		return success(c, fiber.Map{"count": count})
	}
}

// ImportContacts saves a device address-book export sent as JSON or YAML
func ImportContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := services.DecodeDeviceContacts(c.Get(fiber.HeaderContentType), c.Body())
		switch {
		case errors.Is(err, services.ErrUnsupportedFormat):
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
		case err != nil:
			return badRequest(c, err.Error())
		}

		result, err := a.Importer.Import(records)
		if errors.Is(err, services.ErrImportTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return storeError(c, "Failed to import contacts", err)
		}

		return success(c, fiber.Map{"result": result})
	}
}
