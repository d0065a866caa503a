package handlers

import (
	"errors"
	"log/slog"

	"oruma/database"
	"oruma/middleware"
	"oruma/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, errs validator.ValidationErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": errs,
	})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	slog.Error("server error",
		"request_id", middleware.RequestID(c),
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// storeError maps a store failure onto a response
func storeError(c *fiber.Ctx, message string, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return validationError(c, verrs)
	case errors.Is(err, database.ErrDuplicateNativeID):
		return conflict(c, "A contact with this nativeID already exists")
	case errors.Is(err, database.ErrUnknownContact):
		return conflict(c, "Contact does not exist")
	case errors.Is(err, database.ErrConstraintViolation):
		return conflict(c, "Constraint violation")
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

// paramID reads a positive integer route parameter
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
