package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"floreria/internal/domain"
	applog "floreria/internal/log"
)

// fail maps a domain error kind onto its HTTP status and a stable "kind"
// tag so callers can tell the failures apart without parsing messages.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"kind": "not_found", "error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"kind": "forbidden", "error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"kind": "validation", "error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"kind": "conflict", "error": err.Error()})
	case errors.Is(err, domain.ErrProtected):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"kind": "protected", "error": err.Error()})
	}
	// Unexpected: log the detail, answer generically.
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"kind": "internal", "error": "internal error"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"kind": "validation", "error": msg})
}

// paged is the list-endpoint envelope.
func paged(c *fiber.Ctx, count int, results any) error {
	return c.JSON(fiber.Map{"count": count, "results": results})
}

func pageParams(c *fiber.Ctx) (page, pageSize int) {
	return c.QueryInt("page", 1), c.QueryInt("page_size", 12)
}
