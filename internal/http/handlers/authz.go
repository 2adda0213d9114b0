package handlers

import (
	"github.com/gofiber/fiber/v2"

	"floreria/internal/domain"
	applog "floreria/internal/log"
	"floreria/internal/services"
)

// AttachViewer resolves the requester's role once per request from the
// session cookie and stores both the user (if any) and the viewer in
// Locals. Every downstream query filter keys off this single viewer.
func AttachViewer(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer := domain.PublicViewer
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				viewer = domain.ViewerFor(u)
			}
		}
		c.Locals("viewer", viewer)
		return c.Next()
	}
}

func viewerOf(c *fiber.Ctx) domain.Viewer {
	if v, ok := c.Locals("viewer").(domain.Viewer); ok {
		return v
	}
	return domain.PublicViewer
}

func userOf(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// RequireStaff guards write access to catalog, contact inbox and order
// administration.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !viewerOf(c).Staff {
			applog.Security(c, "access.denied.staff", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"kind": "forbidden", "error": "staff only"})
		}
		return c.Next()
	}
}

// RequireUser rejects anonymous requests outright (order access).
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userOf(c) == nil {
			applog.Security(c, "access.denied.anonymous", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"kind": "forbidden", "error": "authentication required"})
		}
		return c.Next()
	}
}
