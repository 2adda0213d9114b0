package handlers

import (
	"github.com/gofiber/fiber/v2"

	"floreria/internal/domain"
	applog "floreria/internal/log"
	"floreria/internal/repos"
	"floreria/internal/services"
	"floreria/internal/validate"
)

type ContactHandler struct {
	Repo *repos.ContactRepo
}

type contactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// POST /api/v1/contact-requests — open to anonymous visitors.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var in contactInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	name, ok := validate.Name(in.Name, 120)
	if !ok {
		return badRequest(c, "name is required (max 120 chars)")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return badRequest(c, "invalid phone")
	}
	if in.Email != "" {
		if _, ok := validate.Email(in.Email); !ok {
			return badRequest(c, "invalid email")
		}
	}
	if in.Message == "" {
		return badRequest(c, "message is required")
	}

	cr := domain.ContactRequest{Name: name, Email: in.Email, Phone: phone, Message: in.Message}
	if err := h.Repo.Create(&cr); err != nil {
		return fail(c, "contact.create", err)
	}
	applog.Info(c, "contact.create", map[string]any{"id": cr.ID})
	out, err := h.Repo.ByID(cr.ID)
	if err != nil {
		return fail(c, "contact.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/v1/contact-requests (staff)
func (h *ContactHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	limit, offset := services.Page(page, pageSize)
	items, err := h.Repo.List(limit, offset)
	if err != nil {
		return fail(c, "contact.list", err)
	}
	count, err := h.Repo.Count()
	if err != nil {
		return fail(c, "contact.list", err)
	}
	return paged(c, count, items)
}

// GET /api/v1/contact-requests/:id (staff)
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	cr, err := h.Repo.ByID(id)
	if err != nil {
		return fail(c, "contact.get", err)
	}
	return c.JSON(cr)
}

// PUT /api/v1/contact-requests/:id (staff) — status transition only.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	if !validate.ContactStatus(in.Status) {
		return badRequest(c, "status must be NEW, IN_PROGRESS or CLOSED")
	}
	if err := h.Repo.UpdateStatus(id, in.Status); err != nil {
		return fail(c, "contact.update", err)
	}
	applog.Audit(c, "contact.update", map[string]any{"id": id, "status": in.Status})
	cr, err := h.Repo.ByID(id)
	if err != nil {
		return fail(c, "contact.update", err)
	}
	return c.JSON(cr)
}

// DELETE /api/v1/contact-requests/:id (staff)
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.Delete(id); err != nil {
		return fail(c, "contact.delete", err)
	}
	applog.Audit(c, "contact.delete", map[string]any{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
