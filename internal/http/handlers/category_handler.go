package handlers

import (
	"github.com/gofiber/fiber/v2"

	"floreria/internal/domain"
	applog "floreria/internal/log"
	"floreria/internal/services"
	"floreria/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

type categoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Active      *bool  `json:"is_active"`
	SortOrder   int    `json:"order"`
}

func (in *categoryInput) toDomain() (domain.Category, string) {
	name, ok := validate.Name(in.Name, 100)
	if !ok {
		return domain.Category{}, "name is required (max 100 chars)"
	}
	slug, ok := validate.Slug(in.Slug)
	if !ok {
		return domain.Category{}, "slug must be lowercase letters, digits and hyphens"
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return domain.Category{
		Name: name, Slug: slug, Description: in.Description,
		Active: active, SortOrder: in.SortOrder,
	}, ""
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(viewerOf(c))
	if err != nil {
		return fail(c, "categories.list", err)
	}
	return paged(c, len(cats), cats)
}

// GET /api/v1/categories/:slug
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return badRequest(c, "invalid slug")
	}
	cat, err := h.Catalog.GetCategory(viewerOf(c), slug)
	if err != nil {
		return fail(c, "categories.get", err)
	}
	return c.JSON(cat)
}

// GET /api/v1/categories/:slug/products — products scoped to one category.
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return badRequest(c, "invalid slug")
	}
	page, pageSize := pageParams(c)
	items, count, err := h.Catalog.ProductsUnderCategory(viewerOf(c), slug, page, pageSize)
	if err != nil {
		return fail(c, "categories.products", err)
	}
	return paged(c, count, items)
}

// POST /api/v1/categories (staff)
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in categoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	cat, msg := in.toDomain()
	if msg != "" {
		return badRequest(c, msg)
	}
	if err := h.Catalog.Cats.Create(&cat); err != nil {
		return fail(c, "categories.create", err)
	}
	applog.Audit(c, "categories.create", map[string]any{"slug": cat.Slug})
	out, err := h.Catalog.GetCategory(viewerOf(c), cat.Slug)
	if err != nil {
		return fail(c, "categories.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/v1/categories/:slug (staff)
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	cur, err := h.Catalog.GetCategory(viewerOf(c), c.Params("slug"))
	if err != nil {
		return fail(c, "categories.update", err)
	}
	var in categoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	cat, msg := in.toDomain()
	if msg != "" {
		return badRequest(c, msg)
	}
	if err := h.Catalog.Cats.Update(cur.ID, &cat); err != nil {
		return fail(c, "categories.update", err)
	}
	applog.Audit(c, "categories.update", map[string]any{"slug": cat.Slug})
	out, err := h.Catalog.GetCategory(viewerOf(c), cat.Slug)
	if err != nil {
		return fail(c, "categories.update", err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/categories/:slug (staff) — blocked while products remain.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	cur, err := h.Catalog.GetCategory(viewerOf(c), c.Params("slug"))
	if err != nil {
		return fail(c, "categories.delete", err)
	}
	if err := h.Catalog.Cats.Delete(cur.ID); err != nil {
		return fail(c, "categories.delete", err)
	}
	applog.Audit(c, "categories.delete", map[string]any{"slug": cur.Slug})
	return c.SendStatus(fiber.StatusNoContent)
}
