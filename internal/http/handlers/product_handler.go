package handlers

import (
	"github.com/gofiber/fiber/v2"

	"floreria/internal/domain"
	applog "floreria/internal/log"
	"floreria/internal/repos"
	"floreria/internal/services"
	"floreria/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Stock   *services.StockService
	Prods   *repos.ProductRepo
}

type productInput struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	SKU         string `json:"sku"`
	ShortDesc   string `json:"short_description"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	ImageMain   string `json:"image_principal"`
	Featured    bool   `json:"is_featured"`
	Active      *bool  `json:"is_active"`
}

func (in *productInput) toDomain() (domain.Product, string) {
	name, ok := validate.Name(in.Name, 150)
	if !ok {
		return domain.Product{}, "name is required (max 150 chars)"
	}
	slug, ok := validate.Slug(in.Slug)
	if !ok {
		return domain.Product{}, "slug must be lowercase letters, digits and hyphens"
	}
	if _, ok := validate.ID(in.CategoryID); !ok {
		return domain.Product{}, "category_id is required"
	}
	price, ok := validate.Price(in.Price)
	if !ok {
		return domain.Product{}, "price must be a non-negative amount with at most 2 decimals"
	}
	if in.Stock < 0 {
		return domain.Product{}, "stock must be non-negative"
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	return domain.Product{
		CategoryID: in.CategoryID, Name: name, Slug: slug, SKU: in.SKU,
		ShortDesc: in.ShortDesc, Description: in.Description,
		Price: price, Stock: in.Stock, ImagePrincipal: in.ImageMain,
		Featured: in.Featured, Active: active,
	}, ""
}

// GET /api/v1/products?category=<slug>&page=&page_size=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	categorySlug := c.Query("category")
	if categorySlug != "" {
		var ok bool
		if categorySlug, ok = validate.Slug(categorySlug); !ok {
			return badRequest(c, "invalid category filter")
		}
	}
	page, pageSize := pageParams(c)
	items, count, err := h.Catalog.ListProducts(viewerOf(c), categorySlug, page, pageSize)
	if err != nil {
		return fail(c, "products.list", err)
	}
	return paged(c, count, items)
}

// GET /api/v1/products/:slug
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return badRequest(c, "invalid slug")
	}
	p, err := h.Catalog.GetProduct(viewerOf(c), slug)
	if err != nil {
		return fail(c, "products.get", err)
	}
	return c.JSON(p)
}

// GET /api/v1/products/:slug/availability
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return badRequest(c, "invalid slug")
	}
	avail, err := h.Stock.CheckAvailability(viewerOf(c), slug)
	if err != nil {
		return fail(c, "products.availability", err)
	}
	return c.JSON(avail)
}

// POST /api/v1/products (staff)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	p, msg := in.toDomain()
	if msg != "" {
		return badRequest(c, msg)
	}
	if err := h.Prods.Create(&p); err != nil {
		return fail(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"slug": p.Slug})
	out, err := h.Catalog.GetProduct(viewerOf(c), p.Slug)
	if err != nil {
		return fail(c, "products.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/v1/products/:slug (staff)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	cur, err := h.Catalog.GetProduct(viewerOf(c), c.Params("slug"))
	if err != nil {
		return fail(c, "products.update", err)
	}
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	p, msg := in.toDomain()
	if msg != "" {
		return badRequest(c, msg)
	}
	if err := h.Prods.Update(cur.ID, &p); err != nil {
		return fail(c, "products.update", err)
	}
	applog.Audit(c, "products.update", map[string]any{"slug": p.Slug})
	out, err := h.Catalog.GetProduct(viewerOf(c), p.Slug)
	if err != nil {
		return fail(c, "products.update", err)
	}
	return c.JSON(out)
}

// DELETE /api/v1/products/:slug (staff) — cascades gallery images, blocked
// while cart or order items reference the product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	cur, err := h.Catalog.GetProduct(viewerOf(c), c.Params("slug"))
	if err != nil {
		return fail(c, "products.delete", err)
	}
	if err := h.Prods.Delete(cur.ID); err != nil {
		return fail(c, "products.delete", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"slug": cur.Slug})
	return c.SendStatus(fiber.StatusNoContent)
}

type imageInput struct {
	Image     string `json:"image"`
	Main      bool   `json:"is_main"`
	SortOrder int    `json:"order"`
}

// POST /api/v1/products/:slug/images (staff) — registers an uploaded
// gallery image path; binaries live in external object storage.
func (h *ProductHandler) AddImage(c *fiber.Ctx) error {
	cur, err := h.Catalog.GetProduct(viewerOf(c), c.Params("slug"))
	if err != nil {
		return fail(c, "products.images.add", err)
	}
	var in imageInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	if in.Image == "" {
		return badRequest(c, "image path is required")
	}
	img := domain.ProductImage{ProductID: cur.ID, Image: in.Image, Main: in.Main, SortOrder: in.SortOrder}
	if err := h.Prods.AddImage(&img); err != nil {
		return fail(c, "products.images.add", err)
	}
	applog.Audit(c, "products.images.add", map[string]any{"slug": cur.Slug, "image": in.Image})
	return c.Status(fiber.StatusCreated).JSON(img)
}
