package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"floreria/internal/domain"
	applog "floreria/internal/log"
	"floreria/internal/services"
	"floreria/internal/validate"
)

// Cart access is by id alone, with no ownership check: a deliberate MVP
// trust gap kept from the storefront design (ids are unguessable uuids).
type CartHandler struct {
	Cart *services.CartService
}

type cartItemInput struct {
	Product           string          `json:"product"`
	Quantity          int             `json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `json:"unit_price_snapshot"`
}

type cartInput struct {
	SessionID string          `json:"session_id"`
	Status    string          `json:"status"`
	Items     []cartItemInput `json:"items"`
}

func (in *cartInput) items() ([]domain.CartItem, string) {
	if in.Items == nil {
		return nil, ""
	}
	out := make([]domain.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		if _, ok := validate.ID(it.Product); !ok {
			return nil, "item product id is required"
		}
		if !validate.Qty(it.Quantity) {
			return nil, "item quantity must be between 1 and 100"
		}
		if it.UnitPriceSnapshot.IsNegative() || it.UnitPriceSnapshot.Exponent() < -2 {
			return nil, "unit_price_snapshot must be a non-negative amount with at most 2 decimals"
		}
		out = append(out, domain.CartItem{
			ProductID:         it.Product,
			Quantity:          it.Quantity,
			UnitPriceSnapshot: it.UnitPriceSnapshot,
		})
	}
	return out, ""
}

// POST /api/v1/carts
func (h *CartHandler) Create(c *fiber.Ctx) error {
	var in cartInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	items, msg := in.items()
	if msg != "" {
		return badRequest(c, msg)
	}
	sessionID := in.SessionID
	if sessionID == "" && userOf(c) == nil {
		// Anonymous carts need a handle the frontend can keep.
		sessionID = uuid.NewString()
	}
	cart, err := h.Cart.Create(viewerOf(c), sessionID, items)
	if err != nil {
		return fail(c, "carts.create", err)
	}
	applog.Info(c, "carts.create", map[string]any{"cart_id": cart.ID})
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// GET /api/v1/carts/:id
func (h *CartHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	cart, err := h.Cart.Get(id)
	if err != nil {
		return fail(c, "carts.get", err)
	}
	return c.JSON(cart)
}

// PUT /api/v1/carts/:id — wholesale replacement: the supplied item list
// becomes the cart's exact contents.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in cartInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	items, msg := in.items()
	if msg != "" {
		return badRequest(c, msg)
	}
	cart, err := h.Cart.Update(viewerOf(c), id, in.SessionID, in.Status, items)
	if err != nil {
		return fail(c, "carts.update", err)
	}
	applog.Info(c, "carts.update", map[string]any{"cart_id": cart.ID, "items": len(cart.Items)})
	return c.JSON(cart)
}

// DELETE /api/v1/carts/:id
func (h *CartHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Cart.Delete(id); err != nil {
		return fail(c, "carts.delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/carts (staff sees all; a user sees their own)
func (h *CartHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	carts, err := h.Cart.List(viewerOf(c), page, pageSize)
	if err != nil {
		return fail(c, "carts.list", err)
	}
	return paged(c, len(carts), carts)
}
