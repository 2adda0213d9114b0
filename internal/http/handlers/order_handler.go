package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "floreria/internal/log"
	"floreria/internal/repos"
	"floreria/internal/services"
	"floreria/internal/validate"
)

// All order routes sit behind RequireUser: anonymous requests are
// rejected outright, never answered with an empty list.
type OrderHandler struct {
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
}

// GET /api/v1/orders — own orders; staff sees everything.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page, pageSize := pageParams(c)
	limit, offset := services.Page(page, pageSize)
	v := viewerOf(c)
	orders, err := h.Orders.List(v, limit, offset)
	if err != nil {
		return fail(c, "orders.list", err)
	}
	count, err := h.Orders.Count(v)
	if err != nil {
		return fail(c, "orders.list", err)
	}
	return paged(c, count, orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	o, err := h.Orders.ByID(viewerOf(c), id)
	if err != nil {
		return fail(c, "orders.get", err)
	}
	return c.JSON(o)
}

// POST /api/v1/orders/checkout — materializes an open cart into an order.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	if _, ok := validate.ID(in.CartID); !ok {
		return badRequest(c, "cart_id is required")
	}
	if !validate.PaymentMethod(in.PaymentMethod) {
		return badRequest(c, "payment_method must be CARD, YAPE, PLIN, TRANSFER or CASH")
	}
	var ok bool
	if in.ShippingName, ok = validate.Name(in.ShippingName, 150); !ok {
		return badRequest(c, "shipping_full_name is required (max 150 chars)")
	}
	if in.ShippingPhone, ok = validate.Phone(in.ShippingPhone); !ok {
		return badRequest(c, "invalid shipping_phone")
	}
	if in.ShippingAddress, ok = validate.Name(in.ShippingAddress, 255); !ok {
		return badRequest(c, "shipping_address_text is required (max 255 chars)")
	}

	o, err := h.Checkout.Checkout(viewerOf(c), in)
	if err != nil {
		return fail(c, "orders.checkout", err)
	}
	applog.Audit(c, "orders.checkout", map[string]any{
		"order_id": o.ID,
		"cart_id":  in.CartID,
		"total":    o.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// PUT /api/v1/orders/:id/status (staff)
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	cur, err := h.Orders.ByID(viewerOf(c), id)
	if err != nil {
		return fail(c, "orders.status", err)
	}
	if in.Status == "" {
		in.Status = cur.Status
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = cur.PaymentStatus
	}
	if !validate.OrderStatus(in.Status) {
		return badRequest(c, "invalid order status")
	}
	if !validate.PaymentStatus(in.PaymentStatus) {
		return badRequest(c, "invalid payment status")
	}
	if err := h.Orders.UpdateStatus(id, in.Status, in.PaymentStatus); err != nil {
		return fail(c, "orders.status", err)
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": in.Status, "payment_status": in.PaymentStatus})
	o, err := h.Orders.ByID(viewerOf(c), id)
	if err != nil {
		return fail(c, "orders.status", err)
	}
	return c.JSON(o)
}
