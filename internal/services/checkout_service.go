package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"floreria/internal/domain"
	"floreria/internal/repos"
)

// CheckoutService materializes an open cart into an immutable order:
// line items are copied with the cart's snapshotted unit price plus the
// product name frozen at this moment, totals are computed fixed-point,
// and stock is decremented atomically with the insert.
type CheckoutService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
}

func NewCheckoutService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{Carts: carts, Prods: prods, Orders: orders}
}

type CheckoutInput struct {
	CartID          string          `json:"cart_id"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingName    string          `json:"shipping_full_name"`
	ShippingPhone   string          `json:"shipping_phone"`
	ShippingAddress string          `json:"shipping_address_text"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	DiscountTotal   decimal.Decimal `json:"discount_total"`
	NotesCustomer   string          `json:"notes_customer"`
}

func (s *CheckoutService) Checkout(v domain.Viewer, in CheckoutInput) (domain.Order, error) {
	cart, err := s.Carts.ByID(in.CartID)
	if err != nil {
		return domain.Order{}, err
	}
	if cart.Status != domain.CartOpen {
		return domain.Order{}, fmt.Errorf("cart %q already %s: %w", cart.ID, cart.Status, domain.ErrConflict)
	}
	if len(cart.Items) == 0 {
		return domain.Order{}, fmt.Errorf("cart is empty: %w", domain.ErrValidation)
	}
	if in.ShippingCost.IsNegative() || in.DiscountTotal.IsNegative() {
		return domain.Order{}, fmt.Errorf("negative shipping or discount: %w", domain.ErrValidation)
	}

	order := domain.Order{
		ID:              uuid.NewString(),
		UserID:          v.UserID,
		Status:          domain.OrderCreated,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   domain.PaymentPending,
		ShippingCost:    in.ShippingCost,
		DiscountTotal:   in.DiscountTotal,
		ShippingName:    in.ShippingName,
		ShippingPhone:   in.ShippingPhone,
		ShippingAddress: in.ShippingAddress,
		NotesCustomer:   in.NotesCustomer,
	}

	subtotal := decimal.Zero
	for _, it := range cart.Items {
		p, err := s.Prods.ByID(it.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		lineTotal := it.UnitPriceSnapshot.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		order.Items = append(order.Items, domain.OrderItem{
			ID:                uuid.NewString(),
			OrderID:           order.ID,
			ProductID:         it.ProductID,
			NameSnapshot:      p.Name,
			UnitPriceSnapshot: it.UnitPriceSnapshot,
			Quantity:          it.Quantity,
			LineTotal:         lineTotal,
		})
	}
	order.Subtotal = subtotal
	order.Total = subtotal.Add(in.ShippingCost).Sub(in.DiscountTotal)
	if order.Total.IsNegative() {
		return domain.Order{}, fmt.Errorf("discount exceeds order value: %w", domain.ErrValidation)
	}

	if err := s.Orders.CreateFromCart(&order, cart.ID); err != nil {
		return domain.Order{}, err
	}
	return s.Orders.ByID(v, order.ID)
}
