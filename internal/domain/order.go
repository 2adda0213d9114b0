package domain

import "github.com/shopspring/decimal"

const (
	OrderCreated   = "CREATED"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCanceled  = "CANCELED"
)

const (
	PaymentCard     = "CARD"
	PaymentYape     = "YAPE"
	PaymentPlin     = "PLIN"
	PaymentTransfer = "TRANSFER"
	PaymentCash     = "CASH"
)

const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
)

// Order is the permanent historical record of a checkout. Totals obey
// total = subtotal + shipping_cost - discount_total; shipping fields are
// denormalized text, not a structured address.
type Order struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"user_id,omitempty"`
	Status          string          `db:"status" json:"status"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	ShippingCost    decimal.Decimal `db:"shipping_cost" json:"shipping_cost"`
	DiscountTotal   decimal.Decimal `db:"discount_total" json:"discount_total"`
	Total           decimal.Decimal `db:"total" json:"total"`
	PaymentMethod   string          `db:"payment_method" json:"payment_method"`
	PaymentStatus   string          `db:"payment_status" json:"payment_status"`
	ShippingName    string          `db:"shipping_full_name" json:"shipping_full_name"`
	ShippingPhone   string          `db:"shipping_phone" json:"shipping_phone"`
	ShippingAddress string          `db:"shipping_address_text" json:"shipping_address_text"`
	NotesCustomer   string          `db:"notes_customer" json:"notes_customer"`
	NotesAdmin      string          `db:"notes_admin" json:"notes_admin"`
	CreatedAt       string          `db:"created_at" json:"created_at"`
	UpdatedAt       string          `db:"updated_at" json:"updated_at"`

	Items []OrderItem `db:"-" json:"items"`
}

// OrderItem freezes the product name and unit price at purchase time so
// later catalog edits never alter historical orders.
type OrderItem struct {
	ID                string          `db:"id" json:"id"`
	OrderID           string          `db:"order_id" json:"-"`
	ProductID         string          `db:"product_id" json:"product"`
	NameSnapshot      string          `db:"product_name_snapshot" json:"product_name_snapshot"`
	UnitPriceSnapshot decimal.Decimal `db:"unit_price_snapshot" json:"unit_price_snapshot"`
	Quantity          int             `db:"quantity" json:"quantity"`
	LineTotal         decimal.Decimal `db:"line_total" json:"line_total"`
}
