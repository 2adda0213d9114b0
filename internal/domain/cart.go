package domain

import "github.com/shopspring/decimal"

const (
	CartOpen      = "OPEN"
	CartConverted = "CONVERTED"
	CartAbandoned = "ABANDONED"
)

// A cart may belong to a user, to an anonymous session token, or both
// (a session cart adopted at login keeps its session id).
type Cart struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id,omitempty"`
	SessionID string `db:"session_id" json:"session_id,omitempty"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`

	Items []CartItem `db:"-" json:"items"`
}

// UnitPriceSnapshot is the price at the moment the item entered the cart,
// taken as given by the caller and never re-derived from the product row.
type CartItem struct {
	CartID            string          `db:"cart_id" json:"-"`
	ProductID         string          `db:"product_id" json:"product"`
	Quantity          int             `db:"quantity" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `db:"unit_price_snapshot" json:"unit_price_snapshot"`
}
