package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"floreria/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, COALESCE(user_id,'') AS user_id, status, subtotal, shipping_cost,
  discount_total, total, payment_method, payment_status, shipping_full_name,
  shipping_phone, shipping_address_text, notes_customer, notes_admin,
  created_at, updated_at`

// CreateFromCart persists a materialized order in a single transaction:
// stock is decremented per line under a guard (no row updated means the
// product ran out and the whole order fails with a conflict), the order
// header and frozen line items are inserted, and the source cart flips to
// CONVERTED. Nothing is observable on failure.
func (r *OrderRepo) CreateFromCart(o *domain.Order, cartID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range o.Items {
		res, err := tx.Exec(`
			UPDATE products SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND stock >= ?
		`, it.Quantity, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("insufficient stock for %q: %w", it.ProductID, domain.ErrConflict)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO orders(id, user_id, status, subtotal, shipping_cost, discount_total, total,
		  payment_method, payment_status, shipping_full_name, shipping_phone,
		  shipping_address_text, notes_customer)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, o.ID, nullable(o.UserID), o.Status, o.Subtotal, o.ShippingCost, o.DiscountTotal,
		o.Total, o.PaymentMethod, o.PaymentStatus, o.ShippingName, o.ShippingPhone,
		o.ShippingAddress, o.NotesCustomer); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items(id, order_id, product_id, product_name_snapshot,
			  unit_price_snapshot, quantity, line_total)
			VALUES(?,?,?,?,?,?,?)
		`, it.ID, o.ID, it.ProductID, it.NameSnapshot, it.UnitPriceSnapshot,
			it.Quantity, it.LineTotal); err != nil {
			return err
		}
	}

	res, err := tx.Exec(`
		UPDATE carts SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, domain.CartConverted, cartID, domain.CartOpen)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("cart %q is not open: %w", cartID, domain.ErrConflict)
	}

	return tx.Commit()
}

// ByID enforces ownership: staff read anything, a user reads only their
// own orders, anonymous callers never reach this point (handler rejects).
func (r *OrderRepo) ByID(v domain.Viewer, id string) (domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, err
	}
	if !v.Staff && o.UserID != v.UserID {
		// Hidden, not merely forbidden: don't leak order existence.
		return domain.Order{}, fmt.Errorf("order %q: %w", id, domain.ErrNotFound)
	}
	items, err := r.ItemsOf(id)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) ItemsOf(orderID string) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.db.Select(&out, `
		SELECT id, order_id, product_id, product_name_snapshot, unit_price_snapshot,
		       quantity, line_total
		FROM order_items WHERE order_id = ?
		ORDER BY id
	`, orderID)
	return out, err
}

func (r *OrderRepo) List(v domain.Viewer, limit, offset int) ([]domain.Order, error) {
	q := `SELECT ` + orderCols + ` FROM orders`
	args := []any{}
	if !v.Staff {
		q += ` WHERE user_id = ?`
		args = append(args, v.UserID)
	}
	q += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Order{}
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.ItemsOf(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *OrderRepo) Count(v domain.Viewer) (int, error) {
	q := `SELECT COUNT(*) FROM orders`
	args := []any{}
	if !v.Staff {
		q += ` WHERE user_id = ?`
		args = append(args, v.UserID)
	}
	var n int
	err := r.db.Get(&n, q, args...)
	return n, err
}

func (r *OrderRepo) UpdateStatus(id, status, paymentStatus string) error {
	res, err := r.db.Exec(`
		UPDATE orders SET status = ?, payment_status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, status, paymentStatus, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
