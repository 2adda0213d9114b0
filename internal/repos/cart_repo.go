package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"floreria/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, COALESCE(user_id,'') AS user_id, COALESCE(session_id,'') AS session_id,
  status, created_at, updated_at`

func (r *CartRepo) Create(c *domain.Cart) error {
	c.ID = uuid.NewString()
	if c.Status == "" {
		c.Status = domain.CartOpen
	}
	_, err := r.db.Exec(`
		INSERT INTO carts(id, user_id, session_id, status)
		VALUES(?,?,?,?)
	`, c.ID, nullable(c.UserID), nullable(c.SessionID), c.Status)
	return err
}

func (r *CartRepo) ByID(id string) (domain.Cart, error) {
	var c domain.Cart
	if err := r.db.Get(&c, `SELECT `+cartCols+` FROM carts WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, fmt.Errorf("cart %q: %w", id, domain.ErrNotFound)
		}
		return domain.Cart{}, err
	}
	items, err := r.Items(c.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	c.Items = items
	return c, nil
}

func (r *CartRepo) Items(cartID string) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := r.db.Select(&out, `
		SELECT cart_id, product_id, quantity, unit_price_snapshot
		FROM cart_items WHERE cart_id = ?
		ORDER BY product_id
	`, cartID)
	return out, err
}

// Replace swaps the cart's entire item set for the supplied list in one
// transaction: every prior row is deleted, then one row per tuple is
// inserted verbatim (snapshot prices are taken as given, not recomputed).
// A duplicate product in the input is rejected before any write, and any
// failure leaves the previous item set intact.
func (r *CartRepo) Replace(cartID string, items []domain.CartItem) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			return fmt.Errorf("duplicate product %q in cart payload: %w", it.ProductID, domain.ErrValidation)
		}
		seen[it.ProductID] = true
		if it.Quantity < 1 {
			return fmt.Errorf("quantity must be >= 1 for product %q: %w", it.ProductID, domain.ErrValidation)
		}
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.Get(&exists, `SELECT COUNT(*) FROM carts WHERE id = ?`, cartID); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("cart %q: %w", cartID, domain.ErrNotFound)
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	for _, it := range items {
		var known int
		if err := tx.Get(&known, `SELECT COUNT(*) FROM products WHERE id = ?`, it.ProductID); err != nil {
			return err
		}
		if known == 0 {
			return fmt.Errorf("unknown product %q: %w", it.ProductID, domain.ErrValidation)
		}
		if _, err := tx.Exec(`
			INSERT INTO cart_items(cart_id, product_id, quantity, unit_price_snapshot)
			VALUES(?,?,?,?)
		`, cartID, it.ProductID, it.Quantity, it.UnitPriceSnapshot); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`UPDATE carts SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateMeta rewrites the cart's owner, session token and status.
func (r *CartRepo) UpdateMeta(id string, c *domain.Cart) error {
	res, err := r.db.Exec(`
		UPDATE carts SET user_id = ?, session_id = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, nullable(c.UserID), nullable(c.SessionID), c.Status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CartRepo) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM carts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *CartRepo) List(v domain.Viewer, limit, offset int) ([]domain.Cart, error) {
	q := `SELECT ` + cartCols + ` FROM carts`
	args := []any{}
	if !v.Staff {
		q += ` WHERE user_id = ?`
		args = append(args, v.UserID)
	}
	q += ` ORDER BY updated_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Cart{}
	err := r.db.Select(&out, q, args...)
	return out, err
}
