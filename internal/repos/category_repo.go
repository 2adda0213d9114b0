package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"floreria/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, name, slug, description, is_active, sort_order, created_at, updated_at`

// List returns categories visible to the viewer, ordered by sort_order
// then name. The public view hides inactive categories.
func (r *CategoryRepo) List(v domain.Viewer) ([]domain.Category, error) {
	q := `SELECT ` + categoryCols + ` FROM categories`
	if !v.Staff {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY sort_order, name`

	out := []domain.Category{}
	err := r.db.Select(&out, q)
	return out, err
}

func (r *CategoryRepo) BySlug(v domain.Viewer, slug string) (domain.Category, error) {
	q := `SELECT ` + categoryCols + ` FROM categories WHERE slug = ?`
	if !v.Staff {
		q += ` AND is_active = 1`
	}
	var c domain.Category
	if err := r.db.Get(&c, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, fmt.Errorf("category %q: %w", slug, domain.ErrNotFound)
		}
		return domain.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepo) Create(c *domain.Category) error {
	if taken, err := r.slugOrNameTaken(c.Slug, c.Name, ""); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("category name/slug already in use: %w", domain.ErrValidation)
	}
	c.ID = uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO categories(id, name, slug, description, is_active, sort_order)
		VALUES(?,?,?,?,?,?)
	`, c.ID, c.Name, c.Slug, c.Description, c.Active, c.SortOrder)
	return err
}

func (r *CategoryRepo) Update(id string, c *domain.Category) error {
	if taken, err := r.slugOrNameTaken(c.Slug, c.Name, id); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("category name/slug already in use: %w", domain.ErrValidation)
	}
	res, err := r.db.Exec(`
		UPDATE categories
		SET name = ?, slug = ?, description = ?, is_active = ?, sort_order = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, c.Name, c.Slug, c.Description, c.Active, c.SortOrder, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an empty category. A category still referenced by
// products is protected, never cascaded.
func (r *CategoryRepo) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var refs int
	if err := tx.Get(&refs, `SELECT COUNT(*) FROM products WHERE category_id = ?`, id); err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("category has %d products: %w", refs, domain.ErrProtected)
	}
	res, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *CategoryRepo) slugOrNameTaken(slug, name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
		SELECT COUNT(*) FROM categories
		WHERE (slug = ? OR name = ?) AND id != ?
	`, slug, name, excludeID)
	return n > 0, err
}
