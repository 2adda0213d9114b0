package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"floreria/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.category_id, p.name, p.slug, COALESCE(p.sku,'') AS sku,
  p.short_description, p.description, p.price, p.stock, p.image_principal,
  p.is_featured, p.is_active, p.created_at, p.updated_at`

// publicOnly restricts to active products inside active categories.
const publicOnly = ` AND p.is_active = 1 AND c.is_active = 1`

// List returns products visible to the viewer, newest first. categorySlug,
// when non-empty, filters by exact category slug.
func (r *ProductRepo) List(v domain.Viewer, categorySlug string, limit, offset int) ([]domain.Product, error) {
	q := `SELECT ` + productCols + `
	  FROM products p JOIN categories c ON c.id = p.category_id
	  WHERE 1 = 1`
	args := []any{}
	if !v.Staff {
		q += publicOnly
	}
	if categorySlug != "" {
		q += ` AND c.slug = ?`
		args = append(args, categorySlug)
	}
	q += ` ORDER BY p.created_at DESC, p.id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Product{}
	if err := r.db.Select(&out, q, args...); err != nil {
		return nil, err
	}
	return r.attachImages(out)
}

// CountVisible reports how many products the viewer can see under the
// optional category filter; used for list pagination envelopes.
func (r *ProductRepo) CountVisible(v domain.Viewer, categorySlug string) (int, error) {
	q := `SELECT COUNT(*)
	  FROM products p JOIN categories c ON c.id = p.category_id
	  WHERE 1 = 1`
	args := []any{}
	if !v.Staff {
		q += publicOnly
	}
	if categorySlug != "" {
		q += ` AND c.slug = ?`
		args = append(args, categorySlug)
	}
	var n int
	err := r.db.Get(&n, q, args...)
	return n, err
}

func (r *ProductRepo) BySlug(v domain.Viewer, slug string) (domain.Product, error) {
	q := `SELECT ` + productCols + `
	  FROM products p JOIN categories c ON c.id = p.category_id
	  WHERE p.slug = ?`
	if !v.Staff {
		q += publicOnly
	}
	var p domain.Product
	if err := r.db.Get(&p, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %q: %w", slug, domain.ErrNotFound)
		}
		return domain.Product{}, err
	}
	imgs, err := r.Images(p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	p.Images = imgs
	return p, nil
}

// ByID ignores visibility; used by cart/checkout internals that already
// hold a product reference.
func (r *ProductRepo) ByID(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products p WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %q: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) error {
	if err := r.checkUnique(p.Slug, p.SKU, ""); err != nil {
		return err
	}
	p.ID = uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO products(id, category_id, name, slug, sku, short_description, description,
		  price, stock, image_principal, is_featured, is_active)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.CategoryID, p.Name, p.Slug, nullable(p.SKU), p.ShortDesc, p.Description,
		p.Price, p.Stock, p.ImagePrincipal, p.Featured, p.Active)
	return err
}

func (r *ProductRepo) Update(id string, p *domain.Product) error {
	if err := r.checkUnique(p.Slug, p.SKU, id); err != nil {
		return err
	}
	res, err := r.db.Exec(`
		UPDATE products
		SET category_id = ?, name = ?, slug = ?, sku = ?, short_description = ?, description = ?,
		    price = ?, stock = ?, image_principal = ?, is_featured = ?, is_active = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.CategoryID, p.Name, p.Slug, nullable(p.SKU), p.ShortDesc, p.Description,
		p.Price, p.Stock, p.ImagePrincipal, p.Featured, p.Active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product and cascades its gallery images. A product
// still referenced by cart or order items is protected.
func (r *ProductRepo) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var carted, ordered int
	if err := tx.Get(&carted, `SELECT COUNT(*) FROM cart_items WHERE product_id = ?`, id); err != nil {
		return err
	}
	if err := tx.Get(&ordered, `SELECT COUNT(*) FROM order_items WHERE product_id = ?`, id); err != nil {
		return err
	}
	if carted > 0 || ordered > 0 {
		return fmt.Errorf("product referenced by %d cart and %d order items: %w",
			carted, ordered, domain.ErrProtected)
	}
	if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// ---------- Gallery ----------

func (r *ProductRepo) Images(productID string) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	err := r.db.Select(&out, `
		SELECT id, product_id, image, is_main, sort_order
		FROM product_images WHERE product_id = ?
		ORDER BY sort_order, id
	`, productID)
	return out, err
}

func (r *ProductRepo) AddImage(img *domain.ProductImage) error {
	img.ID = uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO product_images(id, product_id, image, is_main, sort_order)
		VALUES(?,?,?,?,?)
	`, img.ID, img.ProductID, img.Image, img.Main, img.SortOrder)
	return err
}

func (r *ProductRepo) attachImages(products []domain.Product) ([]domain.Product, error) {
	for i := range products {
		imgs, err := r.Images(products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].Images = imgs
	}
	return products, nil
}

func (r *ProductRepo) checkUnique(slug, sku, excludeID string) error {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE slug = ? AND id != ?`, slug, excludeID); err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("product slug %q already in use: %w", slug, domain.ErrValidation)
	}
	if sku != "" {
		if err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE sku = ? AND id != ?`, sku, excludeID); err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("sku %q already in use: %w", sku, domain.ErrValidation)
		}
	}
	return nil
}

// nullable maps "" to NULL so absent SKUs don't collide on the unique index.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
