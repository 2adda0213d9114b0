package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"floreria/internal/domain"
)

type ContactRepo struct{ db *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactCols = `id, name, email, phone, message, status, created_at, updated_at`

func (r *ContactRepo) Create(cr *domain.ContactRequest) error {
	cr.ID = uuid.NewString()
	cr.Status = domain.ContactNew
	_, err := r.db.Exec(`
		INSERT INTO contact_requests(id, name, email, phone, message, status)
		VALUES(?,?,?,?,?,?)
	`, cr.ID, cr.Name, cr.Email, cr.Phone, cr.Message, cr.Status)
	return err
}

func (r *ContactRepo) List(limit, offset int) ([]domain.ContactRequest, error) {
	out := []domain.ContactRequest{}
	err := r.db.Select(&out, `
		SELECT `+contactCols+` FROM contact_requests
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ContactRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM contact_requests`)
	return n, err
}

func (r *ContactRepo) ByID(id string) (domain.ContactRequest, error) {
	var cr domain.ContactRequest
	err := r.db.Get(&cr, `SELECT `+contactCols+` FROM contact_requests WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ContactRequest{}, fmt.Errorf("contact request %q: %w", id, domain.ErrNotFound)
	}
	return cr, err
}

// UpdateStatus moves a request through NEW -> IN_PROGRESS -> CLOSED.
func (r *ContactRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`
		UPDATE contact_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM contact_requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
