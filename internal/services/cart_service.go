package services

import (
	"fmt"

	"floreria/internal/domain"
	"floreria/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

// Create opens a cart for the viewer. Anonymous callers identify it by a
// session token; authenticated callers get it bound to their user id
// (both may be present at once).
func (s *CartService) Create(v domain.Viewer, sessionID string, items []domain.CartItem) (domain.Cart, error) {
	c := domain.Cart{UserID: v.UserID, SessionID: sessionID, Status: domain.CartOpen}
	if err := s.Carts.Create(&c); err != nil {
		return domain.Cart{}, err
	}
	if len(items) > 0 {
		if err := s.Carts.Replace(c.ID, items); err != nil {
			return domain.Cart{}, err
		}
	}
	return s.Carts.ByID(c.ID)
}

func (s *CartService) Get(id string) (domain.Cart, error) {
	return s.Carts.ByID(id)
}

// Update replaces the cart's item set wholesale and rewrites its status.
// The payload is the cart's complete intended state, not a delta.
func (s *CartService) Update(v domain.Viewer, id string, sessionID, status string, items []domain.CartItem) (domain.Cart, error) {
	cur, err := s.Carts.ByID(id)
	if err != nil {
		return domain.Cart{}, err
	}
	if status == "" {
		status = cur.Status
	}
	if status != domain.CartOpen && status != domain.CartConverted && status != domain.CartAbandoned {
		return domain.Cart{}, fmt.Errorf("unknown cart status %q: %w", status, domain.ErrValidation)
	}
	if sessionID == "" {
		sessionID = cur.SessionID
	}
	meta := domain.Cart{UserID: cur.UserID, SessionID: sessionID, Status: status}
	if v.UserID != "" {
		meta.UserID = v.UserID
	}
	if err := s.Carts.UpdateMeta(id, &meta); err != nil {
		return domain.Cart{}, err
	}
	if items != nil {
		if err := s.Carts.Replace(id, items); err != nil {
			return domain.Cart{}, err
		}
	}
	return s.Carts.ByID(id)
}

func (s *CartService) Delete(id string) error {
	return s.Carts.Delete(id)
}

func (s *CartService) List(v domain.Viewer, page, pageSize int) ([]domain.Cart, error) {
	limit, offset := Page(page, pageSize)
	return s.Carts.List(v, limit, offset)
}
