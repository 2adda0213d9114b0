package services

import (
	"floreria/internal/domain"
	"floreria/internal/repos"
)

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}

type StockService struct {
	Prods *repos.ProductRepo
}

func NewStockService(prods *repos.ProductRepo) *StockService {
	return &StockService{Prods: prods}
}

// CheckAvailability maps a product's stock count onto the storefront's
// three-level availability badge.
func (s *StockService) CheckAvailability(v domain.Viewer, slug string) (Availability, error) {
	p, err := s.Prods.BySlug(v, slug)
	if err != nil {
		return Availability{}, err
	}
	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return Availability{Status: status, Qty: p.Stock}, nil
}
