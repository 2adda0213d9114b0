package services

import (
	"floreria/internal/domain"
	"floreria/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// Page clamps list pagination; page_size is capped at 100.
func Page(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return pageSize, (page - 1) * pageSize
}

func (s *CatalogService) ListCategories(v domain.Viewer) ([]domain.Category, error) {
	return s.Cats.List(v)
}

func (s *CatalogService) GetCategory(v domain.Viewer, slug string) (domain.Category, error) {
	return s.Cats.BySlug(v, slug)
}

// ListProducts applies the viewer's visibility plus an optional exact
// category-slug filter and returns the page with its total count.
func (s *CatalogService) ListProducts(v domain.Viewer, categorySlug string, page, pageSize int) ([]domain.Product, int, error) {
	limit, offset := Page(page, pageSize)
	items, err := s.Prods.List(v, categorySlug, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.Prods.CountVisible(v, categorySlug)
	if err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// ProductsUnderCategory is the category-scoped product listing. The
// category itself is resolved under the same viewer, so a public caller
// asking for an inactive category gets not-found rather than an empty list.
func (s *CatalogService) ProductsUnderCategory(v domain.Viewer, categorySlug string, page, pageSize int) ([]domain.Product, int, error) {
	if _, err := s.Cats.BySlug(v, categorySlug); err != nil {
		return nil, 0, err
	}
	return s.ListProducts(v, categorySlug, page, pageSize)
}

func (s *CatalogService) GetProduct(v domain.Viewer, slug string) (domain.Product, error) {
	return s.Prods.BySlug(v, slug)
}
