package handlers

import (
	"github.com/jmoiron/sqlx"

	"floreria/internal/repos"
	"floreria/internal/services"
)

type Deps struct {
	CategoryHandler   *CategoryHandler
	ProductHandler    *ProductHandler
	SiteConfigHandler *SiteConfigHandler
	ContactHandler    *ContactHandler
	CartHandler       *CartHandler
	OrderHandler      *OrderHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	siteRepo := repos.NewSiteConfigRepo(db)
	contactRepo := repos.NewContactRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	stockSvc := services.NewStockService(prodRepo)
	cartSvc := services.NewCartService(cartRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, prodRepo, orderRepo)

	return &Deps{
		CategoryHandler:   &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:    &ProductHandler{Catalog: catalogSvc, Stock: stockSvc, Prods: prodRepo},
		SiteConfigHandler: &SiteConfigHandler{Repo: siteRepo},
		ContactHandler:    &ContactHandler{Repo: contactRepo},
		CartHandler:       &CartHandler{Cart: cartSvc},
		OrderHandler:      &OrderHandler{Checkout: checkoutSvc, Orders: orderRepo},
	}
}
