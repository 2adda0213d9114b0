package repos_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"floreria/internal/domain"
	"floreria/internal/repos"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(filepath.Join(t.TempDir(), "floreria.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

var staff = domain.Viewer{UserID: "u-staff", Staff: true}

func newCategory(t *testing.T, r *repos.CategoryRepo, slug string) domain.Category {
	t.Helper()
	c := domain.Category{Name: slug, Slug: slug, Active: true}
	require.NoError(t, r.Create(&c))
	return c
}

func newProduct(t *testing.T, r *repos.ProductRepo, categoryID, slug string) domain.Product {
	t.Helper()
	p := domain.Product{
		CategoryID: categoryID,
		Name:       slug,
		Slug:       slug,
		Price:      mustDec(t, "89.90"),
		Stock:      10,
		Active:     true,
	}
	require.NoError(t, r.Create(&p))
	return p
}

func TestCategoryDeleteProtectedWhileReferenced(t *testing.T) {
	db := testDB(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)

	c := newCategory(t, cats, "rosas")
	p := newProduct(t, prods, c.ID, "rosa-roja")

	err := cats.Delete(c.ID)
	require.ErrorIs(t, err, domain.ErrProtected)

	// Still listable after the refused delete.
	_, err = cats.BySlug(staff, "rosas")
	require.NoError(t, err)

	// Empty category deletes cleanly.
	require.NoError(t, prods.Delete(p.ID))
	require.NoError(t, cats.Delete(c.ID))
	_, err = cats.BySlug(staff, "rosas")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryUniqueNameAndSlug(t *testing.T) {
	db := testDB(t)
	cats := repos.NewCategoryRepo(db)
	newCategory(t, cats, "rosas")

	dup := domain.Category{Name: "Otras", Slug: "rosas", Active: true}
	require.ErrorIs(t, cats.Create(&dup), domain.ErrValidation)

	dup = domain.Category{Name: "rosas", Slug: "otras", Active: true}
	require.ErrorIs(t, cats.Create(&dup), domain.ErrValidation)
}

func TestProductDeleteCascadesImages(t *testing.T) {
	db := testDB(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)

	c := newCategory(t, cats, "rosas")
	p := newProduct(t, prods, c.ID, "rosa-roja")
	require.NoError(t, prods.AddImage(&domain.ProductImage{ProductID: p.ID, Image: "media/r1.jpg", Main: true}))
	require.NoError(t, prods.AddImage(&domain.ProductImage{ProductID: p.ID, Image: "media/r2.jpg", SortOrder: 1}))

	require.NoError(t, prods.Delete(p.ID))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM product_images WHERE product_id = ?`, p.ID))
	require.Zero(t, n)
}

func TestProductDeleteProtectedByCartAndOrderItems(t *testing.T) {
	db := testDB(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)
	carts := repos.NewCartRepo(db)

	c := newCategory(t, cats, "rosas")
	p := newProduct(t, prods, c.ID, "rosa-roja")

	cart := domain.Cart{SessionID: "sess-1"}
	require.NoError(t, carts.Create(&cart))
	require.NoError(t, carts.Replace(cart.ID, []domain.CartItem{
		{ProductID: p.ID, Quantity: 1, UnitPriceSnapshot: mustDec(t, "89.90")},
	}))

	require.ErrorIs(t, prods.Delete(p.ID), domain.ErrProtected)

	// Emptying the cart unblocks the delete.
	require.NoError(t, carts.Replace(cart.ID, nil))
	require.NoError(t, prods.Delete(p.ID))
}

func TestProductSKUUniqueButOptional(t *testing.T) {
	db := testDB(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)
	c := newCategory(t, cats, "rosas")

	a := domain.Product{CategoryID: c.ID, Name: "A", Slug: "a", SKU: "FLR-001",
		Price: mustDec(t, "10.00"), Active: true}
	require.NoError(t, prods.Create(&a))

	dup := domain.Product{CategoryID: c.ID, Name: "B", Slug: "b", SKU: "FLR-001",
		Price: mustDec(t, "10.00"), Active: true}
	require.ErrorIs(t, prods.Create(&dup), domain.ErrValidation)

	// Blank SKUs never collide with each other.
	for _, slug := range []string{"c", "d"} {
		p := domain.Product{CategoryID: c.ID, Name: slug, Slug: slug,
			Price: mustDec(t, "10.00"), Active: true}
		require.NoError(t, prods.Create(&p))
	}
}

func TestSiteConfigSingleton(t *testing.T) {
	db := testDB(t)
	r := repos.NewSiteConfigRepo(db)

	_, err := r.Get()
	require.ErrorIs(t, err, domain.ErrNotFound)

	sc := domain.SiteConfig{
		StoreName:      "Florería Jazmín",
		PrimaryColor:   "#1A1A1A",
		SecondaryColor: "#FFFFFF",
		ContactEmail:   "hola@floreria.test",
		MinOrderAmount: mustDec(t, "50.00"),
	}
	require.NoError(t, r.Upsert(&sc))

	sc.StoreName = "Florería Jazmín SAC"
	sc.MaintenanceMode = true
	require.NoError(t, r.Upsert(&sc))

	got, err := r.Get()
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)
	require.Equal(t, "Florería Jazmín SAC", got.StoreName)
	require.True(t, got.MaintenanceMode)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM site_config`))
	require.Equal(t, 1, n)
}

func TestContactRequestLifecycle(t *testing.T) {
	db := testDB(t)
	r := repos.NewContactRepo(db)

	cr := domain.ContactRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		Phone:   "+51 999 888 777",
		Message: "¿Hacen envíos a Miraflores?",
		Status:  "CLOSED", // caller-supplied status is ignored on create
	}
	require.NoError(t, r.Create(&cr))
	require.Equal(t, domain.ContactNew, cr.Status)

	require.NoError(t, r.UpdateStatus(cr.ID, domain.ContactInProgress))
	got, err := r.ByID(cr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ContactInProgress, got.Status)

	require.NoError(t, r.Delete(cr.ID))
	_, err = r.ByID(cr.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, r.UpdateStatus(cr.ID, domain.ContactClosed), domain.ErrNotFound)
}

func TestSeededDatabaseHasDemoCatalogAndUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeded.db")
	db, err := repos.OpenDB(path, true)
	require.NoError(t, err)

	var cats, prods, users int
	require.NoError(t, db.Get(&cats, `SELECT COUNT(*) FROM categories`))
	require.NoError(t, db.Get(&prods, `SELECT COUNT(*) FROM products`))
	require.NoError(t, db.Get(&users, `SELECT COUNT(*) FROM users WHERE role = 'STAFF'`))
	require.Equal(t, 5, cats)
	require.Equal(t, 20, prods)
	require.Equal(t, 1, users)

	// Seeding is idempotent across restarts.
	require.NoError(t, db.Close())
	db, err = repos.OpenDB(path, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Get(&cats, `SELECT COUNT(*) FROM categories`))
	require.Equal(t, 5, cats)
}

func TestOrderStatusUpdate(t *testing.T) {
	db := testDB(t)
	cats := repos.NewCategoryRepo(db)
	prods := repos.NewProductRepo(db)
	carts := repos.NewCartRepo(db)
	orders := repos.NewOrderRepo(db)

	c := newCategory(t, cats, "rosas")
	p := newProduct(t, prods, c.ID, "rosa-roja")

	cart := domain.Cart{SessionID: "sess-1"}
	require.NoError(t, carts.Create(&cart))
	require.NoError(t, carts.Replace(cart.ID, []domain.CartItem{
		{ProductID: p.ID, Quantity: 1, UnitPriceSnapshot: mustDec(t, "89.90")},
	}))

	o := domain.Order{
		ID:            uuid.NewString(),
		Status:        domain.OrderCreated,
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPending,
		Subtotal:      mustDec(t, "89.90"),
		Total:         mustDec(t, "89.90"),
		ShippingName:  "Ana",
		Items: []domain.OrderItem{{
			ID: uuid.NewString(), ProductID: p.ID, NameSnapshot: p.Name,
			UnitPriceSnapshot: mustDec(t, "89.90"), Quantity: 1,
			LineTotal: mustDec(t, "89.90"),
		}},
	}
	require.NoError(t, orders.CreateFromCart(&o, cart.ID))

	require.NoError(t, orders.UpdateStatus(o.ID, domain.OrderPaid, domain.PaymentPaid))
	got, err := orders.ByID(staff, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPaid, got.Status)
	require.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	require.ErrorIs(t, orders.UpdateStatus("no-such-order", domain.OrderPaid, ""), domain.ErrNotFound)
}
