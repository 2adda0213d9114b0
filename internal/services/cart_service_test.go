package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"floreria/internal/domain"
	"floreria/internal/repos"
	"floreria/internal/services"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestCartReplaceIsWholesale(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "rosas", true)
	p1 := seedProduct(t, db, catID, "rosa-roja", "89.90", 20, true)
	p2 := seedProduct(t, db, catID, "rosa-blanca", "89.90", 15, true)
	p3 := seedProduct(t, db, catID, "rosas-mixtas", "169.90", 10, true)

	svc := services.NewCartService(repos.NewCartRepo(db))

	cart, err := svc.Create(domain.PublicViewer, "sess-1", []domain.CartItem{
		{ProductID: p1, Quantity: 2, UnitPriceSnapshot: dec(t, "89.90")},
		{ProductID: p2, Quantity: 1, UnitPriceSnapshot: dec(t, "89.90")},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	// Replacement is not a merge: the new list becomes the exact item set.
	cart, err = svc.Update(domain.PublicViewer, cart.ID, "", "", []domain.CartItem{
		{ProductID: p3, Quantity: 1, UnitPriceSnapshot: dec(t, "169.90")},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, p3, cart.Items[0].ProductID)
}

func TestCartReplaceIdempotent(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "rosas", true)
	p1 := seedProduct(t, db, catID, "rosa-roja", "89.90", 20, true)

	cartRepo := repos.NewCartRepo(db)
	c := domain.Cart{SessionID: "sess-1"}
	require.NoError(t, cartRepo.Create(&c))

	items := []domain.CartItem{{ProductID: p1, Quantity: 3, UnitPriceSnapshot: dec(t, "89.90")}}
	require.NoError(t, cartRepo.Replace(c.ID, items))
	require.NoError(t, cartRepo.Replace(c.ID, items))

	got, err := cartRepo.Items(c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 3, got[0].Quantity)
}

func TestCartReplaceRejectsDuplicateProduct(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "rosas", true)
	p1 := seedProduct(t, db, catID, "rosa-roja", "89.90", 20, true)

	cartRepo := repos.NewCartRepo(db)
	c := domain.Cart{SessionID: "sess-1"}
	require.NoError(t, cartRepo.Create(&c))
	require.NoError(t, cartRepo.Replace(c.ID, []domain.CartItem{
		{ProductID: p1, Quantity: 1, UnitPriceSnapshot: dec(t, "89.90")},
	}))

	err := cartRepo.Replace(c.ID, []domain.CartItem{
		{ProductID: p1, Quantity: 1, UnitPriceSnapshot: dec(t, "89.90")},
		{ProductID: p1, Quantity: 2, UnitPriceSnapshot: dec(t, "89.90")},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	// Prior state intact.
	got, err := cartRepo.Items(c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].Quantity)
}

func TestCartReplaceAtomicOnUnknownProduct(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "rosas", true)
	p1 := seedProduct(t, db, catID, "rosa-roja", "89.90", 20, true)

	cartRepo := repos.NewCartRepo(db)
	c := domain.Cart{SessionID: "sess-1"}
	require.NoError(t, cartRepo.Create(&c))
	require.NoError(t, cartRepo.Replace(c.ID, []domain.CartItem{
		{ProductID: p1, Quantity: 2, UnitPriceSnapshot: dec(t, "89.90")},
	}))

	// Second tuple fails mid-replace; the delete must roll back with it.
	err := cartRepo.Replace(c.ID, []domain.CartItem{
		{ProductID: p1, Quantity: 5, UnitPriceSnapshot: dec(t, "89.90")},
		{ProductID: "no-such-product", Quantity: 1, UnitPriceSnapshot: dec(t, "1.00")},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := cartRepo.Items(c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, p1, got[0].ProductID)
	require.Equal(t, 2, got[0].Quantity)
}

func TestCartSnapshotPriceTakenVerbatim(t *testing.T) {
	db := memdb(t)
	catID := seedCategory(t, db, "rosas", true)
	p1 := seedProduct(t, db, catID, "rosa-roja", "89.90", 20, true)

	cartRepo := repos.NewCartRepo(db)
	c := domain.Cart{SessionID: "sess-1"}
	require.NoError(t, cartRepo.Create(&c))

	// The caller's snapshot wins even when it differs from the live price.
	require.NoError(t, cartRepo.Replace(c.ID, []domain.CartItem{
		{ProductID: p1, Quantity: 1, UnitPriceSnapshot: dec(t, "79.90")},
	}))

	got, err := cartRepo.Items(c.ID)
	require.NoError(t, err)
	require.True(t, got[0].UnitPriceSnapshot.Equal(dec(t, "79.90")),
		"want 79.90, got %s", got[0].UnitPriceSnapshot)
}

func TestCartListVisibility(t *testing.T) {
	db := memdb(t)
	u1 := seedUser(t, db, "u-ana", domain.RoleUser)
	u2 := seedUser(t, db, "u-bea", domain.RoleUser)
	staff := seedUser(t, db, "u-staff", domain.RoleStaff)

	svc := services.NewCartService(repos.NewCartRepo(db))
	_, err := svc.Create(domain.Viewer{UserID: u1}, "", nil)
	require.NoError(t, err)
	_, err = svc.Create(domain.Viewer{UserID: u2}, "", nil)
	require.NoError(t, err)

	mine, err := svc.List(domain.Viewer{UserID: u1}, 1, 50)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := svc.List(domain.Viewer{UserID: staff, Staff: true}, 1, 50)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
