package services_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"floreria/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(filepath.Join(t.TempDir(), "floreria.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCategory(t *testing.T, db *sqlx.DB, slug string, active bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO categories(id, name, slug, is_active) VALUES(?,?,?,?)
	`, id, slug, slug, active)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func seedProduct(t *testing.T, db *sqlx.DB, categoryID, slug, price string, stock int, active bool) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO products(id, category_id, name, slug, price, stock, is_active)
		VALUES(?,?,?,?,?,?,?)
	`, id, categoryID, slug, slug, price, stock, active)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func seedUser(t *testing.T, db *sqlx.DB, id, role string) string {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO users(id, email, name, password_hash, role)
		VALUES(?,?,?,?,?)
	`, id, id+"@floreria.test", id, "x", role)
	if err != nil {
		t.Fatal(err)
	}
	return id
}
