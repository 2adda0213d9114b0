package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"floreria/internal/http/handlers"
	"floreria/internal/repos"
	"floreria/internal/services"
)

// newApp wires the full JSON API against a seeded throwaway database,
// mirroring the production route table.
func newApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(filepath.Join(t.TempDir(), "floreria.db"), true)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db)

	app := fiber.New()
	app.Use(handlers.AttachViewer(authSvc))

	api := app.Group("/api/v1")
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", authH.Me)

	api.Get("/categories", deps.CategoryHandler.List)
	api.Post("/categories", handlers.RequireStaff(), deps.CategoryHandler.Create)
	api.Get("/categories/:slug", deps.CategoryHandler.Get)
	api.Put("/categories/:slug", handlers.RequireStaff(), deps.CategoryHandler.Update)
	api.Delete("/categories/:slug", handlers.RequireStaff(), deps.CategoryHandler.Delete)
	api.Get("/categories/:slug/products", deps.CategoryHandler.Products)

	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", handlers.RequireStaff(), deps.ProductHandler.Create)
	api.Get("/products/:slug", deps.ProductHandler.Get)
	api.Put("/products/:slug", handlers.RequireStaff(), deps.ProductHandler.Update)
	api.Delete("/products/:slug", handlers.RequireStaff(), deps.ProductHandler.Delete)
	api.Get("/products/:slug/availability", deps.ProductHandler.Availability)
	api.Post("/products/:slug/images", handlers.RequireStaff(), deps.ProductHandler.AddImage)

	api.Get("/site-config", deps.SiteConfigHandler.Get)
	api.Put("/site-config", handlers.RequireStaff(), deps.SiteConfigHandler.Put)

	api.Post("/contact-requests", deps.ContactHandler.Create)
	api.Get("/contact-requests", handlers.RequireStaff(), deps.ContactHandler.List)
	api.Get("/contact-requests/:id", handlers.RequireStaff(), deps.ContactHandler.Get)
	api.Put("/contact-requests/:id", handlers.RequireStaff(), deps.ContactHandler.Update)
	api.Delete("/contact-requests/:id", handlers.RequireStaff(), deps.ContactHandler.Delete)

	api.Get("/carts", deps.CartHandler.List)
	api.Post("/carts", deps.CartHandler.Create)
	api.Get("/carts/:id", deps.CartHandler.Get)
	api.Put("/carts/:id", deps.CartHandler.Update)
	api.Delete("/carts/:id", deps.CartHandler.Delete)

	api.Get("/orders", handlers.RequireUser(), deps.OrderHandler.List)
	api.Post("/orders/checkout", handlers.RequireUser(), deps.OrderHandler.Place)
	api.Get("/orders/:id", handlers.RequireUser(), deps.OrderHandler.Get)
	api.Put("/orders/:id/status", handlers.RequireStaff(), deps.OrderHandler.UpdateStatus)

	return app, db
}

func jsonReq(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// login authenticates one of the seeded accounts and returns the session
// cookie value for follow-up requests.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := do(t, app, jsonReq("POST", "/api/v1/auth/login", map[string]string{
		"email": email, "password": "Passw0rd!",
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	sid := cookieValue(resp, "sid")
	if sid == "" {
		t.Fatal("login set no sid cookie")
	}
	return sid
}

func withSID(req *http.Request, sid string) *http.Request {
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	return req
}
