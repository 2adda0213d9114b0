package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"floreria/internal/config"
	"floreria/internal/http/handlers"
	applog "floreria/internal/log"
	"floreria/internal/repos"
	"floreria/internal/services"
)

func main() {
	cfg := config.Load()
	applog.TeeToFile(cfg.LogFile)

	db, err := repos.OpenDB(cfg.DBDSN, cfg.Seed)
	if err != nil {
		log.Fatal(err)
	}

	authSvc := &services.AuthService{Users: repos.NewUserRepo(db)}
	authH := &handlers.AuthHandler{Auth: authSvc}
	deps := handlers.NewDeps(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"kind": "internal", "error": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.AttachViewer(authSvc))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	// ---------- Media (paths only; binaries come from object storage) ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		lower := strings.ToLower(path)
		if strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.Contains(lower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- API ----------
	api := app.Group("/api/v1")

	// Auth (login throttled)
	api.Post("/auth/login", limiter.New(limiter.Config{Max: 5, Expiration: 10 * time.Minute}), authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/me", authH.Me)

	// Catalog
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

	// Site configuration singleton
	api.Get("/site-config", deps.SiteConfigHandler.Get)
	api.Put("/site-config", handlers.RequireStaff(), deps.SiteConfigHandler.Put)

	// Contact inbox
	api.Post("/contact-requests", deps.ContactHandler.Create)
	api.Get("/contact-requests", handlers.RequireStaff(), deps.ContactHandler.List)
	api.Get("/contact-requests/:id", handlers.RequireStaff(), deps.ContactHandler.Get)
	api.Put("/contact-requests/:id", handlers.RequireStaff(), deps.ContactHandler.Update)
	api.Delete("/contact-requests/:id", handlers.RequireStaff(), deps.ContactHandler.Delete)

	// Carts (open by id; documented MVP trust gap)
	api.Get("/carts", deps.CartHandler.List)
	api.Post("/carts", deps.CartHandler.Create)
	api.Get("/carts/:id", deps.CartHandler.Get)
	api.Put("/carts/:id", deps.CartHandler.Update)
	api.Delete("/carts/:id", deps.CartHandler.Delete)

	// Orders (never anonymous)
	api.Get("/orders", handlers.RequireUser(), deps.OrderHandler.List)
	api.Post("/orders/checkout", handlers.RequireUser(), deps.OrderHandler.Place)
	api.Get("/orders/:id", handlers.RequireUser(), deps.OrderHandler.Get)
	api.Put("/orders/:id/status", handlers.RequireStaff(), deps.OrderHandler.UpdateStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"kind": "not_found", "error": "no such route"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
