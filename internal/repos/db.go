package repos

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// OpenDB opens the store, bootstraps the schema and, when seed is true,
// loads demo data on an empty database (idempotent, safe on every start).
func OpenDB(dsn string, seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seed {
		if err := seedCatalogIfEmpty(db); err != nil {
			return nil, err
		}
		if err := seedUsers(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_categories_order ON categories(sort_order, name);

-- Products (stock lives on the product row; decrements are guarded)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  sku TEXT UNIQUE,
  short_description TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  image_principal TEXT NOT NULL DEFAULT '',
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  image TEXT NOT NULL,
  is_main INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);

-- Site configuration: single logical row behind a sentinel key
CREATE TABLE IF NOT EXISTS site_config(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  store_name TEXT NOT NULL,
  logo TEXT NOT NULL DEFAULT '',
  primary_color TEXT NOT NULL DEFAULT '#1A1A1A',
  secondary_color TEXT NOT NULL DEFAULT '#FFFFFF',
  contact_email TEXT NOT NULL DEFAULT '',
  contact_phone TEXT NOT NULL DEFAULT '',
  whatsapp_number TEXT NOT NULL DEFAULT '',
  address_text TEXT NOT NULL DEFAULT '',
  delivery_zones_text TEXT NOT NULL DEFAULT '',
  min_order_amount NUMERIC NOT NULL DEFAULT 0,
  is_maintenance_mode INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Contact inbox
CREATE TABLE IF NOT EXISTS contact_requests(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL,
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'NEW' CHECK (status IN ('NEW','IN_PROGRESS','CLOSED')),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_contact_created_at ON contact_requests(created_at);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
  session_id TEXT,
  status TEXT NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN','CONVERTED','ABANDONED')),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_carts_session ON carts(session_id);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price_snapshot NUMERIC NOT NULL,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders (frozen historical record; survives user deletion)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
  status TEXT NOT NULL DEFAULT 'CREATED' CHECK (status IN ('CREATED','PAID','SHIPPED','DELIVERED','CANCELED')),
  subtotal NUMERIC NOT NULL,
  shipping_cost NUMERIC NOT NULL DEFAULT 0,
  discount_total NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL CHECK (payment_method IN ('CARD','YAPE','PLIN','TRANSFER','CASH')),
  payment_status TEXT NOT NULL DEFAULT 'PENDING' CHECK (payment_status IN ('PENDING','PAID','FAILED')),
  shipping_full_name TEXT NOT NULL,
  shipping_phone TEXT NOT NULL,
  shipping_address_text TEXT NOT NULL,
  notes_customer TEXT NOT NULL DEFAULT '',
  notes_admin TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  product_name_snapshot TEXT NOT NULL,
  unit_price_snapshot NUMERIC NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  line_total NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Identity & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','STAFF')),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  user_id TEXT REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

type seedProduct struct {
	Name  string
	Slug  string
	Price string
	Stock int
}

type seedCategory struct {
	Name        string
	Slug        string
	Description string
	Products    []seedProduct
}

var demoCatalog = []seedCategory{
	{
		Name: "Rosas", Slug: "rosas",
		Description: "Colección de rosas premium en distintos colores y presentaciones.",
		Products: []seedProduct{
			{"Rosa Roja Premium 12 tallos", "rosa-roja-premium-12-tallos", "89.90", 20},
			{"Rosa Blanca Elegance 12 tallos", "rosa-blanca-elegance-12-tallos", "89.90", 15},
			{"Rosas Mixtas 24 tallos", "rosas-mixtas-24-tallos", "169.90", 10},
			{"Rosa Azul Tinturada 6 tallos", "rosa-azul-tinturada-6-tallos", "69.90", 12},
		},
	},
	{
		Name: "Ramos & Bouquets", Slug: "ramos-bouquets",
		Description: "Ramos diseñados para sorprender en cualquier ocasión.",
		Products: []seedProduct{
			{"Bouquet Clásico (rosas + follaje)", "bouquet-clasico-rosas-follaje", "119.90", 18},
			{"Bouquet Primavera (mix de estación)", "bouquet-primavera-mix-de-estacion", "109.90", 16},
			{"Bouquet Minimal (3 flores premium)", "bouquet-minimal-3-flores-premium", "59.90", 22},
			{"Bouquet Deluxe (mix premium 24 tallos)", "bouquet-deluxe-mix-premium-24-tallos", "229.90", 8},
		},
	},
	{
		Name: "Arreglos para Ocasiones", Slug: "arreglos-para-ocasiones",
		Description: "Arreglos temáticos ideales para celebrar momentos especiales.",
		Products: []seedProduct{
			{"Arreglo Aniversario (caja con rosas)", "arreglo-aniversario-caja-con-rosas", "149.90", 12},
			{"Arreglo Cumpleaños (globo + mix)", "arreglo-cumpleanos-globo-mix", "159.90", 10},
			{"Arreglo Condolencias (lirio + blanco)", "arreglo-condolencias-lirio-blanco", "139.90", 9},
			{"Arreglo Graduación (girasoles + lazo)", "arreglo-graduacion-girasoles-lazo", "129.90", 11},
		},
	},
	{
		Name: "Plantas", Slug: "plantas",
		Description: "Selección de plantas naturales para decorar y regalar.",
		Products: []seedProduct{
			{"Suculenta en maceta cerámica", "suculenta-en-maceta-ceramica", "29.90", 35},
			{"Orquídea Phalaenopsis", "orquidea-phalaenopsis", "159.90", 6},
			{"Anturio Rojo", "anturio-rojo", "89.90", 10},
			{"Cactus mini set x3", "cactus-mini-set-x3", "39.90", 20},
		},
	},
	{
		Name: "Accesorios & Complementos", Slug: "accesorios-complementos",
		Description: "Detalles adicionales para acompañar tus flores favoritas.",
		Products: []seedProduct{
			{"Chocolates artesanales 150g", "chocolates-artesanales-150g", "24.90", 30},
			{"Tarjeta personalizada", "tarjeta-personalizada", "9.90", 100},
			{"Jarrón de vidrio", "jarron-de-vidrio", "39.90", 15},
			{"Lazo decorativo", "lazo-decorativo", "6.90", 60},
		},
	},
}

func seedCatalogIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog and site config")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, c := range demoCatalog {
		if _, err := tx.Exec(`
			INSERT INTO categories(id, name, slug, description, is_active, sort_order)
			VALUES(?, ?, ?, ?, 1, ?)
		`, uuid.NewString(), c.Name, c.Slug, c.Description, i+1); err != nil {
			return err
		}
		for _, p := range c.Products {
			if _, err := tx.Exec(`
				INSERT INTO products(id, category_id, name, slug, short_description, price, stock, is_active)
				VALUES(?, (SELECT id FROM categories WHERE slug = ?), ?, ?, ?, ?, ?, 1)
			`, uuid.NewString(), c.Slug, p.Name, p.Slug, p.Name, p.Price, p.Stock); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO site_config(id, store_name, contact_email, contact_phone, whatsapp_number, address_text, min_order_amount)
		VALUES(1, 'Florería Demo', 'hola@floreria.test', '+51 1 555 0100', '+51 999 888 777', 'Av. Las Flores 123, Lima', 0)
		ON CONFLICT(id) DO NOTHING
	`); err != nil {
		return err
	}

	return tx.Commit()
}

// seedUsers ensures one USER and one STAFF account exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-cliente", "cliente@floreria.test", "Cliente Demo", "USER", "Passw0rd!"),
		mk("u-staff", "staff@floreria.test", "Staff Demo", "STAFF", "Passw0rd!"),
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id, email, name, password_hash, role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
