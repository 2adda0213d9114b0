package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	Active      bool   `db:"is_active" json:"is_active"`
	SortOrder   int    `db:"sort_order" json:"order"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at"`
}

type Product struct {
	ID             string          `db:"id" json:"id"`
	CategoryID     string          `db:"category_id" json:"category_id"`
	Name           string          `db:"name" json:"name"`
	Slug           string          `db:"slug" json:"slug"`
	SKU            string          `db:"sku" json:"sku,omitempty"`
	ShortDesc      string          `db:"short_description" json:"short_description"`
	Description    string          `db:"description" json:"description"`
	Price          decimal.Decimal `db:"price" json:"price"`
	Stock          int             `db:"stock" json:"stock"`
	ImagePrincipal string          `db:"image_principal" json:"image_principal,omitempty"`
	Featured       bool            `db:"is_featured" json:"is_featured"`
	Active         bool            `db:"is_active" json:"is_active"`
	CreatedAt      string          `db:"created_at" json:"created_at"`
	UpdatedAt      string          `db:"updated_at" json:"updated_at"`

	Images []ProductImage `db:"-" json:"images,omitempty"`
}

type ProductImage struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"-"`
	Image     string `db:"image" json:"image"`
	Main      bool   `db:"is_main" json:"is_main"`
	SortOrder int    `db:"sort_order" json:"order"`
}

// SiteConfig is a singleton row (sentinel id = 1, enforced by the schema).
type SiteConfig struct {
	ID              int             `db:"id" json:"id"`
	StoreName       string          `db:"store_name" json:"store_name"`
	Logo            string          `db:"logo" json:"logo,omitempty"`
	PrimaryColor    string          `db:"primary_color" json:"primary_color"`
	SecondaryColor  string          `db:"secondary_color" json:"secondary_color"`
	ContactEmail    string          `db:"contact_email" json:"contact_email"`
	ContactPhone    string          `db:"contact_phone" json:"contact_phone"`
	WhatsappNumber  string          `db:"whatsapp_number" json:"whatsapp_number"`
	AddressText     string          `db:"address_text" json:"address_text"`
	DeliveryZones   string          `db:"delivery_zones_text" json:"delivery_zones_text"`
	MinOrderAmount  decimal.Decimal `db:"min_order_amount" json:"min_order_amount"`
	MaintenanceMode bool            `db:"is_maintenance_mode" json:"is_maintenance_mode"`
	UpdatedAt       string          `db:"updated_at" json:"updated_at"`
}

const (
	ContactNew        = "NEW"
	ContactInProgress = "IN_PROGRESS"
	ContactClosed     = "CLOSED"
)

type ContactRequest struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	Message   string `db:"message" json:"message"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}
