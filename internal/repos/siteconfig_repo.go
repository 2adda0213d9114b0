package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"floreria/internal/domain"
)

// SiteConfigRepo manages the single store-configuration row. The schema
// pins it behind the sentinel key id = 1, so "first row" ambiguity can't
// arise.
type SiteConfigRepo struct{ db *sqlx.DB }

func NewSiteConfigRepo(db *sqlx.DB) *SiteConfigRepo { return &SiteConfigRepo{db: db} }

func (r *SiteConfigRepo) Get() (domain.SiteConfig, error) {
	var sc domain.SiteConfig
	err := r.db.Get(&sc, `
		SELECT id, store_name, logo, primary_color, secondary_color, contact_email,
		       contact_phone, whatsapp_number, address_text, delivery_zones_text,
		       min_order_amount, is_maintenance_mode, updated_at
		FROM site_config WHERE id = 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SiteConfig{}, fmt.Errorf("site config: %w", domain.ErrNotFound)
	}
	return sc, err
}

// Upsert writes the singleton row, creating it on first save.
func (r *SiteConfigRepo) Upsert(sc *domain.SiteConfig) error {
	sc.ID = 1
	_, err := r.db.Exec(`
		INSERT INTO site_config(id, store_name, logo, primary_color, secondary_color,
		  contact_email, contact_phone, whatsapp_number, address_text,
		  delivery_zones_text, min_order_amount, is_maintenance_mode, updated_at)
		VALUES(1,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		  store_name = excluded.store_name,
		  logo = excluded.logo,
		  primary_color = excluded.primary_color,
		  secondary_color = excluded.secondary_color,
		  contact_email = excluded.contact_email,
		  contact_phone = excluded.contact_phone,
		  whatsapp_number = excluded.whatsapp_number,
		  address_text = excluded.address_text,
		  delivery_zones_text = excluded.delivery_zones_text,
		  min_order_amount = excluded.min_order_amount,
		  is_maintenance_mode = excluded.is_maintenance_mode,
		  updated_at = CURRENT_TIMESTAMP
	`, sc.StoreName, sc.Logo, sc.PrimaryColor, sc.SecondaryColor, sc.ContactEmail,
		sc.ContactPhone, sc.WhatsappNumber, sc.AddressText, sc.DeliveryZones,
		sc.MinOrderAmount, sc.MaintenanceMode)
	return err
}
