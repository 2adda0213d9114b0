package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"floreria/internal/domain"
	applog "floreria/internal/log"
	"floreria/internal/repos"
	"floreria/internal/validate"
)

type SiteConfigHandler struct {
	Repo *repos.SiteConfigRepo
}

// GET /api/v1/site-config — public; 404 until the store is configured.
func (h *SiteConfigHandler) Get(c *fiber.Ctx) error {
	sc, err := h.Repo.Get()
	if err != nil {
		return fail(c, "siteconfig.get", err)
	}
	return c.JSON(sc)
}

type siteConfigInput struct {
	StoreName       string `json:"store_name"`
	Logo            string `json:"logo"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	WhatsappNumber  string `json:"whatsapp_number"`
	AddressText     string `json:"address_text"`
	DeliveryZones   string `json:"delivery_zones_text"`
	MinOrderAmount  string `json:"min_order_amount"`
	MaintenanceMode bool   `json:"is_maintenance_mode"`
}

// PUT /api/v1/site-config (staff) — upsert against the sentinel row.
func (h *SiteConfigHandler) Put(c *fiber.Ctx) error {
	var in siteConfigInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed body")
	}
	name, ok := validate.Name(in.StoreName, 150)
	if !ok {
		return badRequest(c, "store_name is required (max 150 chars)")
	}
	if in.ContactEmail != "" {
		if _, ok := validate.Email(in.ContactEmail); !ok {
			return badRequest(c, "invalid contact_email")
		}
	}
	minOrder := decimal.Zero
	if in.MinOrderAmount != "" {
		if minOrder, ok = validate.Price(in.MinOrderAmount); !ok {
			return badRequest(c, "invalid min_order_amount")
		}
	}
	if in.PrimaryColor == "" {
		in.PrimaryColor = "#1A1A1A"
	}
	if in.SecondaryColor == "" {
		in.SecondaryColor = "#FFFFFF"
	}
	if !validate.Color(in.PrimaryColor) || !validate.Color(in.SecondaryColor) {
		return badRequest(c, "colors must be hex values")
	}

	sc := domain.SiteConfig{
		StoreName: name, Logo: in.Logo,
		PrimaryColor: in.PrimaryColor, SecondaryColor: in.SecondaryColor,
		ContactEmail: in.ContactEmail, ContactPhone: in.ContactPhone,
		WhatsappNumber: in.WhatsappNumber, AddressText: in.AddressText,
		DeliveryZones: in.DeliveryZones, MinOrderAmount: minOrder,
		MaintenanceMode: in.MaintenanceMode,
	}
	if err := h.Repo.Upsert(&sc); err != nil {
		return fail(c, "siteconfig.put", err)
	}
	applog.Audit(c, "siteconfig.put", map[string]any{"store_name": sc.StoreName})
	out, err := h.Repo.Get()
	if err != nil {
		return fail(c, "siteconfig.put", err)
	}
	return c.JSON(out)
}
