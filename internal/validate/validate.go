package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9 ()-]{6,30}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reColor = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)
)

// Slug checks a URL-safe identifier (lowercase, digits, hyphens).
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 180 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// ID validates an opaque resource identifier (uuid or seeded id).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > max {
		return "", false
	}
	return s, true
}

func Color(s string) bool { return reColor.MatchString(strings.TrimSpace(s)) }

// Qty bounds a line-item quantity; carts and orders never exceed 100 units
// per product.
func Qty(n int) bool { return n >= 1 && n <= 100 }

// Price parses a non-negative fixed-point amount with at most two decimals.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() || d.Exponent() < -2 {
		return decimal.Decimal{}, false
	}
	return d, true
}

func oneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func ContactStatus(s string) bool { return oneOf(s, "NEW", "IN_PROGRESS", "CLOSED") }

func CartStatus(s string) bool { return oneOf(s, "OPEN", "CONVERTED", "ABANDONED") }

func OrderStatus(s string) bool {
	return oneOf(s, "CREATED", "PAID", "SHIPPED", "DELIVERED", "CANCELED")
}

func PaymentMethod(s string) bool { return oneOf(s, "CARD", "YAPE", "PLIN", "TRANSFER", "CASH") }

func PaymentStatus(s string) bool { return oneOf(s, "PENDING", "PAID", "FAILED") }

// Password enforces the login policy: 8-64 chars with upper, lower, digit.
func Password(s string) bool {
	if len(s) < 8 || len(s) > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
