// Package message renders a finalized order into the outbound WhatsApp text
// payload: the formatted message body, the short order code, and the
// click-to-chat link.
package message

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/order"
)

// FormatCOP renders a peso amount the way the storefront shows it:
// "$ 5.900" with dot thousands separators and no fractional digits.
// Negative amounts clamp to zero; fractions round half-up.
func FormatCOP(v decimal.Decimal) string {
	if v.IsNegative() {
		v = decimal.Zero
	}
	n := v.Round(0).IntPart()

	digits := strconv.FormatInt(n, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	return "$ " + string(out)
}

func sizeLabel(s catalog.Size) string {
	switch s {
	case catalog.SizeSmall:
		return "Pequeño"
	case catalog.SizeMedium:
		return "Mediano"
	case catalog.SizeLarge:
		return "Grande"
	default:
		return ""
	}
}

func versionLabel(v catalog.Version) string {
	switch v {
	case catalog.VersionAhogada:
		return "Ahogada"
	case catalog.VersionPicosa:
		return "Picosa"
	default:
		return ""
	}
}

// ServiceLabel is the customer-facing name of a service mode.
func ServiceLabel(s order.Service) string {
	switch s {
	case order.ServiceDelivery:
		return "Domicilio"
	case order.ServicePickup:
		return "Para llevar"
	default:
		return "En el local (Próximamente)"
	}
}

func serviceEmoji(s order.Service) string {
	switch s {
	case order.ServiceDelivery:
		return "🛵"
	case order.ServicePickup:
		return "🥡"
	default:
		return "🏠"
	}
}

func categoryEmoji(p *catalog.Product) string {
	if p != nil && p.Category == catalog.CategoryGomitas {
		return "🌶️"
	}
	return "🍍"
}
