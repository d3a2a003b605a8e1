package message

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/order"
)

// ErrIncompleteOrder is returned when Build is called for an order whose
// checklist is not fully satisfied. Serialization is gated on CanFinalize;
// callers must treat this as a hard precondition, not a warning.
var ErrIncompleteOrder = errors.New("order is not complete")

// Params carries everything Build needs to render the message.
type Params struct {
	// Origin tags where the order was assembled (storefront URL).
	Origin string
	// Code is the short order identifier shown to the customer.
	Code string
	// NequiKey is the payment account shown in the payment section.
	NequiKey string

	Snapshot order.Snapshot
	Customer order.Customer
	Catalog  *catalog.Registry
}

const sectionRule = "━━━━━━━━━━━━━━"

// section renders the bold section header framed by horizontal rules.
func section(title string) string {
	return "\n" + sectionRule + "\n*" + title + "*\n" + sectionRule
}

// Build renders the order into the outbound text block. The section order
// and the omit-when-empty rules are a stable contract: optional lines are
// dropped entirely, never emitted blank.
func Build(p Params) (string, error) {
	if !p.Snapshot.CanFinalize {
		return "", ErrIncompleteOrder
	}

	cust := p.Customer
	lines := []string{
		"👋 *Nuevo pedido*",
		"🧾 *Código:* " + p.Code,
		"🌐 *Origen:* " + p.Origin,

		section(serviceEmoji(cust.Service) + " Servicio"),
		"Tipo: *" + ServiceLabel(cust.Service) + "*",
	}

	if line, ok := zoneLine(cust); ok {
		lines = append(lines, line)
	}
	if line, ok := addressLine(cust); ok {
		lines = append(lines, line)
	}

	lines = append(lines,
		section("🙋 Datos del cliente"),
		"Nombre: *"+strings.TrimSpace(cust.Name)+"*",
		"Teléfono: *"+strings.TrimSpace(cust.Phone)+"*",

		section("🛒 Productos"),
	)
	lines = append(lines, productLines(p.Snapshot.Items, p.Catalog)...)

	lines = append(lines,
		section("💰 Totales"),
		"Subtotal: *"+FormatCOP(p.Snapshot.Subtotal)+"*",
		"Entrega: "+FormatCOP(p.Snapshot.Delivery),
		"Total: *"+FormatCOP(p.Snapshot.Total)+"*",
	)

	payEmoji := "💵"
	if cust.Payment == order.PaymentTransfer {
		payEmoji = "🏦"
	}
	lines = append(lines,
		section(payEmoji+" Pago"),
		"Método: *"+string(cust.Payment)+"*",
		"Total a pagar: *"+FormatCOP(p.Snapshot.Total)+"*",
		"Nequi / Llave: *"+p.NequiKey+"*",
		paymentInstruction(cust.Payment),
	)

	if comments := strings.TrimSpace(cust.Comments); comments != "" {
		lines = append(lines, section("📝 Comentarios")+"\n"+comments)
	}

	lines = append(lines,
		section("📤 Enviar"),
		"Envíanos este mensaje ahora y confirmamos tu pedido 🙌",
	)

	return strings.Join(lines, "\n"), nil
}

// zoneLine renders the delivery zone with its price, or "Se confirma" when
// the zone's cost is not settled yet. Only present for home delivery with a
// selected zone.
func zoneLine(cust order.Customer) (string, bool) {
	if cust.Service != order.ServiceDelivery || cust.Zone == nil {
		return "", false
	}
	priceTag := "(Se confirma)"
	if cust.Zone.Price != nil {
		priceTag = "(" + FormatCOP(*cust.Zone.Price) + ")"
	}
	return "📍 *Barrio:* " + cust.Zone.Name + " " + priceTag, true
}

// addressLine renders the delivery address and optional reference. Only
// present for home delivery.
func addressLine(cust order.Customer) (string, bool) {
	if cust.Service != order.ServiceDelivery {
		return "", false
	}
	addr := strings.TrimSpace(cust.Address)
	if addr == "" {
		return "🏠 *Dirección:* (pendiente)", true
	}
	line := "🏠 *Dirección:* " + addr
	if ref := strings.TrimSpace(cust.Reference); ref != "" {
		line += "\n🧭 *Referencia:* " + ref
	}
	return line, true
}

// productLines renders each item: the numbered head line, an optional
// configuration detail, a toppings line only when the product includes
// toppings and some were selected, and an extras line only when at least one
// extra has a positive quantity.
func productLines(items []order.PricedItem, reg *catalog.Registry) []string {
	var lines []string
	for i, it := range items {
		head := fmt.Sprintf("%d) x%d %s *%s*", i+1, it.Qty, categoryEmoji(it.Product), it.Product.Name)
		if detail := detailLine(it.Item); detail != "" {
			head += "\n   ▸ " + detail
		}
		lines = append(lines, head)

		max := it.Product.MaxToppings()
		if max > 0 && len(it.ToppingIDs) > 0 {
			lines = append(lines, fmt.Sprintf("   ▸ 🍬 *Toppings* (máx. %d): %s", max, toppingNames(it.ToppingIDs, reg)))
		}

		if extras := extrasNames(it.ExtrasQty, reg); extras != "" {
			lines = append(lines, "   ▸ ✨ *Extras:* "+extras)
		}
	}
	return lines
}

// detailLine joins the configured version and size with " · ". Gomitas show
// both; per-size frutafresh show only the size; fixed-price products show
// nothing.
func detailLine(it order.Item) string {
	var parts []string

	if it.Product.Category == catalog.CategoryGomitas {
		if it.Version != "" {
			parts = append(parts, versionLabel(it.Version))
		}
		if it.Size != "" {
			parts = append(parts, sizeLabel(it.Size))
		}
	} else if !it.Product.HasFixedPrice() && it.Size != "" {
		parts = append(parts, sizeLabel(it.Size))
	}

	return strings.Join(parts, " · ")
}

func toppingNames(ids []string, reg *catalog.Registry) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if t, ok := reg.ToppingByID(id); ok {
			names[i] = t.Name
		} else {
			names[i] = id
		}
	}
	return strings.Join(names, ", ")
}

// extrasNames lists selected extras in catalog order so the output is
// deterministic regardless of map iteration.
func extrasNames(quantities map[string]int, reg *catalog.Registry) string {
	var parts []string
	for _, extra := range reg.Extras() {
		if qty := quantities[extra.ID]; qty > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", extra.Name, qty))
		}
	}
	return strings.Join(parts, ", ")
}

func paymentInstruction(m order.PaymentMethod) string {
	if m == order.PaymentTransfer {
		return "📎 Si pagas por transferencia, envíanos el comprobante para confirmar el pedido."
	}
	return "✅ Si pagas en efectivo, por favor ten el valor exacto si es posible."
}
