// Package order owns the mutable order state and everything derived from it:
// the item reducer, the configuration checklist, totals, the step machine,
// and the in-memory session store.
package order

import (
	"github.com/antojopicante/pedidos/internal/catalog"
)

// Service is the fulfillment mode chosen by the customer.
type Service string

const (
	// ServicePickup means the customer picks the order up ("para llevar").
	ServicePickup Service = "llevar"
	// ServiceDelivery is home delivery to a zone ("domicilio").
	ServiceDelivery Service = "domicilio"
	// ServiceOnPremises is eating at the shop. Not offered yet; the
	// storefront shows it as "Próximamente".
	ServiceOnPremises Service = "local"
)

// KnownService reports whether s is one of the declared service modes.
func KnownService(s Service) bool {
	return s == ServicePickup || s == ServiceDelivery || s == ServiceOnPremises
}

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentCash     PaymentMethod = "Efectivo"
)

// KnownPayment reports whether m is one of the declared payment methods.
func KnownPayment(m PaymentMethod) bool {
	return m == PaymentTransfer || m == PaymentCash
}

// Item is one line of the order under construction. Product is a shared
// read-only catalog reference; everything else is per-item selection state.
type Item struct {
	Product *catalog.Product
	Qty     int

	// Version applies to gomitas only; empty means not chosen yet.
	Version catalog.Version
	// Size is empty for products without sizes.
	Size catalog.Size
	// ToppingIDs are the included toppings, bounded by the product's cap.
	ToppingIDs []string
	// ExtrasQty maps extra id to a positive quantity. Zero-quantity
	// entries are never stored.
	ExtrasQty map[string]int
}

// newItem builds the default item created when a product is first selected:
// quantity one, first available size, nothing else chosen.
func newItem(p *catalog.Product) Item {
	it := Item{Product: p, Qty: 1}
	if size, ok := p.DefaultSize(); ok {
		it.Size = size
	}
	return it
}

// clone returns a deep copy of the item so reducer outputs never share
// mutable state with previous states.
func (it Item) clone() Item {
	out := it
	if it.ToppingIDs != nil {
		out.ToppingIDs = append([]string(nil), it.ToppingIDs...)
	}
	if it.ExtrasQty != nil {
		out.ExtrasQty = make(map[string]int, len(it.ExtrasQty))
		for id, qty := range it.ExtrasQty {
			out.ExtrasQty[id] = qty
		}
	}
	return out
}

// Customer carries the contact, delivery, and payment details entered
// alongside the items. Fields are trimmed at validation and serialization
// time, not on write.
type Customer struct {
	Name  string
	Phone string

	Service Service
	// Zone is only meaningful for ServiceDelivery.
	Zone      *catalog.Zone
	Address   string
	Reference string

	Payment  PaymentMethod
	Comments string
}
