package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/antojopicante/pedidos/internal/catalog"
)

// Condition identifiers, in checklist order.
const (
	CondItems    = "products"
	CondConfig   = "config"
	CondCustomer = "customer"
	CondDelivery = "delivery"
	CondTotal    = "total"
)

// Condition is one named completeness predicate with its storefront label.
type Condition struct {
	ID    string
	Label string
	OK    bool
}

// Checklist is the fixed-order list of conditions gating finalization. The
// order is part of the contract: the first unmet condition is deterministic.
type Checklist []Condition

// ItemComplete reports whether a single item's configuration is complete.
//
// Gomitas need a version, and when the product includes toppings at least one
// and at most the cap must be selected. Frutafresh toppings are optional but
// still bounded by the cap.
func ItemComplete(it Item) bool {
	p := it.Product
	if p == nil {
		return false
	}
	max := p.MaxToppings()

	if p.Category == catalog.CategoryGomitas {
		if it.Version == "" {
			return false
		}
		if max > 0 && (len(it.ToppingIDs) < 1 || len(it.ToppingIDs) > max) {
			return false
		}
		return true
	}

	return len(it.ToppingIDs) <= max
}

// Validate evaluates the five checklist conditions in their fixed order.
// The config condition short-circuits on the first incomplete item.
func Validate(items []Item, cust Customer, subtotal, delivery decimal.Decimal) Checklist {
	itemsOK := len(items) > 0

	configOK := true
	for _, it := range items {
		if !ItemComplete(it) {
			configOK = false
			break
		}
	}

	customerOK := strings.TrimSpace(cust.Name) != "" && strings.TrimSpace(cust.Phone) != ""

	deliveryOK := cust.Service != ServiceDelivery ||
		(cust.Zone != nil && strings.TrimSpace(cust.Address) != "")

	totalOK := subtotal.Add(delivery).IsPositive()

	return Checklist{
		{ID: CondItems, Label: "Agrega productos", OK: itemsOK},
		{ID: CondConfig, Label: "Configura tus productos", OK: configOK},
		{ID: CondCustomer, Label: "Datos de contacto", OK: customerOK},
		{ID: CondDelivery, Label: "Datos de entrega", OK: deliveryOK},
		{ID: CondTotal, Label: "Total mayor a $0", OK: totalOK},
	}
}

// CanFinalize reports whether every condition holds. Serialization and the
// outbound hand-off treat this as a hard precondition.
func (c Checklist) CanFinalize() bool {
	for _, cond := range c {
		if !cond.OK {
			return false
		}
	}
	return true
}

// Passed reports whether the condition with the given id holds. Unknown ids
// report false.
func (c Checklist) Passed(id string) bool {
	for _, cond := range c {
		if cond.ID == id {
			return cond.OK
		}
	}
	return false
}

// Pending returns the unmet conditions in evaluation order.
func (c Checklist) Pending() []Condition {
	var out []Condition
	for _, cond := range c {
		if !cond.OK {
			out = append(out, cond)
		}
	}
	return out
}

// Hint builds the human-readable "what's missing" line shown next to the
// disabled send action. Empty when the order is complete.
func (c Checklist) Hint() string {
	pending := c.Pending()
	if len(pending) == 0 {
		return ""
	}
	labels := make([]string, len(pending))
	for i, cond := range pending {
		labels[i] = strings.ToLower(cond.Label)
	}
	return "Completa: " + strings.Join(labels, ", ") + "."
}
