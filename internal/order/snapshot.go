package order

import (
	"github.com/shopspring/decimal"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/pricing"
)

// PricedItem is an item with its derived prices attached.
type PricedItem struct {
	Item

	// BaseUnit comes from the product's price table; zero when the current
	// configuration has no price yet.
	BaseUnit decimal.Decimal
	// ExtrasUnit is the per-unit surcharge from selected extras.
	ExtrasUnit decimal.Decimal
	// Unit is BaseUnit + ExtrasUnit.
	Unit decimal.Decimal
	// Line is Unit * Qty.
	Line decimal.Decimal
}

// Snapshot is the fully derived view of an order: priced items, totals, the
// validation checklist, and the current step. It is recomputed from the item
// list and customer context on every read and never stored or mutated.
type Snapshot struct {
	Items    []PricedItem
	Subtotal decimal.Decimal
	Delivery decimal.Decimal
	Total    decimal.Decimal

	Checklist   Checklist
	CanFinalize bool
	Step        Step
}

// DeliveryCost returns the delivery surcharge for the customer's selection:
// zero unless home delivery with a zone whose price is confirmed. A selected
// zone with an unconfirmed price costs zero here and is marked "Se confirma"
// in the outbound message.
func DeliveryCost(cust Customer) decimal.Decimal {
	if cust.Service != ServiceDelivery || cust.Zone == nil || cust.Zone.Price == nil {
		return decimal.Zero
	}
	return *cust.Zone.Price
}

// BuildSnapshot prices every item, aggregates totals, and evaluates the
// checklist. Pure: same inputs, same snapshot.
func BuildSnapshot(reg *catalog.Registry, items []Item, cust Customer) Snapshot {
	extras := reg.Extras()

	priced := make([]PricedItem, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		version := it.Version
		if it.Product != nil && it.Product.Category != catalog.CategoryGomitas {
			version = ""
		}

		baseUnit := pricing.BasePrice(it.Product, version, it.Size)
		extrasUnit := pricing.ExtrasSurcharge(it.ExtrasQty, extras)
		unit := baseUnit.Add(extrasUnit)
		line := unit.Mul(decimal.NewFromInt(int64(it.Qty)))

		priced[i] = PricedItem{
			Item:       it,
			BaseUnit:   baseUnit,
			ExtrasUnit: extrasUnit,
			Unit:       unit,
			Line:       line,
		}
		subtotal = subtotal.Add(line)
	}

	delivery := DeliveryCost(cust)
	total := subtotal.Add(delivery)

	checklist := Validate(items, cust, subtotal, delivery)

	return Snapshot{
		Items:       priced,
		Subtotal:    subtotal,
		Delivery:    delivery,
		Total:       total,
		Checklist:   checklist,
		CanFinalize: checklist.CanFinalize(),
		Step:        CurrentStep(checklist),
	}
}
