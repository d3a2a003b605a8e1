// Package pricing resolves unit prices from the catalog's price tables.
//
// Lookups never fail: a missing or unavailable combination resolves to zero,
// and the order validator catches the unpriced item via its total check.
// Zero is "not priced", not "free".
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/antojopicante/pedidos/internal/catalog"
)

// BasePrice returns the unit price of the product for the selected version
// and size.
//
// Gomitas require both a version and a size; without them, or when the table
// cell is absent or non-positive, the result is zero. Fixed-price frutafresh
// ignore the size entirely. Per-size frutafresh return the entry for the
// given size when it is positive; when no usable size is given, the first
// positive entry in canonical size order is used instead, matching how the
// storefront always behaved for items created before a size was picked.
func BasePrice(p *catalog.Product, version catalog.Version, size catalog.Size) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}

	if p.Category == catalog.CategoryGomitas {
		if version == "" || size == "" {
			return decimal.Zero
		}
		if cell := p.Prices.Cell(version, size); cell.IsPositive() {
			return cell
		}
		return decimal.Zero
	}

	if p.HasFixedPrice() {
		return *p.Prices.Fixed
	}

	if size != "" {
		if price, ok := p.Prices.PerSize[size]; ok && price.IsPositive() {
			return price
		}
	}
	for _, s := range catalog.AllSizes() {
		if price, ok := p.Prices.PerSize[s]; ok && price.IsPositive() {
			return price
		}
	}

	return decimal.Zero
}

// ExtrasSurcharge sums quantity * unit price over the extras catalog.
// Quantities that are missing, zero, or negative contribute nothing, so the
// result is never negative.
func ExtrasSurcharge(quantities map[string]int, extras []catalog.Extra) decimal.Decimal {
	sum := decimal.Zero
	for _, extra := range extras {
		qty := quantities[extra.ID]
		if qty <= 0 {
			continue
		}
		sum = sum.Add(extra.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum
}
