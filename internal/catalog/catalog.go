// Package catalog holds the static product catalog: products, toppings,
// extras, and delivery zones. The catalog is loaded once at startup and is
// read-only for the lifetime of the process.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Category identifies one of the two product families.
type Category string

const (
	// CategoryGomitas are chili-candy gummies, priced per (version, size).
	CategoryGomitas Category = "gomitas"
	// CategoryFrutaFresh are fresh fruit cups, priced fixed or per size.
	CategoryFrutaFresh Category = "frutafresh"
)

// Size is a product presentation size.
type Size string

const (
	SizeSmall  Size = "pequeno"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

// sizeOrder is the canonical size ordering used for lookups and fallbacks.
var sizeOrder = [...]Size{SizeSmall, SizeMedium, SizeLarge}

// AllSizes returns every known size in canonical order.
func AllSizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// KnownSize reports whether s is one of the declared sizes.
func KnownSize(s Size) bool {
	for _, known := range sizeOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Version is the preparation style axis, applicable only to gomitas.
type Version string

const (
	VersionAhogada Version = "ahogada"
	VersionPicosa  Version = "picosa"
)

// KnownVersion reports whether v is one of the declared versions.
func KnownVersion(v Version) bool {
	return v == VersionAhogada || v == VersionPicosa
}

// PriceTable holds the price entries for a product. Exactly one shape is
// populated depending on the product category:
//
//   - gomitas: ByVersion, a (version, size) grid. A zero or missing cell
//     means the combination is not offered.
//   - frutafresh with a single price: Fixed.
//   - frutafresh priced per size: PerSize.
type PriceTable struct {
	ByVersion map[Version]map[Size]decimal.Decimal
	Fixed     *decimal.Decimal
	PerSize   map[Size]decimal.Decimal
}

// Cell returns the (version, size) grid entry, or zero when absent.
func (t PriceTable) Cell(v Version, s Size) decimal.Decimal {
	if t.ByVersion == nil {
		return decimal.Zero
	}
	return t.ByVersion[v][s]
}

// Product is an immutable catalog entry. Products are shared by reference;
// order items never copy or mutate them.
type Product struct {
	ID          string
	Category    Category
	Name        string
	Description string
	Badge       string

	// ToppingsIncludedMax caps the number of included (free) toppings.
	// Zero means the product takes no toppings at all.
	ToppingsIncludedMax int

	// Sizes lists the presentations declared for the product. May be empty
	// for fixed-price products.
	Sizes []Size

	Prices PriceTable
}

// HasFixedPrice reports whether the product carries a single fixed price.
func (p *Product) HasFixedPrice() bool {
	return p.Prices.Fixed != nil
}

// AvailableSizes returns the sizes that can actually be ordered. For gomitas
// these are the declared sizes; for per-size frutafresh only sizes with a
// positive price entry qualify, so an unpriced size is never offered.
func (p *Product) AvailableSizes() []Size {
	if p.Category == CategoryGomitas {
		return p.Sizes
	}
	if p.HasFixedPrice() {
		return p.Sizes
	}
	var sizes []Size
	for _, s := range sizeOrder {
		if price, ok := p.Prices.PerSize[s]; ok && price.IsPositive() {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// DefaultSize returns the first available size, used when an item is first
// added to an order. ok is false when the product has no sizes.
func (p *Product) DefaultSize() (Size, bool) {
	sizes := p.AvailableSizes()
	if len(sizes) == 0 {
		return "", false
	}
	return sizes[0], true
}

// MaxToppings returns the included toppings cap for the product.
func (p *Product) MaxToppings() int {
	return p.ToppingsIncludedMax
}

// Topping is an included (free) customization, bounded per product by
// ToppingsIncludedMax.
type Topping struct {
	ID   string
	Name string
}

// Extra is a paid add-on; every selected unit adds Price to the item.
type Extra struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Zone is a home-delivery zone. A nil Price means the delivery cost is
// confirmed manually after the order is sent.
type Zone struct {
	ID    string
	Name  string
	Price *decimal.Decimal
}
