package catalog

import (
	"github.com/go-faster/errors"
)

// Registry is the process-wide, read-only catalog. Construct it once with
// New (or Load for the embedded catalog) and share it by reference.
type Registry struct {
	products []Product
	toppings []Topping
	extras   []Extra
	zones    []Zone

	productByID map[string]*Product
	toppingByID map[string]*Topping
	extraByID   map[string]*Extra
	zoneByID    map[string]*Zone
}

// New builds a Registry from the given entries. It rejects duplicate IDs
// within each entity kind.
func New(products []Product, toppings []Topping, extras []Extra, zones []Zone) (*Registry, error) {
	r := &Registry{
		products:    products,
		toppings:    toppings,
		extras:      extras,
		zones:       zones,
		productByID: make(map[string]*Product, len(products)),
		toppingByID: make(map[string]*Topping, len(toppings)),
		extraByID:   make(map[string]*Extra, len(extras)),
		zoneByID:    make(map[string]*Zone, len(zones)),
	}

	for i := range r.products {
		p := &r.products[i]
		if _, dup := r.productByID[p.ID]; dup {
			return nil, errors.Errorf("duplicate product id %q", p.ID)
		}
		r.productByID[p.ID] = p
	}
	for i := range r.toppings {
		t := &r.toppings[i]
		if _, dup := r.toppingByID[t.ID]; dup {
			return nil, errors.Errorf("duplicate topping id %q", t.ID)
		}
		r.toppingByID[t.ID] = t
	}
	for i := range r.extras {
		e := &r.extras[i]
		if _, dup := r.extraByID[e.ID]; dup {
			return nil, errors.Errorf("duplicate extra id %q", e.ID)
		}
		r.extraByID[e.ID] = e
	}
	for i := range r.zones {
		z := &r.zones[i]
		if _, dup := r.zoneByID[z.ID]; dup {
			return nil, errors.Errorf("duplicate zone id %q", z.ID)
		}
		r.zoneByID[z.ID] = z
	}

	return r, nil
}

// Products returns all catalog products in declaration order.
func (r *Registry) Products() []Product { return r.products }

// ProductsByCategory returns products of the given category, preserving
// declaration order.
func (r *Registry) ProductsByCategory(c Category) []Product {
	var out []Product
	for _, p := range r.products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// ProductByID looks up a product. The returned pointer aliases registry
// memory and must not be mutated.
func (r *Registry) ProductByID(id string) (*Product, bool) {
	p, ok := r.productByID[id]
	return p, ok
}

// Toppings returns all toppings in declaration order.
func (r *Registry) Toppings() []Topping { return r.toppings }

// ToppingByID looks up a topping.
func (r *Registry) ToppingByID(id string) (*Topping, bool) {
	t, ok := r.toppingByID[id]
	return t, ok
}

// Extras returns all extras in declaration order.
func (r *Registry) Extras() []Extra { return r.extras }

// ExtraByID looks up an extra.
func (r *Registry) ExtraByID(id string) (*Extra, bool) {
	e, ok := r.extraByID[id]
	return e, ok
}

// Zones returns all delivery zones in declaration order.
func (r *Registry) Zones() []Zone { return r.zones }

// ZoneByID looks up a delivery zone.
func (r *Registry) ZoneByID(id string) (*Zone, bool) {
	z, ok := r.zoneByID[id]
	return z, ok
}
