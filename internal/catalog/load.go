package catalog

import (
	_ "embed"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// catalogJSON is the embedded catalog shipped with the binary. The shop's
// catalog changes a few times a year at most, so a static asset beats a
// database round trip.
//
//go:embed catalog.json
var catalogJSON []byte

// frutafreshDefaultCap is the included-toppings cap applied to frutafresh
// products that do not declare one.
const frutafreshDefaultCap = 2

// JSON transfer types for catalog files. Same schema as the exports checked
// by the catalog-lint tool.
type (
	fileJSON struct {
		Products []productJSON `json:"products"`
		Toppings []toppingJSON `json:"toppings"`
		Extras   []extraJSON   `json:"extras"`
		Zones    []zoneJSON    `json:"zones"`
	}

	productJSON struct {
		ID                  string         `json:"id"`
		Category            string         `json:"category"`
		Name                string         `json:"name"`
		Description         string         `json:"description"`
		Badge               string         `json:"badge"`
		ToppingsIncludedMax *int           `json:"toppingsIncludedMax"`
		Sizes               []string       `json:"sizes"`
		Prices              priceTableJSON `json:"prices"`
	}

	priceTableJSON struct {
		Ahogada map[string]decimal.Decimal `json:"ahogada"`
		Picosa  map[string]decimal.Decimal `json:"picosa"`
		Fijo    *decimal.Decimal           `json:"fijo"`
		PorSize map[string]decimal.Decimal `json:"porSize"`
	}

	toppingJSON struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	extraJSON struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}

	zoneJSON struct {
		ID    string           `json:"id"`
		Name  string           `json:"name"`
		Price *decimal.Decimal `json:"price"`
	}
)

// Load parses the embedded catalog and builds the Registry.
func Load() (*Registry, error) {
	return Parse(catalogJSON)
}

// Parse decodes catalog JSON and builds a Registry from it.
func Parse(data []byte) (*Registry, error) {
	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	products := make([]Product, 0, len(file.Products))
	for _, pj := range file.Products {
		p, err := pj.toProduct()
		if err != nil {
			return nil, errors.Wrapf(err, "product %q", pj.ID)
		}
		products = append(products, p)
	}

	toppings := make([]Topping, 0, len(file.Toppings))
	for _, tj := range file.Toppings {
		if tj.ID == "" {
			return nil, errors.New("topping with empty id")
		}
		toppings = append(toppings, Topping{ID: tj.ID, Name: tj.Name})
	}

	extras := make([]Extra, 0, len(file.Extras))
	for _, ej := range file.Extras {
		if ej.ID == "" {
			return nil, errors.New("extra with empty id")
		}
		if ej.Price.IsNegative() {
			return nil, errors.Errorf("extra %q has negative price", ej.ID)
		}
		extras = append(extras, Extra{ID: ej.ID, Name: ej.Name, Price: ej.Price})
	}

	zones := make([]Zone, 0, len(file.Zones))
	for _, zj := range file.Zones {
		if zj.ID == "" {
			return nil, errors.New("zone with empty id")
		}
		if zj.Price != nil && zj.Price.IsNegative() {
			return nil, errors.Errorf("zone %q has negative price", zj.ID)
		}
		zones = append(zones, Zone{ID: zj.ID, Name: zj.Name, Price: zj.Price})
	}

	return New(products, toppings, extras, zones)
}

func (pj productJSON) toProduct() (Product, error) {
	if pj.ID == "" {
		return Product{}, errors.New("empty id")
	}

	category := Category(pj.Category)

	sizes := make([]Size, 0, len(pj.Sizes))
	for _, raw := range pj.Sizes {
		s := Size(raw)
		if !KnownSize(s) {
			return Product{}, errors.Errorf("unknown size %q", raw)
		}
		sizes = append(sizes, s)
	}

	p := Product{
		ID:          pj.ID,
		Category:    category,
		Name:        pj.Name,
		Description: pj.Description,
		Badge:       pj.Badge,
		Sizes:       sizes,
	}

	switch category {
	case CategoryGomitas:
		if pj.Prices.Ahogada == nil && pj.Prices.Picosa == nil {
			return Product{}, errors.New("gomitas product without a version price table")
		}
		byVersion := make(map[Version]map[Size]decimal.Decimal, 2)
		for v, cells := range map[Version]map[string]decimal.Decimal{
			VersionAhogada: pj.Prices.Ahogada,
			VersionPicosa:  pj.Prices.Picosa,
		} {
			row, err := toSizeRow(cells)
			if err != nil {
				return Product{}, errors.Wrapf(err, "version %q", v)
			}
			byVersion[v] = row
		}
		p.Prices = PriceTable{ByVersion: byVersion}
		p.ToppingsIncludedMax = capOrDefault(pj.ToppingsIncludedMax, 0)

	case CategoryFrutaFresh:
		switch {
		case pj.Prices.Fijo != nil:
			if !pj.Prices.Fijo.IsPositive() {
				return Product{}, errors.New("fixed price must be positive")
			}
			fixed := *pj.Prices.Fijo
			p.Prices = PriceTable{Fixed: &fixed}
		case pj.Prices.PorSize != nil:
			row, err := toSizeRow(pj.Prices.PorSize)
			if err != nil {
				return Product{}, err
			}
			p.Prices = PriceTable{PerSize: row}
		default:
			return Product{}, errors.New("frutafresh product without prices")
		}
		p.ToppingsIncludedMax = capOrDefault(pj.ToppingsIncludedMax, frutafreshDefaultCap)

	default:
		return Product{}, errors.Errorf("unknown category %q", pj.Category)
	}

	return p, nil
}

func toSizeRow(cells map[string]decimal.Decimal) (map[Size]decimal.Decimal, error) {
	row := make(map[Size]decimal.Decimal, len(cells))
	for raw, price := range cells {
		s := Size(raw)
		if !KnownSize(s) {
			return nil, errors.Errorf("unknown size %q", raw)
		}
		if price.IsNegative() {
			return nil, errors.Errorf("negative price for size %q", raw)
		}
		row[s] = price
	}
	return row, nil
}

func capOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	if *v < 0 {
		return 0
	}
	return *v
}
