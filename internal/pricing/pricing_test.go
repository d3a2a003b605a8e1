package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojopicante/pedidos/internal/catalog"
)

func mustLoad(t *testing.T) *catalog.Registry {
	t.Helper()
	reg, err := catalog.Load()
	require.NoError(t, err)
	return reg
}

func product(t *testing.T, reg *catalog.Registry, id string) *catalog.Product {
	t.Helper()
	p, ok := reg.ProductByID(id)
	require.True(t, ok, "product %s", id)
	return p
}

func TestBasePrice_Gomitas(t *testing.T) {
	reg := mustLoad(t)

	tests := []struct {
		name      string
		productID string
		version   catalog.Version
		size      catalog.Size
		want      int64
	}{
		{"minipecado ahogada", "minipecado-40", catalog.VersionAhogada, catalog.SizeSmall, 5900},
		{"minipecado picosa", "minipecado-40", catalog.VersionPicosa, catalog.SizeSmall, 5900},
		{"suprema picosa grande", "picosa-suprema", catalog.VersionPicosa, catalog.SizeLarge, 28000},
		{"pecado real ahogada mediano", "pecado-real", catalog.VersionAhogada, catalog.SizeMedium, 32000},
		{"zero cell is unpriced", "pecado-real", catalog.VersionPicosa, catalog.SizeSmall, 0},
		{"missing version", "minipecado-40", "", catalog.SizeSmall, 0},
		{"missing size", "minipecado-40", catalog.VersionAhogada, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := product(t, reg, tt.productID)
			got := BasePrice(p, tt.version, tt.size)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

func TestBasePrice_FixedIgnoresSelection(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "pinason-picoso")

	want := decimal.NewFromInt(7000)
	assert.True(t, BasePrice(p, "", "").Equal(want))
	// A stale size or version from a previous selection does not change the price.
	assert.True(t, BasePrice(p, catalog.VersionPicosa, catalog.SizeLarge).Equal(want))
}

func TestBasePrice_PerSize(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "duo-shot")

	assert.True(t, BasePrice(p, "", catalog.SizeSmall).Equal(decimal.NewFromInt(13500)))
	assert.True(t, BasePrice(p, "", catalog.SizeMedium).Equal(decimal.NewFromInt(14500)))

	// No size yet: first positive entry in canonical order.
	assert.True(t, BasePrice(p, "", "").Equal(decimal.NewFromInt(13500)))
	// Unpriced size falls back the same way.
	assert.True(t, BasePrice(p, "", catalog.SizeLarge).Equal(decimal.NewFromInt(13500)))
}

func TestBasePrice_NilProduct(t *testing.T) {
	assert.True(t, BasePrice(nil, catalog.VersionAhogada, catalog.SizeSmall).IsZero())
}

func TestExtrasSurcharge(t *testing.T) {
	reg := mustLoad(t)
	extras := reg.Extras()

	tests := []struct {
		name       string
		quantities map[string]int
		want       int64
	}{
		{"nil map", nil, 0},
		{"empty map", map[string]int{}, 0},
		{"single", map[string]int{"tajin": 1}, 3000},
		{"multiple units", map[string]int{"gomitas": 2}, 5000},
		{"mixed", map[string]int{"gomitas": 1, "mango": 1, "chamoy": 2}, 10500},
		{"zero and negative ignored", map[string]int{"tajin": 0, "chamoy": -3, "mango": 1}, 3000},
		{"unknown id ignored", map[string]int{"nope": 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtrasSurcharge(tt.quantities, extras)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

func TestExtrasSurcharge_Monotonic(t *testing.T) {
	reg := mustLoad(t)
	extras := reg.Extras()

	// Adding a unit never lowers the surcharge.
	base := ExtrasSurcharge(map[string]int{"gomitas": 1}, extras)
	more := ExtrasSurcharge(map[string]int{"gomitas": 1, "tajin": 1}, extras)
	assert.True(t, more.GreaterThan(base))
}

func TestFixedPriceWithExtras(t *testing.T) {
	// A Piñasón with two chamoy add-ons: 7000 + 2x2500.
	reg := mustLoad(t)
	p := product(t, reg, "pinason-picoso")

	unit := BasePrice(p, "", "").Add(ExtrasSurcharge(map[string]int{"chamoy": 2}, reg.Extras()))
	assert.True(t, unit.Equal(decimal.NewFromInt(12000)))
}
