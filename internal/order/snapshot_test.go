package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antojopicante/pedidos/internal/catalog"
)

func TestDeliveryCost(t *testing.T) {
	reg := mustLoad(t)
	centro, ok := reg.ZoneByID("centro")
	require.True(t, ok)
	sabaneta, ok := reg.ZoneByID("sabaneta")
	require.True(t, ok)

	tests := []struct {
		name string
		cust Customer
		want int64
	}{
		{"pickup", Customer{Service: ServicePickup, Zone: centro}, 0},
		{"delivery without zone", Customer{Service: ServiceDelivery}, 0},
		{"delivery with priced zone", Customer{Service: ServiceDelivery, Zone: centro}, 4000},
		{"delivery with unpriced zone", Customer{Service: ServiceDelivery, Zone: sabaneta}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeliveryCost(tt.cust)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

func TestBuildSnapshot_SingleGomitasItem(t *testing.T) {
	reg := mustLoad(t)
	items := []Item{completeGomitasItem(t, reg)}

	snap := BuildSnapshot(reg, items, completeCustomer())

	require.Len(t, snap.Items, 1)
	it := snap.Items[0]
	assert.True(t, it.BaseUnit.Equal(decimal.NewFromInt(5900)))
	assert.True(t, it.ExtrasUnit.IsZero())
	assert.True(t, it.Unit.Equal(decimal.NewFromInt(5900)))
	assert.True(t, it.Line.Equal(decimal.NewFromInt(5900)))

	assert.True(t, snap.Subtotal.Equal(decimal.NewFromInt(5900)))
	assert.True(t, snap.Delivery.IsZero())
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(5900)))
	assert.True(t, snap.CanFinalize)
	assert.Equal(t, StepReviewingSummary, snap.Step)
}

func TestBuildSnapshot_ExtrasAndQuantity(t *testing.T) {
	reg := mustLoad(t)
	it := completeGomitasItem(t, reg)
	it.Qty = 3
	it.ExtrasQty = map[string]int{"tajin": 1, "chamoy": 2} // 3000 + 5000

	snap := BuildSnapshot(reg, []Item{it}, completeCustomer())

	priced := snap.Items[0]
	assert.True(t, priced.ExtrasUnit.Equal(decimal.NewFromInt(8000)))
	assert.True(t, priced.Unit.Equal(decimal.NewFromInt(13900)))
	assert.True(t, priced.Line.Equal(decimal.NewFromInt(41700)), "extras are charged per unit")
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(41700)))
}

func TestBuildSnapshot_DeliveryAddsToTotal(t *testing.T) {
	reg := mustLoad(t)
	items := []Item{completeGomitasItem(t, reg)}
	zone, ok := reg.ZoneByID("poblado")
	require.True(t, ok)

	cust := completeCustomer()
	cust.Service = ServiceDelivery
	cust.Zone = zone
	cust.Address = "Calle 10 # 20-30"

	snap := BuildSnapshot(reg, items, cust)
	assert.True(t, snap.Delivery.Equal(decimal.NewFromInt(6000)))
	assert.True(t, snap.Total.Equal(decimal.NewFromInt(11900)))
	assert.True(t, snap.CanFinalize)
}

func TestBuildSnapshot_StaleVersionOnFrutafreshIgnored(t *testing.T) {
	reg := mustLoad(t)
	it := Item{
		Product: product(t, reg, "duo-shot"),
		Qty:     1,
		Size:    catalog.SizeMedium,
		Version: catalog.VersionPicosa, // leftover from a previous gomitas selection
	}

	snap := BuildSnapshot(reg, []Item{it}, completeCustomer())
	assert.True(t, snap.Items[0].BaseUnit.Equal(decimal.NewFromInt(14500)))
}

func TestBuildSnapshot_UnpricedItemYieldsZeroLine(t *testing.T) {
	reg := mustLoad(t)
	// Version not chosen yet: the item has no price and the total check
	// keeps the order from finalizing.
	it := Item{Product: product(t, reg, "minipecado-40"), Qty: 2, Size: catalog.SizeSmall}

	snap := BuildSnapshot(reg, []Item{it}, completeCustomer())
	assert.True(t, snap.Items[0].Line.IsZero())
	assert.False(t, snap.CanFinalize)
	assert.False(t, snap.Checklist.Passed(CondTotal))
}

func TestBuildSnapshot_Empty(t *testing.T) {
	reg := mustLoad(t)
	snap := BuildSnapshot(reg, nil, Customer{})

	assert.Empty(t, snap.Items)
	assert.True(t, snap.Total.IsZero())
	assert.False(t, snap.CanFinalize)
	assert.Equal(t, StepSelectingProducts, snap.Step)
}
