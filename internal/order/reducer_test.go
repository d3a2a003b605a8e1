package order

import (
	"testing"

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

func version(v catalog.Version) *catalog.Version { return &v }
func size(s catalog.Size) *catalog.Size         { return &s }

func TestToggle_AddsDefaultItem(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "picosa-suprema")

	state := Apply(nil, ToggleOp{Product: p})
	require.Len(t, state, 1)

	it := state[0]
	assert.Equal(t, "picosa-suprema", it.Product.ID)
	assert.Equal(t, 1, it.Qty)
	assert.Equal(t, catalog.SizeSmall, it.Size, "first available size is preselected")
	assert.Empty(t, it.Version, "version starts unchosen")
	assert.Empty(t, it.ToppingIDs)
	assert.Empty(t, it.ExtrasQty)
}

func TestToggle_IsSelfInverse(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "minipecado-40")

	state := Apply(nil, ToggleOp{Product: p})
	require.Len(t, state, 1)

	state = Apply(state, ToggleOp{Product: p})
	assert.Empty(t, state)
}

func TestToggle_RemovesRegardlessOfConfiguration(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "minipecado-40")

	state := Apply(nil, ToggleOp{Product: p})
	state = Apply(state, SetQtyOp{ProductID: p.ID, Qty: 5})
	state = Apply(state, UpdateOp{ProductID: p.ID, Patch: Patch{Version: version(catalog.VersionPicosa)}})

	state = Apply(state, ToggleOp{Product: p})
	assert.Empty(t, state, "toggle removes the whole item, not one unit")
}

func TestToggle_PreservesInsertionOrder(t *testing.T) {
	reg := mustLoad(t)
	a := product(t, reg, "minipecado-40")
	b := product(t, reg, "duo-shot")
	c := product(t, reg, "pinason-picoso")

	var state []Item
	for _, p := range []*catalog.Product{a, b, c} {
		state = Apply(state, ToggleOp{Product: p})
	}
	state = Apply(state, ToggleOp{Product: b})

	require.Len(t, state, 2)
	assert.Equal(t, "minipecado-40", state[0].Product.ID)
	assert.Equal(t, "pinason-picoso", state[1].Product.ID)
}

func TestUpdate_MergesPatch(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "picosa-suprema")

	state := Apply(nil, ToggleOp{Product: p})
	state = Apply(state, UpdateOp{ProductID: p.ID, Patch: Patch{
		Version:    version(catalog.VersionAhogada),
		Size:       size(catalog.SizeLarge),
		ToppingIDs: []string{"gusanos", "aros"},
		ExtrasQty:  map[string]int{"tajin": 1},
	}})

	it := state[0]
	assert.Equal(t, catalog.VersionAhogada, it.Version)
	assert.Equal(t, catalog.SizeLarge, it.Size)
	assert.Equal(t, []string{"gusanos", "aros"}, it.ToppingIDs)
	assert.Equal(t, map[string]int{"tajin": 1}, it.ExtrasQty)

	// Absent fields do not touch existing values.
	state = Apply(state, UpdateOp{ProductID: p.ID, Patch: Patch{Size: size(catalog.SizeMedium)}})
	it = state[0]
	assert.Equal(t, catalog.VersionAhogada, it.Version)
	assert.Equal(t, catalog.SizeMedium, it.Size)
	assert.Equal(t, []string{"gusanos", "aros"}, it.ToppingIDs)
}

func TestUpdate_MissingItemIsNoop(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "minipecado-40")

	state := Apply(nil, ToggleOp{Product: p})
	next := Apply(state, UpdateOp{ProductID: "ghost", Patch: Patch{Size: size(catalog.SizeLarge)}})
	assert.Equal(t, state, next)
}

func TestUpdate_ClampsToppingsToCap(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "duo-shot") // cap 2

	state := Apply(nil, ToggleOp{Product: p})
	state = Apply(state, UpdateOp{ProductID: p.ID, Patch: Patch{
		ToppingIDs: []string{"aros", "gusanos", "tortugas", "mango-biche"},
	}})

	assert.Equal(t, []string{"aros", "gusanos"}, state[0].ToppingIDs, "selections past the cap are dropped")
}

func TestUpdate_DropsNonPositiveExtras(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "minipecado-40")

	state := Apply(nil, ToggleOp{Product: p})
	state = Apply(state, UpdateOp{ProductID: p.ID, Patch: Patch{
		ExtrasQty: map[string]int{"tajin": 2, "chamoy": 0, "mango": -1},
	}})

	assert.Equal(t, map[string]int{"tajin": 2}, state[0].ExtrasQty)

	// An all-zero replacement clears the selection entirely.
	state = Apply(state, UpdateOp{ProductID: p.ID, Patch: Patch{ExtrasQty: map[string]int{"tajin": 0}}})
	assert.Nil(t, state[0].ExtrasQty)
}

func TestSetQty(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "minipecado-40")

	state := Apply(nil, ToggleOp{Product: p})
	state = Apply(state, SetQtyOp{ProductID: p.ID, Qty: 3})
	assert.Equal(t, 3, state[0].Qty)

	// Zero removes the item.
	state = Apply(state, SetQtyOp{ProductID: p.ID, Qty: 0})
	assert.Empty(t, state)
}

func TestSetQty_MissingItemIsNoop(t *testing.T) {
	state := Apply(nil, SetQtyOp{ProductID: "ghost", Qty: 3})
	assert.Empty(t, state)
}

func TestApply_NeverMutatesInput(t *testing.T) {
	reg := mustLoad(t)
	p := product(t, reg, "picosa-suprema")

	before := Apply(nil, ToggleOp{Product: p})
	before = Apply(before, UpdateOp{ProductID: p.ID, Patch: Patch{
		ToppingIDs: []string{"aros"},
		ExtrasQty:  map[string]int{"tajin": 1},
	}})

	after := Apply(before, UpdateOp{ProductID: p.ID, Patch: Patch{
		ToppingIDs: []string{"gusanos", "tortugas"},
		ExtrasQty:  map[string]int{"chamoy": 2},
	}})
	after = Apply(after, SetQtyOp{ProductID: p.ID, Qty: 9})

	// The older state still shows its original values.
	assert.Equal(t, 1, before[0].Qty)
	assert.Equal(t, []string{"aros"}, before[0].ToppingIDs)
	assert.Equal(t, map[string]int{"tajin": 1}, before[0].ExtrasQty)

	assert.Equal(t, 9, after[0].Qty)
	assert.Equal(t, []string{"gusanos", "tortugas"}, after[0].ToppingIDs)
}
