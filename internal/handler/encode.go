package handler

import (
	"net/http"
	"sort"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/order"
)

// writeJSON encodes a response body with jx and writes it with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the standard {"code", "message"} error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("code")
		e.Int(status)
		e.FieldStart("message")
		e.Str(msg)
		e.ObjEnd()
	})
}

// encMoney writes a monetary amount as an integer peso value.
func encMoney(e *jx.Encoder, v decimal.Decimal) {
	e.Int64(v.Round(0).IntPart())
}

func encStrArr(e *jx.Encoder, values []string) {
	e.ArrStart()
	for _, v := range values {
		e.Str(v)
	}
	e.ArrEnd()
}

// encSnapshot writes the derived order view.
func encSnapshot(e *jx.Encoder, snap order.Snapshot) {
	e.ObjStart()

	e.FieldStart("items")
	e.ArrStart()
	for _, it := range snap.Items {
		encPricedItem(e, it)
	}
	e.ArrEnd()

	e.FieldStart("subtotal")
	encMoney(e, snap.Subtotal)
	e.FieldStart("delivery")
	encMoney(e, snap.Delivery)
	e.FieldStart("total")
	encMoney(e, snap.Total)

	e.FieldStart("checklist")
	e.ArrStart()
	for _, cond := range snap.Checklist {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(cond.ID)
		e.FieldStart("label")
		e.Str(cond.Label)
		e.FieldStart("ok")
		e.Bool(cond.OK)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("canFinalize")
	e.Bool(snap.CanFinalize)
	e.FieldStart("step")
	e.Str(snap.Step.String())
	if hint := snap.Checklist.Hint(); hint != "" {
		e.FieldStart("hint")
		e.Str(hint)
	}

	e.ObjEnd()
}

func encPricedItem(e *jx.Encoder, it order.PricedItem) {
	e.ObjStart()

	e.FieldStart("productId")
	e.Str(it.Product.ID)
	e.FieldStart("name")
	e.Str(it.Product.Name)
	e.FieldStart("qty")
	e.Int(it.Qty)

	if it.Version != "" {
		e.FieldStart("version")
		e.Str(string(it.Version))
	}
	if it.Size != "" {
		e.FieldStart("size")
		e.Str(string(it.Size))
	}
	if len(it.ToppingIDs) > 0 {
		e.FieldStart("toppingIds")
		encStrArr(e, it.ToppingIDs)
	}
	if len(it.ExtrasQty) > 0 {
		e.FieldStart("extrasQty")
		e.ObjStart()
		for _, kv := range sortedExtras(it.ExtrasQty) {
			e.FieldStart(kv.id)
			e.Int(kv.qty)
		}
		e.ObjEnd()
	}

	e.FieldStart("baseUnitPrice")
	encMoney(e, it.BaseUnit)
	e.FieldStart("extrasUnitPrice")
	encMoney(e, it.ExtrasUnit)
	e.FieldStart("unitPrice")
	encMoney(e, it.Unit)
	e.FieldStart("lineTotal")
	encMoney(e, it.Line)

	e.ObjEnd()
}

// encCatalog writes the full read-only catalog.
func encCatalog(e *jx.Encoder, reg *catalog.Registry) {
	e.ObjStart()

	e.FieldStart("products")
	e.ArrStart()
	for i := range reg.Products() {
		encProduct(e, &reg.Products()[i])
	}
	e.ArrEnd()

	e.FieldStart("toppings")
	e.ArrStart()
	for _, t := range reg.Toppings() {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(t.ID)
		e.FieldStart("name")
		e.Str(t.Name)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("extras")
	e.ArrStart()
	for _, x := range reg.Extras() {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(x.ID)
		e.FieldStart("name")
		e.Str(x.Name)
		e.FieldStart("price")
		encMoney(e, x.Price)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("zones")
	e.ArrStart()
	for _, z := range reg.Zones() {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(z.ID)
		e.FieldStart("name")
		e.Str(z.Name)
		if z.Price != nil {
			e.FieldStart("price")
			encMoney(e, *z.Price)
		}
		e.ObjEnd()
	}
	e.ArrEnd()

	e.ObjEnd()
}

func encProduct(e *jx.Encoder, p *catalog.Product) {
	e.ObjStart()

	e.FieldStart("id")
	e.Str(p.ID)
	e.FieldStart("category")
	e.Str(string(p.Category))
	e.FieldStart("name")
	e.Str(p.Name)
	e.FieldStart("description")
	e.Str(p.Description)
	if p.Badge != "" {
		e.FieldStart("badge")
		e.Str(p.Badge)
	}
	e.FieldStart("toppingsIncludedMax")
	e.Int(p.MaxToppings())

	e.FieldStart("sizes")
	e.ArrStart()
	for _, s := range p.AvailableSizes() {
		e.Str(string(s))
	}
	e.ArrEnd()

	e.FieldStart("prices")
	encPrices(e, p)

	e.ObjEnd()
}

func encPrices(e *jx.Encoder, p *catalog.Product) {
	e.ObjStart()
	switch {
	case p.Category == catalog.CategoryGomitas:
		for _, v := range []catalog.Version{catalog.VersionAhogada, catalog.VersionPicosa} {
			e.FieldStart(string(v))
			encSizeRow(e, p.Prices.ByVersion[v])
		}
	case p.HasFixedPrice():
		e.FieldStart("fijo")
		encMoney(e, *p.Prices.Fixed)
	default:
		e.FieldStart("porSize")
		encSizeRow(e, p.Prices.PerSize)
	}
	e.ObjEnd()
}

func encSizeRow(e *jx.Encoder, row map[catalog.Size]decimal.Decimal) {
	e.ObjStart()
	for _, s := range catalog.AllSizes() {
		if price, ok := row[s]; ok && price.IsPositive() {
			e.FieldStart(string(s))
			encMoney(e, price)
		}
	}
	e.ObjEnd()
}

type extraKV struct {
	id  string
	qty int
}

// sortedExtras orders the extras map for deterministic encoding.
func sortedExtras(quantities map[string]int) []extraKV {
	out := make([]extraKV, 0, len(quantities))
	for id, qty := range quantities {
		out = append(out, extraKV{id: id, qty: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
