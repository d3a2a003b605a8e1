package handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

// GetCatalog returns the full static catalog: products with their price
// tables, toppings, extras, and delivery zones.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encCatalog(e, h.catalog)
	})
}
