package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/antojopicante/pedidos/internal/message"
	"github.com/antojopicante/pedidos/internal/order"
)

// CreateSession opens a fresh order session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(s.ID)
		e.ObjEnd()
	})
}

// GetSnapshot returns the derived order view: priced items, totals,
// checklist, current step.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot(h.catalog)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encSnapshot(e, snap)
	})
}

// ToggleProduct adds the product to the order, or removes it when already
// present.
func (h *Handler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	productID, err := decodeToggle(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, ok := h.catalog.ProductByID(productID)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "product "+productID+" not found")
		return
	}

	s.Dispatch(order.ToggleOp{Product: p})
	h.respondSnapshot(w, s)
}

// UpdateItem merges a partial configuration into the product's item. The
// reducer treats a missing item as a no-op, so the response is simply the
// unchanged snapshot in that case.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := decodePatch(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.Dispatch(order.UpdateOp{ProductID: productIDParam(r), Patch: patch})
	h.respondSnapshot(w, s)
}

// SetQuantity sets the item quantity; zero or less removes the item.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	qty, err := decodeQty(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.Dispatch(order.SetQtyOp{ProductID: productIDParam(r), Qty: qty})
	h.respondSnapshot(w, s)
}

// SetCustomer replaces the session's customer context.
func (h *Handler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload, err := decodeCustomer(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cust := order.Customer{
		Name:      payload.Name,
		Phone:     payload.Phone,
		Address:   payload.Address,
		Reference: payload.Reference,
		Comments:  payload.Comments,
	}

	service := order.Service(payload.Service)
	if payload.Service != "" && !order.KnownService(service) {
		writeError(w, http.StatusBadRequest, "unknown service "+payload.Service)
		return
	}
	if service == "" {
		service = order.ServicePickup
	}
	cust.Service = service

	payment := order.PaymentMethod(payload.Payment)
	if payload.Payment != "" && !order.KnownPayment(payment) {
		writeError(w, http.StatusBadRequest, "unknown payment method "+payload.Payment)
		return
	}
	if payment == "" {
		payment = order.PaymentTransfer
	}
	cust.Payment = payment

	if payload.ZoneID != "" {
		zone, ok := h.catalog.ZoneByID(payload.ZoneID)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown zone "+payload.ZoneID)
			return
		}
		cust.Zone = zone
	}

	s.SetCustomer(cust)
	h.respondSnapshot(w, s)
}

// Finalize serializes the order into the outbound message and builds the
// click-to-chat link. The checklist is a hard precondition: an incomplete
// order gets 422 with the pending conditions, never a partial message.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Finalize")
	defer span.End()

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	snap := s.Snapshot(h.catalog)
	_, cust := s.State()

	if !snap.CanFinalize {
		pending := snap.Checklist.Pending()
		writeJSON(w, http.StatusUnprocessableEntity, func(e *jx.Encoder) {
			e.ObjStart()
			e.FieldStart("code")
			e.Int(http.StatusUnprocessableEntity)
			e.FieldStart("message")
			e.Str(snap.Checklist.Hint())
			e.FieldStart("pending")
			e.ArrStart()
			for _, cond := range pending {
				e.Str(cond.ID)
			}
			e.ArrEnd()
			e.ObjEnd()
		})
		return
	}

	code := h.codes.Next()
	text, err := message.Build(message.Params{
		Origin:   h.cfg.Origin,
		Code:     code,
		NequiKey: h.cfg.NequiKey,
		Snapshot: snap,
		Customer: cust,
		Catalog:  h.catalog,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	link := message.Link(h.cfg.Destination, text)

	span.SetAttributes(attribute.String("order.code", code))
	h.finalized.Add(ctx, 1)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.ObjStart()
		e.FieldStart("orderCode")
		e.Str(code)
		e.FieldStart("message")
		e.Str(text)
		e.FieldStart("link")
		e.Str(link)
		e.ObjEnd()
	})
}

func productIDParam(r *http.Request) string {
	return chi.URLParam(r, "productID")
}

// respondSnapshot writes the session's current derived view, the standard
// response for every mutating session endpoint.
func (h *Handler) respondSnapshot(w http.ResponseWriter, s *order.Session) {
	snap := s.Snapshot(h.catalog)
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		encSnapshot(e, snap)
	})
}
