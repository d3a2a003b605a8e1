// Package handler exposes the order engine over HTTP. Routing is chi,
// request and response bodies are encoded with jx.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/antojopicante/pedidos/internal/catalog"
	"github.com/antojopicante/pedidos/internal/message"
	"github.com/antojopicante/pedidos/internal/order"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// Origin tags outbound messages with where the order was assembled.
	Origin string
	// Destination is the shop's WhatsApp number for the click-to-chat link.
	Destination string
	// NequiKey is the payment account advertised in the message.
	NequiKey string

	// TracerProvider and MeterProvider default to the otel globals when nil.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Handler serves the catalog and the per-session order operations.
type Handler struct {
	cfg      Config
	catalog  *catalog.Registry
	sessions *order.Store
	codes    *message.CodeGenerator

	tracer    trace.Tracer
	finalized metric.Int64Counter
}

// New constructs a Handler with the required dependencies.
func New(cfg Config, reg *catalog.Registry, sessions *order.Store, codes *message.CodeGenerator) (*Handler, error) {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	finalized, err := mp.Meter("pedidos/handler").Int64Counter("pedidos.orders.finalized")
	if err != nil {
		return nil, err
	}

	return &Handler{
		cfg:       cfg,
		catalog:   reg,
		sessions:  sessions,
		codes:     codes,
		tracer:    tp.Tracer("pedidos/handler"),
		finalized: finalized,
	}, nil
}

// RegisterRoutes mounts all endpoints on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.GetCatalog)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSnapshot)
			r.Post("/toggle", h.ToggleProduct)
			r.Patch("/items/{productID}", h.UpdateItem)
			r.Put("/items/{productID}/quantity", h.SetQuantity)
			r.Put("/customer", h.SetCustomer)
			r.Post("/finalize", h.Finalize)
		})
	})
}

// session resolves the {id} route parameter, replying 404 when the session
// does not exist or has expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*order.Session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return s, true
}
