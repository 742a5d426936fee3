package order

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sampinong/pos-backend/internal/modules/auth"
	"github.com/sampinong/pos-backend/internal/pkg/response"
)

// Handler exposes order journal and dashboard HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(auth.RequireFeature(auth.FeatureDashboard))
		r.Get("/", h.listOrders)
		r.Get("/daily-sales", h.dailySales)
	})
	r.With(auth.RequireFeature(auth.FeatureDashboard)).
		Get("/api/v1/dashboard/stats", h.stats)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, orders)
}

func (h *Handler) dailySales(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}
	series, err := h.service.DailySales(r.Context(), days)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, series)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
