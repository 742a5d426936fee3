package checkout

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/modules/auth"
	"github.com/sampinong/pos-backend/internal/pkg/response"
)

// Handler exposes the checkout HTTP endpoint.
type Handler struct {
	service Service
	onSale  func(method string, total float64)
}

// NewHandler creates the checkout handler. onSale is called after each
// completed checkout (metrics hook); it may be nil.
func NewHandler(service Service, onSale func(method string, total float64)) *Handler {
	return &Handler{service: service, onSale: onSale}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(auth.RequireFeature(auth.FeaturePOS)).
		Post("/api/v1/checkout", h.checkout)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	// the cashier on the order is the session operator, never the payload
	req.CashierName = ""
	if u := auth.UserFromContext(r.Context()); u != nil {
		req.CashierName = u.Name
	}
	o, err := h.service.Checkout(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.onSale != nil {
		h.onSale(string(o.PaymentMethod), o.Total)
	}
	response.JSON(w, http.StatusCreated, o)
}
