package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/modules/auth"
	"github.com/sampinong/pos-backend/internal/pkg/response"
)

// Handler exposes customer ledger HTTP endpoints.
type Handler struct {
	service   Service
	onPayment func(amount float64)
}

// NewHandler creates the customer handler. onPayment is called after each
// successful debt payment (metrics hook); it may be nil.
func NewHandler(service Service, onPayment func(amount float64)) *Handler {
	return &Handler{service: service, onPayment: onPayment}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Use(auth.RequireFeature(auth.FeatureCustomers))
		r.Get("/", h.listCustomers)
		r.Post("/", h.createCustomer)
		r.Get("/{id}", h.getCustomer)
		r.Put("/{id}", h.updateCustomer)
		r.Post("/{id}/payments", h.payDebt)
	})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, c)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	c, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, c)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	c, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, c)
}

type payDebtRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) payDebt(w http.ResponseWriter, r *http.Request) {
	cid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	var req payDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	cashier := "Unknown"
	if u := auth.UserFromContext(r.Context()); u != nil {
		cashier = u.Name
	}
	receipt, err := h.service.PayDebt(r.Context(), cid, req.Amount, cashier)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.onPayment != nil {
		h.onPayment(receipt.Amount)
	}
	response.JSON(w, http.StatusOK, receipt)
}
