package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/modules/auth"
	"github.com/sampinong/pos-backend/internal/pkg/response"
)

// Handler exposes catalog HTTP endpoints. Reads are open to any operator
// (the POS screen needs them); mutations are inventory-gated.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.With(auth.RequireFeature(auth.FeaturePOS)).Get("/", h.listProducts)
		r.With(auth.RequireFeature(auth.FeaturePOS)).Get("/barcode/{code}", h.getByBarcode)
		r.With(auth.RequireFeature(auth.FeatureInventory)).Post("/", h.createProduct)
		r.With(auth.RequireFeature(auth.FeatureInventory)).Put("/{id}", h.updateProduct)
		r.With(auth.RequireFeature(auth.FeatureInventory)).Delete("/{id}", h.deleteProduct)
	})
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.With(auth.RequireFeature(auth.FeaturePOS)).Get("/", h.listCategories)
		r.With(auth.RequireFeature(auth.FeatureInventory)).Post("/", h.addCategory)
		r.With(auth.RequireFeature(auth.FeatureInventory)).Delete("/", h.deleteCategory)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, products)
}

func (h *Handler) getByBarcode(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProductByBarcode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, categories)
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) addCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	if err := h.service.AddCategory(r.Context(), req.Name); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCategory takes the name as a query parameter because category names
// are free text.
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCategory(r.Context(), r.URL.Query().Get("name")); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
