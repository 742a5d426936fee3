package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/pkg/response"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
	})
}

type loginRequest struct {
	PIN string `json:"pin"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, domain.ErrInvalidInput)
		return
	}
	session, err := h.service.Login(r.Context(), req.PIN)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, session)
}

// Sessions are stateless tokens; logout is the terminal discarding its
// token, so the server only acknowledges.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
