package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sampinong/pos-backend/internal/domain"
)

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error maps a domain error to an HTTP status and writes it as JSON. The
// core never renders messages itself; this translation lives only at the
// HTTP boundary.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateBarcode):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrCreditLimitExceeded),
		errors.Is(err, domain.ErrNoCustomerSelected):
		status = http.StatusConflict
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}
