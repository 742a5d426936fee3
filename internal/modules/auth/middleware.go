package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/pkg/response"
)

type userCtxKey struct{}

// UserFromContext returns the authenticated operator, or nil outside an
// authenticated request.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userCtxKey{}).(*domain.User)
	return u
}

// RequireAuth resolves the bearer token to a user and injects it into the
// request context.
func RequireAuth(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				response.Error(w, domain.ErrUnauthorized)
				return
			}
			u, err := svc.UserFromToken(r.Context(), token)
			if err != nil {
				response.Error(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), userCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireFeature rejects requests from roles that cannot access the feature.
func RequireFeature(f Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				response.Error(w, domain.ErrUnauthorized)
				return
			}
			if !CanAccess(u.Role, f) {
				response.Error(w, domain.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
