package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Feature names a gated surface of the application.
type Feature string

const (
	FeaturePOS       Feature = "pos"
	FeatureDashboard Feature = "dashboard"
	FeatureInventory Feature = "inventory"
	FeatureCustomers Feature = "customers"
)

// roleFeatures is the static role→feature policy: staff reach the point of
// sale and the customer ledger, admins reach everything.
var roleFeatures = map[domain.Role]map[Feature]bool{
	domain.RoleAdmin: {
		FeaturePOS:       true,
		FeatureDashboard: true,
		FeatureInventory: true,
		FeatureCustomers: true,
	},
	domain.RoleStaff: {
		FeaturePOS:       true,
		FeatureCustomers: true,
	},
}

// CanAccess reports whether a role may use a feature.
func CanAccess(role domain.Role, f Feature) bool {
	return roleFeatures[role][f]
}

// UserInfo is the user shape returned to callers; it never carries the PIN hash.
type UserInfo struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// Session is the result of a successful login.
type Session struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Service defines the interface for authentication business logic.
type Service interface {
	Login(ctx context.Context, pin string) (*Session, error)
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
}
