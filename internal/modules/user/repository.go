package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/sampinong/pos-backend/internal/domain"
)

// Repository defines the interface for user data access. The credential set
// is fixed at seed time; users are never created through the API.
type Repository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
