package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sampinong/pos-backend/internal/domain"
	"github.com/sampinong/pos-backend/internal/modules/user"
)

type service struct {
	userRepo   user.Repository
	jwtKey     []byte
	sessionTTL time.Duration
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, jwtSecret string, sessionTTL time.Duration) Service {
	return &service{userRepo: userRepo, jwtKey: []byte(jwtSecret), sessionTTL: sessionTTL}
}

// Login scans the fixed credential set for a matching PIN. This is a
// single-device kiosk model; the PIN is the whole credential.
func (s *service) Login(ctx context.Context, pin string) (*Session, error) {
	if pin == "" {
		return nil, domain.ErrInvalidCredentials
	}
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if bcrypt.CompareHashAndPassword([]byte(u.PINHash), []byte(pin)) != nil {
			continue
		}
		claims := &jwt.StandardClaims{
			Subject:   u.ID.String(),
			ExpiresAt: time.Now().Add(s.sessionTTL).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString(s.jwtKey)
		if err != nil {
			return nil, fmt.Errorf("sign session token: %w", err)
		}
		return &Session{
			Token: signed,
			User:  UserInfo{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role},
		}, nil
	}
	return nil, domain.ErrInvalidCredentials
}

// UserFromToken resolves a session token back to the operator it was issued to.
func (s *service) UserFromToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}
