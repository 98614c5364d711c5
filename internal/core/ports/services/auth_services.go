package services

import (
	"context"
	"time"

	"github.com/tahina-mg/pos_management_app/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a
	// user's stored token details. It returns the user if the token is valid
	// and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// AuthSvcFacade defines credential based authentication.
type AuthSvcFacade interface {
	// AuthenticateUser verifies a username and password pair.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}
