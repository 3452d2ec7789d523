package ports

import (
	"context"
	"time"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// AuthService covers the credential lifecycle of a user account.
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// TokenIssuer signs credential tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenRevoker invalidates every token a user was issued before a given time.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID string, at time.Time) error
	RevokedSince(ctx context.Context, userID string) (time.Time, bool, error)
}
