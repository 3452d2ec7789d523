package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// AuthService implements registration, login and password changes.
type AuthService struct {
	repo    ports.UserRepository
	tokens  ports.TokenIssuer
	revoker ports.TokenRevoker
	log     zerolog.Logger
	now     func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, revoker ports.TokenRevoker, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, revoker: revoker, log: log, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || password == "" {
		return nil, fmt.Errorf("%w: email, name and password are required", domain.ErrInvalidInput)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		ShopIDs:      []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// ChangePassword replaces the password after checking the current one and
// revokes every token issued before the change.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", domain.ErrInvalidInput)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if _, err := s.repo.Update(ctx, userID, ports.UserChanges{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if err := s.revoker.Revoke(ctx, userID, s.now()); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke previous tokens")
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
