package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

type UserService struct {
	users   ports.UserRepository
	shops   ports.ShopRepository
	revoker ports.TokenRevoker
	log     zerolog.Logger
	now     func() time.Time
}

func NewUserService(users ports.UserRepository, shops ports.ShopRepository, revoker ports.TokenRevoker, log zerolog.Logger) *UserService {
	return &UserService{users: users, shops: shops, revoker: revoker, log: log, now: time.Now}
}

// Get returns the user with its owned lists. Lists referenced by the user
// but missing from the store are skipped.
func (s *UserService) Get(ctx context.Context, id string) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, user)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, normalizeEmail(email))
}

func (s *UserService) List(ctx context.Context) ([]*ports.UserDetail, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]*ports.UserDetail, 0, len(users))
	for _, u := range users {
		d, err := s.detail(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	var changes ports.UserChanges

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalidInput)
		}
		changes.Email = &email
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		changes.Name = &name
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", domain.ErrInvalidInput)
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	if changes.PasswordHash != nil {
		s.revoke(ctx, id)
	}
	return user, nil
}

// Delete removes the user first and then every list it owned. A failure in
// the second step leaves unreferenced lists behind, never a user pointing at
// missing lists.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.revoke(ctx, id)

	if len(user.ShopIDs) > 0 {
		n, err := s.shops.DeleteMany(ctx, user.ShopIDs)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", id).Strs("shop_ids", user.ShopIDs).Msg("failed to delete lists of removed user")
			return fmt.Errorf("delete user lists: %w", err)
		}
		s.log.Info().Str("user_id", id).Int64("deleted_shops", n).Msg("user lists deleted")
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) detail(ctx context.Context, user *domain.User) (*ports.UserDetail, error) {
	d := &ports.UserDetail{User: user, Shops: []*domain.Shop{}}
	if len(user.ShopIDs) == 0 {
		return d, nil
	}

	shops, err := s.shops.FindByIDs(ctx, user.ShopIDs)
	if err != nil {
		return nil, fmt.Errorf("load user lists: %w", err)
	}
	d.Shops = shops
	return d, nil
}

func (s *UserService) revoke(ctx context.Context, userID string) {
	if err := s.revoker.Revoke(ctx, userID, s.now()); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke tokens")
	}
}
