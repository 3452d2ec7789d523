package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// UpdateUserInput carries a partial update. Password is plaintext and is
// hashed by the service.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
}

// UserDetail is a user together with its owned shopping lists.
type UserDetail struct {
	User  *domain.User
	Shops []*domain.Shop
}

type UserService interface {
	Get(ctx context.Context, id string) (*UserDetail, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*UserDetail, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
