package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// UserChanges lists the fields of a partial user update. Nil means "leave as is".
// PasswordHash is already hashed by the service.
type UserChanges struct {
	Email        *string
	Name         *string
	PasswordHash *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a user. A duplicate email yields domain.ErrUserExists;
	// uniqueness is enforced by the store, not by a prior lookup.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, changes UserChanges) (*domain.User, error)
	// Delete removes the user and returns the document as it was before removal.
	Delete(ctx context.Context, id string) (*domain.User, error)
	AttachShop(ctx context.Context, userID, shopID string) error
	// DetachShop removes shopID from every user owning it.
	DetachShop(ctx context.Context, shopID string) error
}
