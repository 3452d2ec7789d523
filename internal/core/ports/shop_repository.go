package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// ShopChanges lists the fields of a partial list update. When FoodChecked is
// set the repository also writes nb_checked = len(*FoodChecked).
type ShopChanges struct {
	Name        *string
	FoodsInShop *[]string
	FoodChecked *[]string
}

// ShopRepository defines persistence operations for shopping lists. Every
// mutating call increments the list's version in the same atomic write.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	FindByID(ctx context.Context, id string) (*domain.Shop, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Shop, error)
	List(ctx context.Context) ([]*domain.Shop, error)
	// Update applies changes. When expectedVersion is non-nil the write only
	// happens if the stored version matches, otherwise domain.ErrVersionConflict.
	Update(ctx context.Context, id string, changes ShopChanges, expectedVersion *int64) (*domain.Shop, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// PushFoods appends foodIDs to foods_in_shop in one write.
	PushFoods(ctx context.Context, id string, foodIDs []string) (*domain.Shop, error)
	// SetChecked overwrites food_checked and nb_checked together.
	SetChecked(ctx context.Context, id string, foodIDs []string) (*domain.Shop, error)
	// PullFood removes every occurrence of foodID from foods_in_shop.
	PullFood(ctx context.Context, id, foodID string) error
}
