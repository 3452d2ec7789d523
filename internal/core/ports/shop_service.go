package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// ShopDetail is a list with its foods_in_shop references expanded. Foods
// that no longer exist in the catalog are left out of Foods.
type ShopDetail struct {
	Shop  *domain.Shop
	Foods []*domain.Food
}

// UpdateShopInput carries a direct list update. Version, when set, makes the
// write conditional on the stored version.
type UpdateShopInput struct {
	Name        *string
	FoodsInShop *[]string
	FoodChecked *[]string
	Version     *int64
}

// ShopService covers list storage and reconciliation against the food catalog.
type ShopService interface {
	Create(ctx context.Context, ownerID, name string) (*domain.Shop, error)
	Get(ctx context.Context, id string) (*ShopDetail, error)
	List(ctx context.Context) ([]*ShopDetail, error)
	Update(ctx context.Context, id string, input UpdateShopInput) (*domain.Shop, error)
	Delete(ctx context.Context, id string) error

	AddFoodsByName(ctx context.Context, shopID string, names []string) (*domain.Shop, error)
	SetChecked(ctx context.Context, shopID string, foodIDs []string) (*domain.Shop, error)
	RemoveFood(ctx context.Context, shopID, foodID string) error
}
