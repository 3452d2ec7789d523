package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

type FoodService interface {
	Create(ctx context.Context, name, image string) (*domain.Food, error)
	Get(ctx context.Context, id string) (*domain.Food, error)
	List(ctx context.Context) ([]*domain.Food, error)
	Update(ctx context.Context, id string, changes FoodChanges) (*domain.Food, error)
	Delete(ctx context.Context, id string) error
}
