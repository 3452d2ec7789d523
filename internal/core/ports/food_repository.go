package ports

import (
	"context"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// FoodChanges lists the fields of a partial food update.
type FoodChanges struct {
	Name  *string
	Image *string
}

// FoodRepository defines persistence operations for the food catalog.
type FoodRepository interface {
	Create(ctx context.Context, food *domain.Food) (*domain.Food, error)
	FindByID(ctx context.Context, id string) (*domain.Food, error)
	// FindByName returns the oldest food with exactly this name.
	FindByName(ctx context.Context, name string) (*domain.Food, error)
	// FindByIDs returns the foods that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Food, error)
	List(ctx context.Context) ([]*domain.Food, error)
	Update(ctx context.Context, id string, changes FoodChanges) (*domain.Food, error)
	Delete(ctx context.Context, id string) error
}
