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

type FoodService struct {
	repo ports.FoodRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewFoodService(repo ports.FoodRepository, log zerolog.Logger) *FoodService {
	return &FoodService{repo: repo, log: log, now: time.Now}
}

func (s *FoodService) Create(ctx context.Context, name, image string) (*domain.Food, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	food, err := s.repo.Create(ctx, &domain.Food{
		Name:      name,
		Image:     strings.TrimSpace(image),
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}

	s.log.Info().Str("food_id", food.ID).Str("name", food.Name).Msg("food created")
	return food, nil
}

func (s *FoodService) Get(ctx context.Context, id string) (*domain.Food, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FoodService) List(ctx context.Context) ([]*domain.Food, error) {
	foods, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

func (s *FoodService) Update(ctx context.Context, id string, changes ports.FoodChanges) (*domain.Food, error) {
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		changes.Name = &name
	}
	return s.repo.Update(ctx, id, changes)
}

// Delete removes the catalog entry only. Lists still referencing it keep the
// dangling id, which read paths skip when expanding.
func (s *FoodService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("food_id", id).Msg("food deleted")
	return nil
}
