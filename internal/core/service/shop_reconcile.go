package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/chouchef/chouchef-api/internal/core/domain"
)

// AddFoodsByName resolves every name against the catalog before touching the
// list. Names are matched exactly as given. One unknown name aborts the call with the list unchanged; otherwise
// all resolved ids are appended in a single write.
func (s *ShopService) AddFoodsByName(ctx context.Context, shopID string, names []string) (*domain.Shop, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one food name is required", domain.ErrInvalidInput)
	}

	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: food names cannot be empty", domain.ErrInvalidInput)
		}
		food, err := s.resolveName(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, food.ID)
	}

	shop, err := s.shops.PushFoods(ctx, shopID, ids)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("shop_id", shopID).Int("added", len(ids)).Msg("foods added to shop")
	return shop, nil
}

// SetChecked replaces the checked set after validating every id. nb_checked
// is written together with the set.
func (s *ShopService) SetChecked(ctx context.Context, shopID string, foodIDs []string) (*domain.Shop, error) {
	if foodIDs == nil {
		foodIDs = []string{}
	}

	if _, err := s.shops.FindByID(ctx, shopID); err != nil {
		return nil, err
	}

	if err := s.requireFoods(ctx, foodIDs); err != nil {
		return nil, err
	}

	shop, err := s.shops.SetChecked(ctx, shopID, foodIDs)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("shop_id", shopID).Int("nb_checked", shop.NbChecked).Msg("shop checked items replaced")
	return shop, nil
}

// RemoveFood drops every occurrence of foodID from the list. Removing an
// absent id succeeds.
func (s *ShopService) RemoveFood(ctx context.Context, shopID, foodID string) error {
	if err := s.shops.PullFood(ctx, shopID, foodID); err != nil {
		return err
	}
	s.log.Info().Str("shop_id", shopID).Str("food_id", foodID).Msg("food removed from shop")
	return nil
}
