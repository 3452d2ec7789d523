package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// ShopService stores shopping lists and reconciles their membership and
// checked sets against the food catalog.
type ShopService struct {
	shops ports.ShopRepository
	foods ports.FoodRepository
	users ports.UserRepository
	log   zerolog.Logger
	now   func() time.Time
}

func NewShopService(shops ports.ShopRepository, foods ports.FoodRepository, users ports.UserRepository, log zerolog.Logger) *ShopService {
	return &ShopService{shops: shops, foods: foods, users: users, log: log, now: time.Now}
}

// Create inserts an empty list and attaches it to ownerID. When attaching
// fails the list is removed again.
func (s *ShopService) Create(ctx context.Context, ownerID, name string) (*domain.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	shop, err := s.shops.Create(ctx, domain.NewShop(name, s.now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("create shop: %w", err)
	}

	if err := s.users.AttachShop(ctx, ownerID, shop.ID); err != nil {
		if delErr := s.shops.Delete(ctx, shop.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("shop_id", shop.ID).Msg("failed to remove unattached shop")
		}
		return nil, fmt.Errorf("attach shop to user: %w", err)
	}

	s.log.Info().Str("shop_id", shop.ID).Str("user_id", ownerID).Msg("shop created")
	return shop, nil
}

func (s *ShopService) Get(ctx context.Context, id string) (*ports.ShopDetail, error) {
	shop, err := s.shops.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, shop)
}

func (s *ShopService) List(ctx context.Context) ([]*ports.ShopDetail, error) {
	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}

	out := make([]*ports.ShopDetail, 0, len(shops))
	for _, shop := range shops {
		d, err := s.expand(ctx, shop)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Update applies a direct edit. Every referenced food id must exist, and
// nb_checked follows food_checked in the same write.
func (s *ShopService) Update(ctx context.Context, id string, in ports.UpdateShopInput) (*domain.Shop, error) {
	var changes ports.ShopChanges

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
		}
		changes.Name = &name
	}
	if in.FoodsInShop != nil {
		if err := s.requireFoods(ctx, *in.FoodsInShop); err != nil {
			return nil, err
		}
		changes.FoodsInShop = in.FoodsInShop
	}
	if in.FoodChecked != nil {
		if err := s.requireFoods(ctx, *in.FoodChecked); err != nil {
			return nil, err
		}
		changes.FoodChecked = in.FoodChecked
	}

	shop, err := s.shops.Update(ctx, id, changes, in.Version)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("shop_id", id).Int64("version", shop.Version).Msg("shop updated")
	return shop, nil
}

// Delete removes the list and its id from any owner.
func (s *ShopService) Delete(ctx context.Context, id string) error {
	if err := s.shops.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.users.DetachShop(ctx, id); err != nil {
		s.log.Error().Err(err).Str("shop_id", id).Msg("failed to detach deleted shop from owner")
		return fmt.Errorf("detach shop: %w", err)
	}

	s.log.Info().Str("shop_id", id).Msg("shop deleted")
	return nil
}

// expand resolves foods_in_shop in list order. Duplicated references are
// repeated and references to deleted foods are skipped.
func (s *ShopService) expand(ctx context.Context, shop *domain.Shop) (*ports.ShopDetail, error) {
	d := &ports.ShopDetail{Shop: shop, Foods: []*domain.Food{}}
	if len(shop.FoodsInShop) == 0 {
		return d, nil
	}

	byID, err := s.foodsByID(ctx, shop.FoodsInShop)
	if err != nil {
		return nil, err
	}
	for _, id := range shop.FoodsInShop {
		if food, ok := byID[id]; ok {
			d.Foods = append(d.Foods, food)
		}
	}
	return d, nil
}

// requireFoods fails with a FoodNotFoundError naming the first id in ids
// that is not in the catalog.
func (s *ShopService) requireFoods(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	byID, err := s.foodsByID(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return &domain.FoodNotFoundError{Ref: id}
		}
	}
	return nil
}

func (s *ShopService) foodsByID(ctx context.Context, ids []string) (map[string]*domain.Food, error) {
	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load foods: %w", err)
	}

	byID := make(map[string]*domain.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}
	return byID, nil
}

func (s *ShopService) resolveName(ctx context.Context, name string) (*domain.Food, error) {
	food, err := s.foods.FindByName(ctx, name)
	if errors.Is(err, domain.ErrFoodNotFound) {
		return nil, &domain.FoodNotFoundError{Ref: name}
	}
	if err != nil {
		return nil, fmt.Errorf("find food %q: %w", name, err)
	}
	return food, nil
}
