package domain

import (
	"errors"
	"time"
)

var (
	ErrShopNotFound    = errors.New("shop list not found")
	ErrVersionConflict = errors.New("shop list was modified concurrently")
)

// Shop is a shopping list. FoodsInShop and FoodChecked hold food ids;
// NbChecked always mirrors len(FoodChecked) and is never set on its own.
type Shop struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FoodsInShop []string  `json:"foods_in_shop"`
	FoodChecked []string  `json:"food_checked"`
	NbChecked   int       `json:"nb_checked"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewShop returns an empty list ready to be persisted.
func NewShop(name string, now time.Time) *Shop {
	return &Shop{
		Name:        name,
		FoodsInShop: []string{},
		FoodChecked: []string{},
		CreatedAt:   now,
	}
}

// ReplaceChecked swaps the checked set and recomputes the derived count.
func (s *Shop) ReplaceChecked(foodIDs []string) {
	s.FoodChecked = append([]string{}, foodIDs...)
	s.NbChecked = len(s.FoodChecked)
}
