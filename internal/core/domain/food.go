package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrFoodNotFound = errors.New("food item not found")

// FoodNotFoundError names the food reference that could not be resolved,
// either a name or an id. It matches ErrFoodNotFound with errors.Is.
type FoodNotFoundError struct {
	Ref string
}

func (e *FoodNotFoundError) Error() string {
	return fmt.Sprintf("food item %q not found", e.Ref)
}

func (e *FoodNotFoundError) Unwrap() error { return ErrFoodNotFound }

// Food is an entry of the shared catalog. Names are not unique; lookups by
// name resolve to the oldest matching entry.
type Food struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
