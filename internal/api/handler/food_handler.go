package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/core/ports"
)

type FoodHandler struct {
	service ports.FoodService
}

func NewFoodHandler(service ports.FoodService) *FoodHandler {
	return &FoodHandler{service: service}
}

type createFoodRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

type updateFoodRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Image *string `json:"image"`
}

// Create adds a catalog entry. Names are not unique.
//
// @Summary      Create a food item
// @Tags         foods
// @Accept       json
// @Produce      json
// @Param        body  body      createFoodRequest  true  "Food item"
// @Success      201   {object}  domain.Food
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /foods [post]
func (h *FoodHandler) Create(c echo.Context) error {
	var req createFoodRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	food, err := h.service.Create(c.Request().Context(), req.Name, req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, food)
}

// List returns the whole catalog.
//
// @Summary      List food items
// @Tags         foods
// @Produce      json
// @Success      200  {array}   domain.Food
// @Router       /foods [get]
func (h *FoodHandler) List(c echo.Context) error {
	foods, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, foods)
}

// Get returns one catalog entry.
//
// @Summary      Get a food item
// @Tags         foods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Food ID"
// @Success      200  {object}  domain.Food
// @Failure      404  {object}  map[string]string
// @Router       /foods/{id} [get]
func (h *FoodHandler) Get(c echo.Context) error {
	food, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, food)
}

// Update changes the name or image of an entry.
//
// @Summary      Update a food item
// @Tags         foods
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Food ID"
// @Param        body  body      updateFoodRequest  true  "Fields to change"
// @Success      200   {object}  domain.Food
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /foods/{id} [put]
func (h *FoodHandler) Update(c echo.Context) error {
	var req updateFoodRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	food, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.FoodChanges{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, food)
}

// Delete removes an entry. Lists referencing it are left untouched.
//
// @Summary      Delete a food item
// @Tags         foods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Food ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /foods/{id} [delete]
func (h *FoodHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Food item deleted successfully"})
}
