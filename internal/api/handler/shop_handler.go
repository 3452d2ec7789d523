package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/api/metrics"
	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

// ShopHandler serves shopping lists and their reconciliation endpoints.
type ShopHandler struct {
	service ports.ShopService
}

func NewShopHandler(service ports.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

type createShopRequest struct {
	Name string `json:"name" validate:"required"`
}

// updateShopRequest has no nb_checked field: the count is always derived.
type updateShopRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1"`
	FoodsInShop *[]string `json:"foods_in_shop"`
	FoodChecked *[]string `json:"food_checked"`
	Version     *int64    `json:"version" validate:"omitempty,gte=0"`
}

type addFoodsRequest struct {
	FoodNames []string `json:"foodNames" validate:"required,min=1,dive,required"`
}

type checkedRequest struct {
	FoodChecked []string `json:"food_checked" validate:"required"`
}

// shopDetailResponse renders foods_in_shop as full food records.
type shopDetailResponse struct {
	*domain.Shop
	FoodsInShop []*domain.Food `json:"foods_in_shop"`
}

func toShopDetail(d *ports.ShopDetail) shopDetailResponse {
	return shopDetailResponse{Shop: d.Shop, FoodsInShop: d.Foods}
}

// Create makes a new list owned by the caller. On /shops/{userId} the path
// must name the caller.
//
// @Summary      Create a shopping list
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string             false  "Owner ID, must be the caller"
// @Param        body    body      createShopRequest  true   "List name"
// @Success      201     {object}  domain.Shop
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /shops [post]
// @Router       /shops/{userId} [post]
func (h *ShopHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return err
	}

	var req createShopRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shop, err := h.service.Create(c.Request().Context(), owner, req.Name)
	if err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, shop)
}

// List returns every list with its foods expanded.
//
// @Summary      List shopping lists
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   shopDetailResponse
// @Router       /shops [get]
func (h *ShopHandler) List(c echo.Context) error {
	details, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]shopDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toShopDetail(d))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one list with its foods expanded.
//
// @Summary      Get a shopping list
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "List ID"
// @Success      200  {object}  shopDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /shops/{id} [get]
func (h *ShopHandler) Get(c echo.Context) error {
	d, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShopDetail(d))
}

// Update edits a list directly. Sending the last seen version makes the
// write conditional.
//
// @Summary      Update a shopping list
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "List ID"
// @Param        body  body      updateShopRequest  true  "Fields to change"
// @Success      200   {object}  domain.Shop
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /shops/{id} [put]
func (h *ShopHandler) Update(c echo.Context) error {
	var req updateShopRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shop, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateShopInput{
		Name:        req.Name,
		FoodsInShop: req.FoodsInShop,
		FoodChecked: req.FoodChecked,
		Version:     req.Version,
	})
	if errors.Is(err, domain.ErrVersionConflict) {
		metrics.ShopVersionConflictsTotal.Inc()
	}
	if err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, shop)
}

// Delete removes a list and detaches it from its owner.
//
// @Summary      Delete a shopping list
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "List ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /shops/{id} [delete]
func (h *ShopHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Shop list deleted successfully"})
}

// AddFoods appends catalog foods by name. Nothing is added unless every
// name resolves.
//
// @Summary      Add foods to a list by name
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shopId  path      string           true  "List ID"
// @Param        body    body      addFoodsRequest  true  "Food names"
// @Success      200     {object}  domain.Shop
// @Failure      404     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /shops/{shopId}/add-foods [post]
func (h *ShopHandler) AddFoods(c echo.Context) error {
	var req addFoodsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shop, err := h.service.AddFoodsByName(c.Request().Context(), c.Param("shopId"), req.FoodNames)
	if err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("add_foods").Inc()
	return c.JSON(http.StatusOK, shop)
}

// CheckItems replaces the checked set after validating every id.
//
// @Summary      Set checked items
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "List ID"
// @Param        body  body      checkedRequest  true  "Checked food ids"
// @Success      200   {object}  domain.Shop
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /shops/{id}/check-item [put]
func (h *ShopHandler) CheckItems(c echo.Context) error {
	var req checkedRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shop, err := h.service.SetChecked(c.Request().Context(), c.Param("id"), req.FoodChecked)
	if err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("set_checked").Inc()
	return c.JSON(http.StatusOK, shop)
}

// ReplaceChecked is the legacy form of CheckItems. It shares the same
// validation and answers with a message instead of the list.
//
// @Summary      Replace checked items
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        listId  path      string          true  "List ID"
// @Param        body    body      checkedRequest  true  "Checked food ids"
// @Success      200     {object}  messageResponse
// @Failure      404     {object}  map[string]string
// @Router       /shops/{listId}/food_checked [put]
func (h *ShopHandler) ReplaceChecked(c echo.Context) error {
	var req checkedRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if _, err := h.service.SetChecked(c.Request().Context(), c.Param("listId"), req.FoodChecked); err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("set_checked").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "food_checked updated successfully"})
}

// RemoveFood drops a food from the list. Removing an absent food succeeds.
//
// @Summary      Remove a food from a list
// @Tags         shops
// @Security     BearerAuth
// @Param        listId  path  string  true  "List ID"
// @Param        foodId  path  string  true  "Food ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /shops/{listId}/foods_in_shop/{foodId} [delete]
func (h *ShopHandler) RemoveFood(c echo.Context) error {
	if err := h.service.RemoveFood(c.Request().Context(), c.Param("listId"), c.Param("foodId")); err != nil {
		return err
	}

	metrics.ShopMutationsTotal.WithLabelValues("remove_food").Inc()
	return c.NoContent(http.StatusNoContent)
}
