package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

// userDetailResponse is a user with its owned lists expanded under "shops".
type userDetailResponse struct {
	*domain.User
	Shops []*domain.Shop `json:"shops"`
}

func toUserDetail(d *ports.UserDetail) userDetailResponse {
	return userDetailResponse{User: d.User, Shops: d.Shops}
}

// List returns every user with its lists.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userDetailResponse
// @Failure      500  {object}  map[string]string
// @Router       /users/allUsers [get]
func (h *UserHandler) List(c echo.Context) error {
	details, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toUserDetail(d))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one user with its lists.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	d, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserDetail(d))
}

// GetByEmail looks a user up by email address.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  map[string]string
// @Router       /users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.service.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update merges the provided fields into the caller's account.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      203   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), id, ports.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusNonAuthoritativeInfo, user)
}

// Delete removes the caller's account and every list it owns.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      202  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "User and associated shops deleted"})
}
