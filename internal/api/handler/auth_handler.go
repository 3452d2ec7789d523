package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/api/metrics"
	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      592   {object}  map[string]string  "Email address already in use"
// @Router       /users/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, registerResponse{Message: "User created: " + user.Email, User: user})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "User ID"
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id := c.Param("id")

	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}
