package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/pkg/token"
)

// StatusEmailInUse is returned when registration hits an existing email.
// Existing clients match on this exact code.
const StatusEmailInUse = 592

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var foodErr *domain.FoodNotFoundError
	if errors.As(err, &foodErr) {
		return http.StatusNotFound, foodErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrFoodNotFound):
		return http.StatusNotFound, "food item not found"
	case errors.Is(err, domain.ErrShopNotFound):
		return http.StatusNotFound, "shop list not found"
	case errors.Is(err, domain.ErrImageNotFound):
		return http.StatusNotFound, "image not found"
	case errors.Is(err, domain.ErrUserExists):
		return StatusEmailInUse, "email address already in use"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "incorrect email or password"
	case errors.Is(err, token.ErrMissingToken):
		return http.StatusForbidden, "missing token"
	case errors.Is(err, token.ErrInvalidToken):
		return http.StatusForbidden, "invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "shop list was modified concurrently, reload and retry"
	case errors.Is(err, domain.ErrInvalidImageName):
		return http.StatusBadRequest, "invalid image name"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
