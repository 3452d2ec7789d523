package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/api/middleware"
	"github.com/chouchef/chouchef-api/internal/pkg/token"
)

// callerID returns the verified user id injected by the Auth middleware.
func callerID(c echo.Context) (string, error) {
	claims := middleware.Claims(c)
	if claims == nil || claims.UserID == "" {
		return "", token.ErrMissingToken
	}
	return claims.UserID, nil
}

type messageResponse struct {
	Message string `json:"message"`
}
