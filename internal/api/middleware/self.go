package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/pkg/token"
)

// SelfOnly lets the request through only when the verified caller is the
// account named by the path parameter param. It must run after Auth.
func SelfOnly(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return token.ErrMissingToken
			}
			if claims.UserID != c.Param(param) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
