package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chouchef/chouchef-api/internal/api/metrics"
	"github.com/chouchef/chouchef-api/internal/core/ports"
	"github.com/chouchef/chouchef-api/internal/pkg/token"
)

// ClaimsKey is the echo context key holding the verified *token.Claims.
const ClaimsKey = "claims"

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth verifies the bearer token, rejects tokens issued before the user's
// last revocation and injects the claims into the context.
// The header may carry the token raw or with a "Bearer " prefix.
func Auth(verifier TokenVerifier, revocations ports.TokenRevoker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := token.FromHeader(c.Request().Header.Get(echo.HeaderAuthorization))

			claims, err := verifier.Verify(raw)
			if err != nil {
				if errors.Is(err, token.ErrMissingToken) {
					metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				} else {
					metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
					logRejected(log, c, raw)
				}
				return err
			}

			if revoked(c, revocations, claims, log) {
				metrics.AuthRejectionsTotal.WithLabelValues("revoked").Inc()
				return token.ErrInvalidToken
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// revoked reports whether claims predate the user's revocation marker.
// Lookup failures let the request through.
func revoked(c echo.Context, revocations ports.TokenRevoker, claims *token.Claims, log zerolog.Logger) bool {
	if revocations == nil {
		return false
	}

	at, ok, err := revocations.RevokedSince(c.Request().Context(), claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("revocation check failed, accepting token")
		return false
	}
	if !ok {
		return false
	}
	if claims.IssuedAt == nil {
		return true
	}
	return claims.IssuedAt.Unix() < at.Unix()
}

// logRejected records who a refused token claims to be. The payload is not
// trusted and the token itself is never logged.
func logRejected(log zerolog.Logger, c echo.Context, raw string) {
	ev := log.Debug().Str("path", c.Path()).Str("remote_ip", c.RealIP())
	if claims, err := token.DecodeUnverified(raw); err == nil {
		ev = ev.Str("claimed_user_id", claims.UserID)
	}
	ev.Msg("token rejected")
}

// Claims returns the verified claims stored by Auth, or nil.
func Claims(c echo.Context) *token.Claims {
	claims, _ := c.Get(ClaimsKey).(*token.Claims)
	return claims
}
