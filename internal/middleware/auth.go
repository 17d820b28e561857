package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"tyremart/internal/common"
	"tyremart/internal/services"
)

// Authenticate resolves the bearer credential into a caller identity exactly
// once per request and stores it on the request context. A missing credential
// resolves to the anonymous identity; a present but bad credential is a 401.
// Routes that must not serve anonymous callers add RequireRole on top.
func Authenticate(identitySvc services.IdentityService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bearer := ""
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				token := strings.TrimPrefix(authHeader, "Bearer ")
				if token == authHeader {
					return common.SendUnauthorizedError(c, "Invalid token format")
				}
				bearer = token
			}

			identity, err := identitySvc.Resolve(c.Request().Context(), bearer)
			if err != nil {
				if common.IsAuthError(err) {
					return common.SendUnauthorizedError(c, err.Error())
				}
				return common.SendServerError(c, "Failed to resolve identity")
			}

			ctx := common.WithIdentity(c.Request().Context(), identity)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole rejects requests whose resolved identity does not carry the
// given role.
func RequireRole(role common.CallerRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := common.IdentityFromContext(c.Request().Context())
			if identity.IsAnonymous() {
				return common.SendUnauthorizedError(c, "Authentication required")
			}
			if identity.Role != role {
				return common.SendUnauthorizedError(c, "Wrong role for this endpoint")
			}
			return next(c)
		}
	}
}
