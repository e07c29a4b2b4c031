package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"officetrack/internal/auth"
	apperrors "officetrack/internal/errors"
)

// SessionGuard rejects tokens that were revoked by logout. The JWT middleware
// has already verified the signature by the time this runs.
func SessionGuard(store auth.SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apperrors.Error("not authenticated"))
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apperrors.Error("not authenticated"))
			}
			if revoked, _ := store.IsSessionBlacklisted(c.Request().Context(), claims.ID); revoked {
				return c.JSON(http.StatusUnauthorized, apperrors.Error("session revoked"))
			}
			return next(c)
		}
	}
}

// RequireRole allows the request through only when the session role is one of
// the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apperrors.Error("not authenticated"))
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, apperrors.Error("not authenticated"))
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, apperrors.Forbidden())
		}
	}
}
