package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/pkg/jwt"
)

const userContextKey = "user"

// RequireAuth resolves the acting user from a Bearer token and stores
// it on the request context. Requests without a valid token never
// reach the handler.
func RequireAuth(jwtSecret string, users *repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims, err := jwt.ParseToken(jwtSecret, tokenStr)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if !user.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "account is not activated")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}
