package middleware

import (
	"net/http"
	"strings"

	"brandbase/internal/db"
	"brandbase/internal/models"
	"brandbase/internal/utils"

	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// Middleware authenticates the bearer token and reloads the user row so the
// request context always carries the current tier and role, not the ones
// frozen into the token at login. A tier change made by the payment webhook
// therefore takes effect on the next request, without re-login.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			claims, err := utils.ParseJWT(tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			user := &models.User{}
			if err := db.DB.Where("id = ?", claims.UserID).First(user).Error; err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}

			c.Set("userID", user.ID)
			c.Set("email", user.Email)
			c.Set("role", string(user.Role))
			c.Set("tier", string(user.Tier))

			return next(c)
		}
	}
}

// GetUserID Helper functions to get values from context
func GetUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func GetUserRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}

func GetUserTier(c echo.Context) string {
	if tier, ok := c.Get("tier").(string); ok {
		return tier
	}
	return ""
}
