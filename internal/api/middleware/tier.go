package middleware

import (
	"net/http"

	"brandbase/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireFeature gates a route group on the caller's subscription tier. The
// web UI hides navigation for inaccessible feature areas, but the check is
// enforced here too so direct API calls cannot bypass the plan.
func RequireFeature(feature models.Feature) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tier := models.Tier(GetUserTier(c))
			if !models.Accessible(tier, feature) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Upgrade required"})
			}
			return next(c)
		}
	}
}

// RequireAdmin guards the admin surface. The observed check is role-based OR
// tier-based: enterprise accounts see the admin area even without the admin
// role.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetUserRole(c) == string(models.UserRoleAdmin) || GetUserTier(c) == string(models.TierEnterprise) {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden"})
		}
	}
}
