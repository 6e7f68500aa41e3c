package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// MsgAdminRequired is returned when a non-admin reaches an admin route.
const MsgAdminRequired = "Unauthorized: Admin access required"

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  It must run after
// Authenticate; a missing role counts as a mismatch.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ctxRole).(string)
			if !allowed[role] {
				return apperror.New(apperror.CodeForbidden, MsgAdminRequired)
			}
			return next(c)
		}
	}
}

// RequireAdmin is RequireRole(model.RoleAdmin).
func RequireAdmin() echo.MiddlewareFunc { return RequireRole(model.RoleAdmin) }
