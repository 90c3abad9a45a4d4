// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emsdev/ems_backend/models"
)

// RequireRole checks if the authenticated user has one of the allowed roles.
// Authorization is distinct from authentication: the JWT gate has already
// run, this only compares roles and answers 403 on mismatch.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := ExtractRole(c)

			if role == "" {
				return c.JSON(http.StatusUnauthorized, models.NewError("Authentication failed: role not found"))
			}

			for _, allowed := range allowedRoles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, models.NewError("Access denied for your role"))
		}
	}
}
