package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route to the given roles. Must run after RequireUser.
// Insufficient rights report as 401, not 403, matching the API contract.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return errCredentials()
			}
			for _, r := range roles {
				if user.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "you are unauthorized")
		}
	}
}
