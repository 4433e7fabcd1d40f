package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/retrolabs/retrogame-api/internal/models"
	"github.com/retrolabs/retrogame-api/internal/repo"
	"github.com/retrolabs/retrogame-api/internal/tokens"
)

const userContextKey = "user"

// Gate turns a bearer access token into an authenticated user on the echo
// context. Every failure mode (malformed token, bad signature, expiry,
// vanished user) produces the same 401.
type Gate struct {
	Users *repo.Users
	Codec *tokens.Codec
}

func errCredentials() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
}

func (g *Gate) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return errCredentials()
		}

		claims, err := g.Codec.ParseAccess(raw)
		if err != nil {
			return errCredentials()
		}

		user, err := g.Users.FindByEmail(c.Request().Context(), claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if user == nil {
			return errCredentials()
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(userContextKey).(*models.User); ok {
		return u
	}
	return nil
}
