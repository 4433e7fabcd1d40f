package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Refresh exchanges a valid refresh token for a new access token and a
// rotated refresh token. Rotation keeps the original expiry.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	accessToken, refreshToken, err := h.Codec.RefreshPair(req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
