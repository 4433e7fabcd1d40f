package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/retrolabs/retrogame-api/internal/events"
	"github.com/retrolabs/retrogame-api/internal/hash"
	"github.com/retrolabs/retrogame-api/internal/logging"
	mwauth "github.com/retrolabs/retrogame-api/internal/middleware/auth"
	"github.com/retrolabs/retrogame-api/internal/models"
	"github.com/retrolabs/retrogame-api/internal/repo"
	"github.com/retrolabs/retrogame-api/internal/tokens"
)

type AuthHandler struct {
	Users    *repo.Users
	Codec    *tokens.Codec
	Producer *events.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username, email and password are required")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		JoinDate:     time.Now().UTC(),
	}
	if err := h.Users.Create(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "username or email already registered")
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "user registered successfully",
	})
}

// Login takes the credentials form-encoded, with the email in the username
// field (OAuth2 password-grant form shape).
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect email or password")
	}

	user, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, password) {
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect email or password")
	}

	accessToken, err := h.Codec.IssueAccess(user.Email)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	refreshToken, err := h.Codec.IssueRefresh(user.Email)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, mwauth.CurrentUser(c))
}
