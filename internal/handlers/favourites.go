package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/retrolabs/retrogame-api/internal/events"
	mwauth "github.com/retrolabs/retrogame-api/internal/middleware/auth"
	"github.com/retrolabs/retrogame-api/internal/models"
)

// FavouritesHandler operates on the authenticated user's own favourites only.
type FavouritesHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *FavouritesHandler) List(c echo.Context) error {
	user := mwauth.CurrentUser(c)

	var rows []models.Favourite
	if err := h.DB.WithContext(c.Request().Context()).
		Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		c.Logger().Errorf("list favourites: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "rows": rows})
}

func (h *FavouritesHandler) Create(c echo.Context) error {
	user := mwauth.CurrentUser(c)

	var req struct {
		GameID uint `json:"game_id"`
	}
	if err := c.Bind(&req); err != nil || req.GameID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "game_id is required")
	}

	ctx := c.Request().Context()
	var game models.Game
	if err := h.DB.WithContext(ctx).First(&game, req.GameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "game not found")
		}
		c.Logger().Errorf("add favourite: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add favourite")
	}

	var existing models.Favourite
	err := h.DB.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", user.ID, req.GameID).
		First(&existing).Error
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "favourite already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Errorf("add favourite: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add favourite")
	}

	fav := models.Favourite{
		UserID:    user.ID,
		GameID:    req.GameID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.DB.WithContext(ctx).Create(&fav).Error; err != nil {
		c.Logger().Errorf("add favourite: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add favourite")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(user.ID), map[string]any{
		"type": "favourite_added", "user_id": user.ID, "game_id": req.GameID,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "favourite added successfully"})
}

func (h *FavouritesHandler) Delete(c echo.Context) error {
	user := mwauth.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var fav models.Favourite
	if err := h.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "favourite not found")
		}
		c.Logger().Errorf("delete favourite: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete favourite")
	}

	if err := h.DB.WithContext(ctx).Delete(&fav).Error; err != nil {
		c.Logger().Errorf("delete favourite: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete favourite")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(user.ID), map[string]any{
		"type": "favourite_removed", "user_id": user.ID, "game_id": fav.GameID,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "favourite successfully deleted"})
}
