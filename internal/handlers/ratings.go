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

type RatingsHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *RatingsHandler) ListForGame(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var game models.Game
	if err := h.DB.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "game not found")
		}
		c.Logger().Errorf("list ratings: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	var rows []models.Rating
	if err := h.DB.WithContext(ctx).Where("game_id = ?", id).Order("id ASC").Find(&rows).Error; err != nil {
		c.Logger().Errorf("list ratings: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "rows": rows})
}

// Upsert records the authenticated user's score for a game, replacing any
// previous score.
func (h *RatingsHandler) Upsert(c echo.Context) error {
	user := mwauth.CurrentUser(c)

	var req struct {
		GameID uint `json:"game_id"`
		Score  int  `json:"score"`
	}
	if err := c.Bind(&req); err != nil || req.GameID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "game_id is required")
	}
	if req.Score < 1 || req.Score > 10 {
		return echo.NewHTTPError(http.StatusBadRequest, "score must be between 1 and 10")
	}

	ctx := c.Request().Context()
	var game models.Game
	if err := h.DB.WithContext(ctx).First(&game, req.GameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "game not found")
		}
		c.Logger().Errorf("rate game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to rate game")
	}

	var rating models.Rating
	err := h.DB.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", user.ID, req.GameID).
		First(&rating).Error
	switch {
	case err == nil:
		rating.Score = req.Score
		err = h.DB.WithContext(ctx).Save(&rating).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		rating = models.Rating{
			GameID:    req.GameID,
			UserID:    user.ID,
			Score:     req.Score,
			CreatedAt: time.Now().UTC(),
		}
		err = h.DB.WithContext(ctx).Create(&rating).Error
	}
	if err != nil {
		c.Logger().Errorf("rate game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to rate game")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(user.ID), map[string]any{
		"type": "game_rated", "user_id": user.ID, "game_id": req.GameID, "score": req.Score,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "rating saved successfully"})
}
