package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/retrolabs/retrogame-api/internal/es"
	"github.com/retrolabs/retrogame-api/internal/events"
	"github.com/retrolabs/retrogame-api/internal/models"
	"github.com/retrolabs/retrogame-api/internal/service/search"
	"github.com/retrolabs/retrogame-api/internal/util"
)

type GameHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
	ES       *elasticsearch.Client
}

type gameRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseYear int    `json:"release_year"`
	GenreID     uint   `json:"genre_id"`
	PlatformID  uint   `json:"platform_id"`
	PublisherID uint   `json:"publisher_id"`
	DeveloperID uint   `json:"developer_id"`
	ImageURL    string `json:"image_url"`
}

func (r *gameRequest) validate() error {
	if r.Title == "" || r.Description == "" || r.ReleaseYear == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "title, description and release_year are required")
	}
	if r.GenreID == 0 || r.PlatformID == 0 || r.PublisherID == 0 || r.DeveloperID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "genre_id, platform_id, publisher_id and developer_id are required")
	}
	return nil
}

func (h *GameHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	ctx := c.Request().Context()
	var total int64
	if err := h.DB.WithContext(ctx).Model(&models.Game{}).Count(&total).Error; err != nil {
		c.Logger().Errorf("list games: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	var rows []models.Game
	if err := h.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		c.Logger().Errorf("list games: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"rows":    rows,
		"meta": echo.Map{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *GameHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var game models.Game
	if err := h.DB.WithContext(c.Request().Context()).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "game not found")
		}
		c.Logger().Errorf("get game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "game": game})
}

func (h *GameHandler) Create(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	ctx := c.Request().Context()
	game := models.Game{
		Title:       req.Title,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		GenreID:     req.GenreID,
		PlatformID:  req.PlatformID,
		PublisherID: req.PublisherID,
		DeveloperID: req.DeveloperID,
		ImageURL:    req.ImageURL,
	}
	if err := h.DB.WithContext(ctx).Create(&game).Error; err != nil {
		c.Logger().Errorf("create game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add game")
	}

	h.syncIndex(c, &game)
	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(game.ID), map[string]any{
		"type": "game_created", "game_id": game.ID, "title": game.Title,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "game added successfully", "game": game})
}

func (h *GameHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	ctx := c.Request().Context()
	var game models.Game
	if err := h.DB.WithContext(ctx).First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "game not found")
		}
		c.Logger().Errorf("update game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update game")
	}

	game.Title = req.Title
	game.Description = req.Description
	game.ReleaseYear = req.ReleaseYear
	game.GenreID = req.GenreID
	game.PlatformID = req.PlatformID
	game.PublisherID = req.PublisherID
	game.DeveloperID = req.DeveloperID
	game.ImageURL = req.ImageURL
	if err := h.DB.WithContext(ctx).Save(&game).Error; err != nil {
		c.Logger().Errorf("update game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update game")
	}

	h.syncIndex(c, &game)
	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(game.ID), map[string]any{
		"type": "game_updated", "game_id": game.ID, "title": game.Title,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "game updated successfully"})
}

func (h *GameHandler) Delete(c echo.Context) error {
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
		c.Logger().Errorf("delete game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete game")
	}

	if err := h.DB.WithContext(ctx).Delete(&game).Error; err != nil {
		c.Logger().Errorf("delete game: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete game")
	}

	if h.ES != nil {
		if err := search.DeleteGame(ctx, h.ES, es.GameIndex, id); err != nil {
			c.Logger().Errorf("es delete error: %v", err)
		}
	}
	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(id), map[string]any{
		"type": "game_deleted", "game_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "game successfully deleted"})
}

// syncIndex mirrors a game into the search index best-effort.
func (h *GameHandler) syncIndex(c echo.Context, game *models.Game) {
	if h.ES == nil {
		return
	}
	if err := search.IndexGame(c.Request().Context(), h.ES, es.GameIndex, game); err != nil {
		c.Logger().Errorf("es index error: %v", err)
	}
}
