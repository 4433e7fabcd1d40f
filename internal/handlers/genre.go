package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/retrolabs/retrogame-api/internal/events"
	"github.com/retrolabs/retrogame-api/internal/models"
)

type GenreHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *GenreHandler) List(c echo.Context) error {
	var rows []models.Genre
	if err := h.DB.WithContext(c.Request().Context()).Order("id ASC").Find(&rows).Error; err != nil {
		c.Logger().Errorf("list genres: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rows": rows})
}

func (h *GenreHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	var existing models.Genre
	if err := h.DB.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "genre already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Errorf("create genre: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add genre")
	}

	genre := models.Genre{Name: req.Name}
	if err := h.DB.WithContext(ctx).Create(&genre).Error; err != nil {
		c.Logger().Errorf("create genre: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add genre")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(genre.ID), map[string]any{
		"type": "genre_created", "genre_id": genre.ID, "name": genre.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "genre added successfully"})
}

func (h *GenreHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	var genre models.Genre
	if err := h.DB.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "genre not found")
		}
		c.Logger().Errorf("update genre: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update genre")
	}

	genre.Name = req.Name
	if err := h.DB.WithContext(ctx).Save(&genre).Error; err != nil {
		c.Logger().Errorf("update genre: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update genre")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(genre.ID), map[string]any{
		"type": "genre_updated", "genre_id": genre.ID, "name": genre.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "genre updated successfully"})
}

func (h *GenreHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var genre models.Genre
	if err := h.DB.WithContext(ctx).First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "genre not found")
		}
		c.Logger().Errorf("delete genre: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete genre")
	}

	if err := h.DB.WithContext(ctx).Delete(&genre).Error; err != nil {
		c.Logger().Errorf("delete genre: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete genre")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(id), map[string]any{
		"type": "genre_deleted", "genre_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "genre successfully deleted"})
}
