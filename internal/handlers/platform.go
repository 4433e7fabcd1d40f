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

type PlatformHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *PlatformHandler) List(c echo.Context) error {
	var rows []models.Platform
	if err := h.DB.WithContext(c.Request().Context()).Order("id ASC").Find(&rows).Error; err != nil {
		c.Logger().Errorf("list platforms: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rows": rows})
}

func (h *PlatformHandler) Create(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	var existing models.Platform
	if err := h.DB.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "platform already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Errorf("create platform: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add platform")
	}

	platform := models.Platform{Name: req.Name, LogoURL: req.LogoURL}
	if err := h.DB.WithContext(ctx).Create(&platform).Error; err != nil {
		c.Logger().Errorf("create platform: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add platform")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(platform.ID), map[string]any{
		"type": "platform_created", "platform_id": platform.ID, "name": platform.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "platform added successfully"})
}

func (h *PlatformHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req struct {
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	var platform models.Platform
	if err := h.DB.WithContext(ctx).First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "platform not found")
		}
		c.Logger().Errorf("update platform: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update platform")
	}

	platform.Name = req.Name
	platform.LogoURL = req.LogoURL
	if err := h.DB.WithContext(ctx).Save(&platform).Error; err != nil {
		c.Logger().Errorf("update platform: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update platform")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(platform.ID), map[string]any{
		"type": "platform_updated", "platform_id": platform.ID, "name": platform.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "platform updated successfully"})
}

func (h *PlatformHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var platform models.Platform
	if err := h.DB.WithContext(ctx).First(&platform, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "platform not found")
		}
		c.Logger().Errorf("delete platform: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete platform")
	}

	if err := h.DB.WithContext(ctx).Delete(&platform).Error; err != nil {
		c.Logger().Errorf("delete platform: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete platform")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(id), map[string]any{
		"type": "platform_deleted", "platform_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "platform successfully deleted"})
}
