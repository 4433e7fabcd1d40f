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

type DeveloperHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *DeveloperHandler) List(c echo.Context) error {
	var rows []models.Developer
	if err := h.DB.WithContext(c.Request().Context()).Order("id ASC").Find(&rows).Error; err != nil {
		c.Logger().Errorf("list developers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rows": rows})
}

func (h *DeveloperHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	var existing models.Developer
	if err := h.DB.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "developer already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Errorf("create developer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add developer")
	}

	developer := models.Developer{Name: req.Name}
	if err := h.DB.WithContext(ctx).Create(&developer).Error; err != nil {
		c.Logger().Errorf("create developer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add developer")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(developer.ID), map[string]any{
		"type": "developer_created", "developer_id": developer.ID, "name": developer.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "developer added successfully"})
}

func (h *DeveloperHandler) Update(c echo.Context) error {
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
	var developer models.Developer
	if err := h.DB.WithContext(ctx).First(&developer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "developer not found")
		}
		c.Logger().Errorf("update developer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update developer")
	}

	developer.Name = req.Name
	if err := h.DB.WithContext(ctx).Save(&developer).Error; err != nil {
		c.Logger().Errorf("update developer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update developer")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(developer.ID), map[string]any{
		"type": "developer_updated", "developer_id": developer.ID, "name": developer.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "developer updated successfully"})
}

func (h *DeveloperHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var developer models.Developer
	if err := h.DB.WithContext(ctx).First(&developer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "developer not found")
		}
		c.Logger().Errorf("delete developer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete developer")
	}

	if err := h.DB.WithContext(ctx).Delete(&developer).Error; err != nil {
		c.Logger().Errorf("delete developer: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete developer")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(id), map[string]any{
		"type": "developer_deleted", "developer_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "developer successfully deleted"})
}
