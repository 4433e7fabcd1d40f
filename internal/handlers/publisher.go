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

type PublisherHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

func (h *PublisherHandler) List(c echo.Context) error {
	var rows []models.Publisher
	if err := h.DB.WithContext(c.Request().Context()).Order("id ASC").Find(&rows).Error; err != nil {
		c.Logger().Errorf("list publishers: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "rows": rows})
}

func (h *PublisherHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()
	var existing models.Publisher
	if err := h.DB.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "publisher already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Errorf("create publisher: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add publisher")
	}

	publisher := models.Publisher{Name: req.Name}
	if err := h.DB.WithContext(ctx).Create(&publisher).Error; err != nil {
		c.Logger().Errorf("create publisher: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add publisher")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(publisher.ID), map[string]any{
		"type": "publisher_created", "publisher_id": publisher.ID, "name": publisher.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "publisher added successfully"})
}

func (h *PublisherHandler) Update(c echo.Context) error {
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
	var publisher models.Publisher
	if err := h.DB.WithContext(ctx).First(&publisher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "publisher not found")
		}
		c.Logger().Errorf("update publisher: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update publisher")
	}

	publisher.Name = req.Name
	if err := h.DB.WithContext(ctx).Save(&publisher).Error; err != nil {
		c.Logger().Errorf("update publisher: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update publisher")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(publisher.ID), map[string]any{
		"type": "publisher_updated", "publisher_id": publisher.ID, "name": publisher.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "publisher updated successfully"})
}

func (h *PublisherHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var publisher models.Publisher
	if err := h.DB.WithContext(ctx).First(&publisher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "publisher not found")
		}
		c.Logger().Errorf("delete publisher: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete publisher")
	}

	if err := h.DB.WithContext(ctx).Delete(&publisher).Error; err != nil {
		c.Logger().Errorf("delete publisher: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete publisher")
	}

	publish(c, h.Producer, events.TopicCatalogueEvents, fmt.Sprint(id), map[string]any{
		"type": "publisher_deleted", "publisher_id": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "publisher successfully deleted"})
}
