package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/retrolabs/retrogame-api/internal/service/search"
	"github.com/retrolabs/retrogame-api/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	if h.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, games, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		c.Logger().Errorf("search games: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "an error occurred")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": total, "rows": games})
}
