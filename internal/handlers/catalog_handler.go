package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/pkg/tmdb"
)

// CatalogHandler proxies catalog lookups to TMDb
type CatalogHandler struct {
	tmdbClient *tmdb.Client
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(tmdbClient *tmdb.Client) *CatalogHandler {
	return &CatalogHandler{tmdbClient: tmdbClient}
}

// RegisterCatalogRoutes registers catalog proxy routes
func (h *CatalogHandler) RegisterCatalogRoutes(g *echo.Group) {
	g.GET("/catalog/search", h.Search)
	g.GET("/catalog/:media_type/:media_id", h.GetDetails)
}

// Search proxies a free-text catalog search
func (h *CatalogHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query is required")
	}
	mediaType := c.QueryParam("media_type")
	if mediaType == "" {
		mediaType = models.MediaTypeMovie
	}
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeSeries {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media type")
	}

	results, err := h.tmdbClient.Search(c.Request().Context(), mediaType, query)
	if err != nil {
		return respondError(c, apperror.Upstream("catalog search failed: "+err.Error()))
	}
	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

// GetDetails proxies a catalog item lookup
func (h *CatalogHandler) GetDetails(c echo.Context) error {
	mediaType := c.Param("media_type")
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeSeries {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media type")
	}
	mediaID, err := strconv.Atoi(c.Param("media_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	details, err := h.tmdbClient.GetDetails(c.Request().Context(), mediaType, mediaID)
	if err != nil {
		return respondError(c, apperror.Upstream("catalog lookup failed: "+err.Error()))
	}
	return c.JSON(http.StatusOK, details)
}
