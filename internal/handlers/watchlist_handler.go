package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"github.com/watchrebel/backend/internal/services"
)

// WatchlistHandler handles watchlist HTTP requests
type WatchlistHandler struct {
	listRepository repositories.ListRepository
	membership     *services.MembershipService
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(listRepo repositories.ListRepository, membership *services.MembershipService) *WatchlistHandler {
	return &WatchlistHandler{listRepository: listRepo, membership: membership}
}

// RegisterWatchlistRoutes registers watchlist routes
func (h *WatchlistHandler) RegisterWatchlistRoutes(g *echo.Group) {
	g.GET("/watchlist", h.GetWatchlist)
	g.POST("/watchlist", h.AddToWatchlist)
	g.DELETE("/watchlist/:id", h.RemoveFromWatchlist)
}

// GetWatchlist returns the caller's watchlist
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	items, err := h.listRepository.GetWatchlist(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AddToWatchlist adds a media item to the caller's watchlist
func (h *WatchlistHandler) AddToWatchlist(c echo.Context) error {
	var req models.AddMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.membership.AddToWatchlist(getUserIDFromContext(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveFromWatchlist deletes a watchlist entry owned by the caller
func (h *WatchlistHandler) RemoveFromWatchlist(c echo.Context) error {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entry ID")
	}
	if err := h.membership.RemoveFromWatchlist(getUserIDFromContext(c), uint(itemID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
