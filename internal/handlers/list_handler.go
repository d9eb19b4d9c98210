package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"github.com/watchrebel/backend/internal/services"
	"gorm.io/gorm"
)

// ListHandler handles custom list HTTP requests
type ListHandler struct {
	listRepository repositories.ListRepository
	membership     *services.MembershipService
}

// NewListHandler creates a new ListHandler
func NewListHandler(listRepo repositories.ListRepository, membership *services.MembershipService) *ListHandler {
	return &ListHandler{listRepository: listRepo, membership: membership}
}

// RegisterListRoutes registers custom list routes
func (h *ListHandler) RegisterListRoutes(g *echo.Group) {
	g.GET("/lists", h.GetLists)
	g.POST("/lists", h.CreateList)
	g.GET("/lists/:id", h.GetList)
	g.PUT("/lists/:id", h.RenameList)
	g.DELETE("/lists/:id", h.DeleteList)
	g.POST("/lists/:id/items", h.AddItem)
	g.DELETE("/lists/:id/items/:item_id", h.RemoveItem)
}

// GetLists returns the caller's custom lists
func (h *ListHandler) GetLists(c echo.Context) error {
	lists, err := h.listRepository.GetListsByUser(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"lists": lists})
}

// CreateList creates a new media-kind-scoped list
func (h *ListHandler) CreateList(c echo.Context) error {
	var req models.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	list := &models.CustomList{
		UserID:    getUserIDFromContext(c),
		Name:      req.Name,
		MediaType: req.MediaType,
	}
	if err := h.listRepository.CreateList(list); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, list)
}

// GetList returns one list with its items
func (h *ListHandler) GetList(c echo.Context) error {
	list, err := h.ownedList(c)
	if err != nil {
		return err
	}
	full, err := h.listRepository.GetListWithItems(list.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, full)
}

// RenameList renames a list owned by the caller
func (h *ListHandler) RenameList(c echo.Context) error {
	list, err := h.ownedList(c)
	if err != nil {
		return err
	}

	var req models.RenameListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.listRepository.RenameList(list.ID, req.Name); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	list.Name = req.Name
	return c.JSON(http.StatusOK, list)
}

// DeleteList deletes a list and all its entries
func (h *ListHandler) DeleteList(c echo.Context) error {
	list, err := h.ownedList(c)
	if err != nil {
		return err
	}
	if err := h.listRepository.DeleteList(list.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// AddItem adds a media item through the membership enforcer
func (h *ListHandler) AddItem(c echo.Context) error {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid list ID")
	}

	var req models.AddMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.membership.AddToList(c.Request().Context(), getUserIDFromContext(c), uint(listID), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveItem deletes a list entry
func (h *ListHandler) RemoveItem(c echo.Context) error {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid list ID")
	}
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entry ID")
	}

	if err := h.membership.RemoveFromList(getUserIDFromContext(c), uint(listID), uint(itemID)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ownedList loads the list from the path and checks ownership
func (h *ListHandler) ownedList(c echo.Context) (*models.CustomList, error) {
	listID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid list ID")
	}
	list, err := h.listRepository.GetListByID(uint(listID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "List not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if list.UserID != getUserIDFromContext(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "List belongs to another user")
	}
	return list, nil
}
