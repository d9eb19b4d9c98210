package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
)

// FriendshipHandler handles friendship HTTP requests
type FriendshipHandler struct {
	friendshipRepository repositories.FriendshipRepository
	userRepository       repositories.UserRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipRepo repositories.FriendshipRepository, userRepo repositories.UserRepository) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository: friendshipRepo,
		userRepository:       userRepo,
	}
}

// RegisterFriendshipRoutes registers friendship routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/users/:id/friend", h.AddFriend)
	g.DELETE("/users/:id/friend", h.RemoveFriend)
	g.GET("/users/me/friends", h.GetFriends)
}

// AddFriend creates the directed edge currentUser -> target
func (h *FriendshipHandler) AddFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot befriend yourself")
	}

	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	exists, err := h.friendshipRepository.HasEdge(currentUserID, uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		return echo.NewHTTPError(http.StatusConflict, "Already friends with this user")
	}

	friend := &models.Friend{UserID: currentUserID, FriendID: uint(targetID)}
	if err := h.friendshipRepository.CreateFriend(friend); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, friend)
}

// RemoveFriend deletes the directed edge currentUser -> target
func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	deleted, err := h.friendshipRepository.DeleteFriend(currentUserID, uint(targetID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Friendship not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFriends lists the users the caller follows
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	friends, err := h.friendshipRepository.GetFriends(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	results := make([]models.UserCompact, len(friends))
	for i, u := range friends {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": results})
}
