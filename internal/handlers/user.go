package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateMe)
	g.GET("/users/me/notification-settings", h.GetNotificationSettings)
	g.PUT("/users/me/notification-settings", h.UpdateNotificationSettings)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
}

// GetMe returns the authenticated user's profile
func (h *UserHandler) GetMe(c echo.Context) error {
	return c.JSON(http.StatusOK, getUserFromContext(c))
}

// UpdateMe applies self-service profile edits
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user := getUserFromContext(c)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.WallPrivacy != "" {
		user.WallPrivacy = req.WallPrivacy
	}
	if req.TelegramChatID != "" {
		user.TelegramChatID = req.TelegramChatID
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns a public profile by id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":           user.ID,
		"name":         user.Name,
		"avatar_url":   user.AvatarURL,
		"bio":          user.Bio,
		"wall_privacy": user.WallPrivacy,
	})
}

// SearchUsers searches users by name or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing search query")
	}
	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	results := make([]models.UserCompact, len(users))
	for i, u := range users {
		results[i] = u.ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"users": results})
}

// GetNotificationSettings returns the caller's notification preference set
func (h *UserHandler) GetNotificationSettings(c echo.Context) error {
	settings, err := h.userRepository.GetSettings(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettings applies partial preference updates
func (h *UserHandler) UpdateNotificationSettings(c echo.Context) error {
	var req models.UpdateNotificationSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	settings, err := h.userRepository.GetSettings(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.FriendAddedToList != nil {
		settings.FriendAddedToList = *req.FriendAddedToList
	}
	if req.FriendRatedMedia != nil {
		settings.FriendRatedMedia = *req.FriendRatedMedia
	}
	if req.FriendPostedReview != nil {
		settings.FriendPostedReview = *req.FriendPostedReview
	}
	if req.Reactions != nil {
		settings.Reactions = *req.Reactions
	}
	if req.WallPosts != nil {
		settings.WallPosts = *req.WallPosts
	}

	if err := h.userRepository.SaveSettings(settings); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, settings)
}
