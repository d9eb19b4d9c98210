package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
)

// AdminHandler handles moderation HTTP requests
type AdminHandler struct {
	userRepository repositories.UserRepository
	wallRepository repositories.WallRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, wallRepo repositories.WallRepository) *AdminHandler {
	return &AdminHandler{userRepository: userRepo, wallRepository: wallRepo}
}

// RegisterAdminRoutes registers moderation routes. The group is expected to
// carry the admin-only middleware.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.PUT("/users/:id/block", h.BlockUser)
	g.PUT("/users/:id/unblock", h.UnblockUser)
	g.PUT("/users/:id/post-ban", h.PostBanUser)
	g.DELETE("/users/:id/post-ban", h.ClearPostBan)
	g.DELETE("/users/:id", h.DeleteUser)
	g.DELETE("/wall/:post_id", h.DeletePost)
}

// GetUsers lists every account including moderation state
func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// BlockUser locks an account out entirely. Blocked users fail the auth
// middleware on their next request.
func (h *AdminHandler) BlockUser(c echo.Context) error {
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if target.ID == getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot block yourself")
	}

	var req models.BlockUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepository.SetBlocked(target.ID, true, req.Reason); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// UnblockUser lifts a block and clears the recorded reason
func (h *AdminHandler) UnblockUser(c echo.Context) error {
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if err := h.userRepository.SetBlocked(target.ID, false, ""); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// PostBanUser suspends posting for a fixed duration. The account stays
// readable; only wall and message writes are refused until it expires.
func (h *AdminHandler) PostBanUser(c echo.Context) error {
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}

	var req models.PostBanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	until := time.Now().Add(time.Duration(req.DurationHours) * time.Hour)
	if err := h.userRepository.SetPostBan(target.ID, &until, req.Reason); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "post_ban_until": until})
}

// ClearPostBan lifts an active posting ban early
func (h *AdminHandler) ClearPostBan(c echo.Context) error {
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if err := h.userRepository.SetPostBan(target.ID, nil, ""); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteUser removes an account with everything it owns
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if target.ID == getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete yourself")
	}
	if err := h.userRepository.DeleteUser(target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost removes any wall post regardless of author
func (h *AdminHandler) DeletePost(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	if _, err := h.wallRepository.GetPostByID(uint(postID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.wallRepository.DeletePost(uint(postID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) targetUser(c echo.Context) (*models.User, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return user, nil
}
