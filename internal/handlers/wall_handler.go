package handlers

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"github.com/watchrebel/backend/internal/services"
	"gorm.io/gorm"
)

// WallHandler handles wall post HTTP requests
type WallHandler struct {
	wallRepository repositories.WallRepository
	userRepository repositories.UserRepository
	gate           *services.WallGate
	fanout         *services.FanoutNotifier
	editWindow     time.Duration
}

// NewWallHandler creates a new WallHandler
func NewWallHandler(wallRepo repositories.WallRepository, userRepo repositories.UserRepository, gate *services.WallGate, fanout *services.FanoutNotifier, editWindow time.Duration) *WallHandler {
	return &WallHandler{
		wallRepository: wallRepo,
		userRepository: userRepo,
		gate:           gate,
		fanout:         fanout,
		editWindow:     editWindow,
	}
}

// RegisterWallRoutes registers wall routes
func (h *WallHandler) RegisterWallRoutes(g *echo.Group) {
	g.GET("/users/:id/wall", h.GetWall)
	g.POST("/users/:id/wall", h.CreatePost)
	g.PUT("/wall/:post_id", h.UpdatePost)
	g.DELETE("/wall/:post_id", h.DeletePost)
}

// GetWall returns a wall's posts, newest first
func (h *WallHandler) GetWall(c echo.Context) error {
	wallOwnerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if _, err := h.userRepository.GetUserByID(uint(wallOwnerID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	page, limit := parsePagination(c)
	posts, total, err := h.wallRepository.GetWall(uint(wallOwnerID), page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts":       posts,
		"total":       total,
		"page":        page,
		"total_pages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

// CreatePost writes a post to a wall after the privacy gate admits the
// actor. Foreign posts notify the wall owner; review posts on the author's
// own wall additionally fan out to friends.
func (h *WallHandler) CreatePost(c echo.Context) error {
	actor := getUserFromContext(c)
	wallOwnerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if !actor.CanPost(time.Now()) {
		return respondError(c, apperror.Forbidden(apperror.CodePostBanned, "posting is suspended until "+actor.PostBanUntil.Format(time.RFC3339)))
	}

	var req models.CreateWallPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Type == models.PostTypeText && req.Content == "" {
		return respondError(c, apperror.Validation(apperror.CodeValidation, "text posts need content"))
	}

	if err := h.gate.Authorize(actor.ID, uint(wallOwnerID)); err != nil {
		return respondError(c, err)
	}

	post := &models.WallPost{
		UserID:      actor.ID,
		WallOwnerID: uint(wallOwnerID),
		Type:        req.Type,
		Content:     req.Content,
		MediaID:     req.MediaID,
		MediaType:   req.MediaType,
		MediaTitle:  req.MediaTitle,
		Rating:      req.Rating,
	}
	if err := h.wallRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	if actor.ID != post.WallOwnerID {
		if err := h.fanout.NotifyWallPost(ctx, actor.ID, post); err != nil {
			log.Printf("wall post notification for post %d failed: %v", post.ID, err)
		}
	} else if req.Type == models.PostTypeReview && req.MediaID != 0 {
		media := services.ActivityMedia{MediaID: req.MediaID, MediaType: req.MediaType, Title: req.MediaTitle}
		if _, err := h.fanout.NotifyFriends(ctx, actor.ID, services.ActivityReviewed, media); err != nil {
			log.Printf("reviewed fan-out for user %d failed: %v", actor.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, post)
}

// UpdatePost edits post content. Author only, inside the edit window.
func (h *WallHandler) UpdatePost(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	currentUserID := getUserIDFromContext(c)
	if post.UserID != currentUserID {
		return respondError(c, apperror.Forbidden(apperror.CodeForbidden, "only the author can edit a post"))
	}
	if time.Since(post.CreatedAt) > h.editWindow {
		return respondError(c, apperror.Forbidden(apperror.CodeEditWindowExpired, "the edit window for this post has closed"))
	}

	var req models.UpdateWallPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := time.Now()
	if err := h.wallRepository.UpdatePostContent(post.ID, req.Content, now); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	post.Content = req.Content
	post.EditedAt = &now
	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Allowed for the author and the wall owner.
func (h *WallHandler) DeletePost(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	currentUserID := getUserIDFromContext(c)
	if post.UserID != currentUserID && post.WallOwnerID != currentUserID {
		return respondError(c, apperror.Forbidden(apperror.CodeForbidden, "only the author or the wall owner can delete a post"))
	}

	if err := h.wallRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WallHandler) loadPost(c echo.Context) (*models.WallPost, error) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	post, err := h.wallRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}
