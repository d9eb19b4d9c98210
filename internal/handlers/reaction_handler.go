package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"github.com/watchrebel/backend/internal/services"
	"gorm.io/gorm"
)

// ReactionHandler handles reaction HTTP requests
type ReactionHandler struct {
	wallRepository repositories.WallRepository
	fanout         *services.FanoutNotifier
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(wallRepo repositories.WallRepository, fanout *services.FanoutNotifier) *ReactionHandler {
	return &ReactionHandler{wallRepository: wallRepo, fanout: fanout}
}

// RegisterReactionRoutes registers reaction routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.PUT("/wall/:post_id/reactions", h.React)
	g.DELETE("/wall/:post_id/reactions", h.RemoveReaction)
	g.GET("/wall/:post_id/reactions", h.GetReactions)
}

// React upserts the caller's reaction on a post. A repeat reaction
// overwrites the emoji; only the first one notifies the author.
func (h *ReactionHandler) React(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.wallRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	currentUserID := getUserIDFromContext(c)
	reaction := &models.Reaction{
		PostID: post.ID,
		UserID: currentUserID,
		Emoji:  req.Emoji,
	}
	created, err := h.wallRepository.UpsertReaction(reaction)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		if err := h.fanout.NotifyReaction(c.Request().Context(), currentUserID, post, req.Emoji); err != nil {
			log.Printf("reaction notification for post %d failed: %v", post.ID, err)
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, reaction)
}

// RemoveReaction deletes the caller's reaction from a post
func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	deleted, err := h.wallRepository.DeleteReaction(uint(postID), getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusNotFound, "Reaction not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetReactions lists all reactions on a post
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	reactions, err := h.wallRepository.GetReactions(uint(postID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"reactions": reactions})
}
