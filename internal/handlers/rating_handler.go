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

// RatingHandler handles rating HTTP requests
type RatingHandler struct {
	ratingRepository repositories.RatingRepository
	wallRepository   repositories.WallRepository
	fanout           *services.FanoutNotifier
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(ratingRepo repositories.RatingRepository, wallRepo repositories.WallRepository, fanout *services.FanoutNotifier) *RatingHandler {
	return &RatingHandler{
		ratingRepository: ratingRepo,
		wallRepository:   wallRepo,
		fanout:           fanout,
	}
}

// RegisterRatingRoutes registers rating routes
func (h *RatingHandler) RegisterRatingRoutes(g *echo.Group) {
	g.PUT("/ratings", h.RateMedia)
	g.GET("/ratings/me", h.GetMyRatings)
	g.GET("/ratings/:media_type/:media_id", h.GetMediaRatings)
}

// RateMedia upserts a rating. A first-time rating also creates a wall post
// on the rater's own wall and fans the activity out to friends; a repeat
// rating only overwrites the value.
func (h *RatingHandler) RateMedia(c echo.Context) error {
	var req models.RateMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := getUserIDFromContext(c)
	rating := &models.Rating{
		UserID:    userID,
		MediaID:   req.MediaID,
		MediaType: req.MediaType,
		Value:     req.Value,
		Title:     req.Title,
	}
	created, err := h.ratingRepository.Upsert(rating)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		post := &models.WallPost{
			UserID:      userID,
			WallOwnerID: userID,
			Type:        models.PostTypeRating,
			MediaID:     req.MediaID,
			MediaType:   req.MediaType,
			MediaTitle:  req.Title,
			Rating:      req.Value,
		}
		if err := h.wallRepository.CreatePost(post); err != nil {
			log.Printf("rating wall post for user %d failed: %v", userID, err)
		}

		media := services.ActivityMedia{
			MediaID:   req.MediaID,
			MediaType: req.MediaType,
			Title:     req.Title,
			Rating:    req.Value,
		}
		if _, err := h.fanout.NotifyFriends(c.Request().Context(), userID, services.ActivityRated, media); err != nil {
			log.Printf("rated fan-out for user %d failed: %v", userID, err)
		}
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, rating)
}

// GetMyRatings returns the caller's ratings
func (h *RatingHandler) GetMyRatings(c echo.Context) error {
	ratings, err := h.ratingRepository.GetByUser(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"ratings": ratings})
}

// GetMediaRatings returns all ratings of one catalog item with the average
func (h *RatingHandler) GetMediaRatings(c echo.Context) error {
	mediaType := c.Param("media_type")
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeSeries {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media type")
	}
	mediaID, err := strconv.Atoi(c.Param("media_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid media ID")
	}

	ratings, average, err := h.ratingRepository.GetForMedia(mediaID, mediaType)
	if err != nil && err != gorm.ErrRecordNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"ratings": ratings, "average": average})
}
