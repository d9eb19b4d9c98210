package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/middleware"
	"github.com/watchrebel/backend/internal/models"
)

// getUserFromContext returns the authenticated account loaded by the JWT
// middleware, or nil on unprotected routes.
func getUserFromContext(c echo.Context) *models.User {
	user, _ := c.Get(middleware.ContextKeyUser).(*models.User)
	return user
}

func getUserIDFromContext(c echo.Context) uint {
	if user := getUserFromContext(c); user != nil {
		return user.ID
	}
	return 0
}

// respondError maps an apperror category onto an HTTP status and writes the
// {code, message} body every error response carries.
func respondError(c echo.Context, err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"code":    apperror.CodeInternal,
			"message": err.Error(),
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(appErr, apperror.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(appErr, apperror.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(appErr, apperror.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(appErr, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(appErr, apperror.ErrConflict):
		status = http.StatusConflict
	case errors.Is(appErr, apperror.ErrUpstream):
		status = http.StatusBadGateway
	}
	return c.JSON(status, echo.Map{"code": appErr.Code, "message": appErr.Message})
}

func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}
