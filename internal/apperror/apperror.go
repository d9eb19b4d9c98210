package apperror

import (
	"errors"
	"fmt"
)

// Sentinel categories. Handlers map these to HTTP status codes, the Code on
// the concrete error is what clients switch on.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream unavailable")
	ErrInternal     = errors.New("internal error")
)

// Stable machine codes returned in error bodies.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeListNotFound         = "LIST_NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidMediaType     = "INVALID_MEDIA_TYPE"
	CodeAlreadyInList        = "ALREADY_IN_LIST"
	CodeAlreadyInWatchlist   = "ALREADY_IN_WATCHLIST"
	CodeConflict             = "CONFLICT"
	CodeWallPrivacyNone      = "WALL_PRIVACY_NONE"
	CodeWallPrivacyFriends   = "WALL_PRIVACY_FRIENDS_ONLY"
	CodeEditWindowExpired    = "EDIT_WINDOW_EXPIRED"
	CodeUserBlocked          = "USER_BLOCKED"
	CodePostBanned           = "POST_BANNED"
	CodeUpstreamUnavailable  = "UPSTREAM_UNAVAILABLE"
	CodeInternal             = "INTERNAL"
)

type AppError struct {
	Err     error  // category sentinel
	Code    string // machine-readable code for clients
	Message string // human-readable message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(code, resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Code:    code,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func Validation(code, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Code:    code,
		Message: message,
	}
}

func Conflict(code, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    code,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(code, message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Code:    code,
		Message: message,
	}
}

func Upstream(message string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Code:    CodeUpstreamUnavailable,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Err:     ErrInternal,
		Code:    CodeInternal,
		Message: err.Error(),
	}
}
