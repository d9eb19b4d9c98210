package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound(CodeListNotFound, "list"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "Validation wraps ErrValidation",
			err:       Validation(CodeInvalidMediaType, "list holds movies only"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict(CodeAlreadyInList, "media already in this list"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Forbidden wraps ErrForbidden",
			err:       Forbidden(CodeWallPrivacyNone, "wall is closed"),
			target:    ErrForbidden,
			wantMatch: true,
		},
		{
			name:      "Internal wraps ErrInternal",
			err:       Internal(fmt.Errorf("disk full")),
			target:    ErrInternal,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrConflict",
			err:       NotFound(CodeNotFound, "post"),
			target:    ErrConflict,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestCodes(t *testing.T) {
	var appErr *AppError
	err := fmt.Errorf("wrapped: %w", Conflict(CodeAlreadyInWatchlist, "already on watchlist"))
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed to unwrap *AppError")
	}
	if appErr.Code != CodeAlreadyInWatchlist {
		t.Errorf("Code = %q, want %q", appErr.Code, CodeAlreadyInWatchlist)
	}
	if appErr.Error() != "already on watchlist" {
		t.Errorf("Error() = %q", appErr.Error())
	}
}
