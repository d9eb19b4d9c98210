package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/apperror"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"gorm.io/gorm"
)

func newMembershipFixture(t *testing.T) (*MembershipService, repositories.ListRepository, *gorm.DB) {
	db := newTestDB(t)
	listRepo := repositories.NewSQLiteListRepository(db)
	return NewMembershipService(listRepo, nil), listRepo, db
}

func createList(t *testing.T, repo repositories.ListRepository, userID uint, name, mediaType string) *models.CustomList {
	t.Helper()
	list := &models.CustomList{UserID: userID, Name: name, MediaType: mediaType}
	require.NoError(t, repo.CreateList(list))
	return list
}

func membershipCount(t *testing.T, db *gorm.DB, userID uint, mediaID int) int {
	t.Helper()
	var listed int64
	sub := db.Table("custom_lists").Select("id").Where("user_id = ?", userID)
	require.NoError(t, db.Model(&models.ListItem{}).
		Where("media_id = ? AND list_id IN (?)", mediaID, sub).Count(&listed).Error)
	var watchlisted int64
	require.NoError(t, db.Model(&models.WatchlistItem{}).
		Where("user_id = ? AND media_id = ?", userID, mediaID).Count(&watchlisted).Error)
	return int(listed + watchlisted)
}

func TestAddToWatchlist(t *testing.T) {
	svc, _, db := newMembershipFixture(t)
	user := createUser(t, db, "alice")
	req := models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie, Title: "The Matrix"}

	item, err := svc.AddToWatchlist(user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, user.ID, item.UserID)
	assert.Equal(t, "The Matrix", item.Title)

	// same media again is a conflict
	_, err = svc.AddToWatchlist(user.ID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeAlreadyInWatchlist, appErr.Code)
}

func TestAddToListMovesBetweenLists(t *testing.T) {
	svc, listRepo, db := newMembershipFixture(t)
	user := createUser(t, db, "alice")
	first := createList(t, listRepo, user.ID, "Favorites", models.MediaTypeMovie)
	second := createList(t, listRepo, user.ID, "Rewatch", models.MediaTypeMovie)
	req := models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie, Title: "The Matrix"}

	_, err := svc.AddToList(context.Background(), user.ID, first.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, membershipCount(t, db, user.ID, req.MediaID))

	// adding to a second list silently evicts from the first
	_, err = svc.AddToList(context.Background(), user.ID, second.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, membershipCount(t, db, user.ID, req.MediaID))

	var remaining []models.ListItem
	require.NoError(t, db.Where("media_id = ?", req.MediaID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].ListID)
}

func TestAddToListDuplicateRejected(t *testing.T) {
	svc, listRepo, db := newMembershipFixture(t)
	user := createUser(t, db, "alice")
	list := createList(t, listRepo, user.ID, "Favorites", models.MediaTypeMovie)
	req := models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie}

	_, err := svc.AddToList(context.Background(), user.ID, list.ID, req)
	require.NoError(t, err)

	_, err = svc.AddToList(context.Background(), user.ID, list.ID, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeAlreadyInList, appErr.Code)
	assert.Equal(t, 1, membershipCount(t, db, user.ID, req.MediaID))
}

func TestAddToListEvictsWatchlistEntry(t *testing.T) {
	svc, listRepo, db := newMembershipFixture(t)
	user := createUser(t, db, "alice")
	list := createList(t, listRepo, user.ID, "Favorites", models.MediaTypeMovie)
	req := models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie}

	_, err := svc.AddToWatchlist(user.ID, req)
	require.NoError(t, err)

	// promotion: the watchlist entry disappears with the list insert
	_, err = svc.AddToList(context.Background(), user.ID, list.ID, req)
	require.NoError(t, err)

	_, err = listRepo.GetWatchlistItem(user.ID, req.MediaID, req.MediaType)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, membershipCount(t, db, user.ID, req.MediaID))
}

func TestAddToListChecks(t *testing.T) {
	svc, listRepo, db := newMembershipFixture(t)
	owner := createUser(t, db, "alice")
	stranger := createUser(t, db, "bob")
	movieList := createList(t, listRepo, owner.ID, "Favorites", models.MediaTypeMovie)

	tests := []struct {
		name     string
		userID   uint
		listID   uint
		req      models.AddMediaRequest
		sentinel error
		code     string
	}{
		{
			name:     "unknown list",
			userID:   owner.ID,
			listID:   9999,
			req:      models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie},
			sentinel: apperror.ErrNotFound,
			code:     apperror.CodeListNotFound,
		},
		{
			name:     "foreign list",
			userID:   stranger.ID,
			listID:   movieList.ID,
			req:      models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie},
			sentinel: apperror.ErrForbidden,
			code:     apperror.CodeForbidden,
		},
		{
			name:     "series into a movie list",
			userID:   owner.ID,
			listID:   movieList.ID,
			req:      models.AddMediaRequest{MediaID: 1396, MediaType: models.MediaTypeSeries},
			sentinel: apperror.ErrValidation,
			code:     apperror.CodeInvalidMediaType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddToList(context.Background(), tt.userID, tt.listID, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestRemoveFromList(t *testing.T) {
	svc, listRepo, db := newMembershipFixture(t)
	user := createUser(t, db, "alice")
	stranger := createUser(t, db, "bob")
	list := createList(t, listRepo, user.ID, "Favorites", models.MediaTypeMovie)

	item, err := svc.AddToList(context.Background(), user.ID, list.ID, models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie})
	require.NoError(t, err)

	err = svc.RemoveFromList(stranger.ID, list.ID, item.ID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	require.NoError(t, svc.RemoveFromList(user.ID, list.ID, item.ID))

	err = svc.RemoveFromList(user.ID, list.ID, item.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestRemoveFromWatchlist(t *testing.T) {
	svc, _, db := newMembershipFixture(t)
	user := createUser(t, db, "alice")

	item, err := svc.AddToWatchlist(user.ID, models.AddMediaRequest{MediaID: 603, MediaType: models.MediaTypeMovie})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromWatchlist(user.ID, item.ID))

	err = svc.RemoveFromWatchlist(user.ID, item.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
