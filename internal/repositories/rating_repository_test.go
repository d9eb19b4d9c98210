package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/models"
)

func TestRatingUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRatingRepository(db)
	user := seedUser(t, db, "alice")

	first := &models.Rating{UserID: user.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 7, Title: "The Matrix"}
	created, err := repo.Upsert(first)
	require.NoError(t, err)
	assert.True(t, created)

	// second rate of the same media overwrites, same row
	second := &models.Rating{UserID: user.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 9}
	created, err = repo.Upsert(second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 9, second.Value)
	// a blank title on the update keeps the stored one
	assert.Equal(t, "The Matrix", second.Title)

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRatingUpsertScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRatingRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	// same media, different users and different kinds are distinct rows
	for _, r := range []*models.Rating{
		{UserID: alice.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 7},
		{UserID: bob.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 5},
		{UserID: alice.ID, MediaID: 603, MediaType: models.MediaTypeSeries, Value: 8},
	} {
		created, err := repo.Upsert(r)
		require.NoError(t, err)
		assert.True(t, created)
	}

	var count int64
	require.NoError(t, db.Model(&models.Rating{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestRatingGetForMedia(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRatingRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for _, r := range []*models.Rating{
		{UserID: alice.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 6},
		{UserID: bob.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 9},
	} {
		_, err := repo.Upsert(r)
		require.NoError(t, err)
	}

	ratings, average, err := repo.GetForMedia(603, models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
	assert.InDelta(t, 7.5, average, 0.001)

	empty, average, err := repo.GetForMedia(604, models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Zero(t, average)
}
