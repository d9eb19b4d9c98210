package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

func TestCreateUserSeedsSettings(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepository(db)

	user := &models.User{Name: "alice", Email: "alice@example.com"}
	require.NoError(t, repo.CreateUser(user))
	require.NotZero(t, user.ID)

	settings, err := repo.GetSettings(user.ID)
	require.NoError(t, err)
	assert.True(t, settings.FriendAddedToList)
	assert.True(t, settings.FriendRatedMedia)
	assert.True(t, settings.FriendPostedReview)
	assert.True(t, settings.Reactions)
	assert.True(t, settings.WallPosts)
}

func TestSetBlocked(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepository(db)
	user := seedUser(t, db, "alice")

	require.NoError(t, repo.SetBlocked(user.ID, true, "spam"))
	blocked, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.Equal(t, "spam", blocked.BanReason)

	require.NoError(t, repo.SetBlocked(user.ID, false, ""))
	unblocked, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)
	assert.Empty(t, unblocked.BanReason)
}

func TestSetPostBan(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepository(db)
	user := seedUser(t, db, "alice")

	until := time.Now().Add(24 * time.Hour)
	require.NoError(t, repo.SetPostBan(user.ID, &until, "flame war"))

	banned, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, banned.PostBanUntil)
	assert.False(t, banned.CanPost(time.Now()))
	assert.True(t, banned.CanPost(until.Add(time.Minute)))

	require.NoError(t, repo.SetPostBan(user.ID, nil, ""))
	cleared, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.PostBanUntil)
	assert.True(t, cleared.CanPost(time.Now()))
}

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepository(db)
	user := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	list := &models.CustomList{UserID: user.ID, Name: "Favorites", MediaType: models.MediaTypeMovie}
	require.NoError(t, db.Create(list).Error)
	require.NoError(t, db.Create(&models.ListItem{ListID: list.ID, MediaID: 603, MediaType: models.MediaTypeMovie}).Error)
	require.NoError(t, db.Create(&models.WatchlistItem{UserID: user.ID, MediaID: 604, MediaType: models.MediaTypeMovie}).Error)
	require.NoError(t, db.Create(&models.Rating{UserID: user.ID, MediaID: 603, MediaType: models.MediaTypeMovie, Value: 8}).Error)
	// a post by the other user on alice's wall goes too
	require.NoError(t, db.Create(&models.WallPost{UserID: other.ID, WallOwnerID: user.ID, Type: models.PostTypeText, Content: "hi"}).Error)
	require.NoError(t, db.Create(&models.Friend{UserID: user.ID, FriendID: other.ID}).Error)
	require.NoError(t, db.Create(&models.Friend{UserID: other.ID, FriendID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Notification{RecipientID: user.ID, Type: models.NotificationTypeReaction, Content: "x"}).Error)
	require.NoError(t, db.Create(&models.Message{SenderID: user.ID, RecipientID: other.ID, Content: "hello"}).Error)

	require.NoError(t, repo.DeleteUser(user.ID))

	_, err := repo.GetUserByID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for name, model := range map[string]interface{}{
		"custom_lists":    &models.CustomList{},
		"list_items":      &models.ListItem{},
		"watchlist_items": &models.WatchlistItem{},
		"ratings":         &models.Rating{},
		"wall_posts":      &models.WallPost{},
		"friends":         &models.Friend{},
		"notifications":   &models.Notification{},
		"messages":        &models.Message{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zerof(t, count, "leftover rows in %s", name)
	}

	// the other account is untouched
	_, err = repo.GetUserByID(other.ID)
	assert.NoError(t, err)
}

func TestSearchUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepository(db)
	seedUser(t, db, "alice")
	seedUser(t, db, "alicia")
	seedUser(t, db, "bob")

	users, err := repo.SearchUsers("ALIC")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = repo.SearchUsers("bob@example.com")
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
