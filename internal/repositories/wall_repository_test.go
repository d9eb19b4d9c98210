package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchrebel/backend/internal/models"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, authorID, wallOwnerID uint) *models.WallPost {
	t.Helper()
	post := &models.WallPost{UserID: authorID, WallOwnerID: wallOwnerID, Type: models.PostTypeText, Content: "hello"}
	require.NoError(t, NewSQLiteWallRepository(db).CreatePost(post))
	return post
}

func TestReactionUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWallRepository(db)
	author := seedUser(t, db, "alice")
	reactor := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, author.ID)

	first := &models.Reaction{PostID: post.ID, UserID: reactor.ID, Emoji: "🔥"}
	created, err := repo.UpsertReaction(first)
	require.NoError(t, err)
	assert.True(t, created)

	// repeat reaction swaps the emoji on the same row
	second := &models.Reaction{PostID: post.ID, UserID: reactor.ID, Emoji: "😂"}
	created, err = repo.UpsertReaction(second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "😂", second.Emoji)

	reactions, err := repo.GetReactions(post.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, "😂", reactions[0].Emoji)
}

func TestDeleteReaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWallRepository(db)
	author := seedUser(t, db, "alice")
	reactor := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, author.ID)

	_, err := repo.UpsertReaction(&models.Reaction{PostID: post.ID, UserID: reactor.ID, Emoji: "🔥"})
	require.NoError(t, err)

	deleted, err := repo.DeleteReaction(post.ID, reactor.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteReaction(post.ID, reactor.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeletePostCascadesReactions(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWallRepository(db)
	author := seedUser(t, db, "alice")
	reactor := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, author.ID)

	_, err := repo.UpsertReaction(&models.Reaction{PostID: post.ID, UserID: reactor.ID, Emoji: "🔥"})
	require.NoError(t, err)

	require.NoError(t, repo.DeletePost(post.ID))

	_, err = repo.GetPostByID(post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetWallPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWallRepository(db)
	owner := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		post := &models.WallPost{
			UserID:      owner.ID,
			WallOwnerID: owner.ID,
			Type:        models.PostTypeText,
			Content:     "post",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, total, err := repo.GetWall(owner.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, posts, 2)
	// newest first
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))

	posts, _, err = repo.GetWall(owner.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestUpdatePostContent(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteWallRepository(db)
	owner := seedUser(t, db, "alice")
	post := seedPost(t, db, owner.ID, owner.ID)

	editedAt := time.Now()
	require.NoError(t, repo.UpdatePostContent(post.ID, "edited", editedAt))

	updated, err := repo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	require.NotNil(t, updated.EditedAt)
}
